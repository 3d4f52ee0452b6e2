// Package production records the flat list of ranged nodes emitted while
// parsing and turns it into a tree.
package production

import (
	"fmt"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Range is a half-open interval of logical token indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of logical tokens in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no tokens.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Node is one recorded element: a kind over a range of logical tokens.
type Node struct {
	Range Range
	Kind  mdast.NodeKind
}

// Holder accumulates production nodes and tracks the logical position the
// parser has reached.
type Holder struct {
	position   int
	production []Node
}

// NewHolder returns an empty holder positioned at 0.
func NewHolder() *Holder {
	return &Holder{}
}

// UpdatePosition sets the current logical position.
func (h *Holder) UpdatePosition(position int) {
	h.position = position
}

// Position returns the current logical position.
func (h *Holder) Position() int {
	return h.position
}

// Mark remembers the current position as the start of a future node.
func (h *Holder) Mark() Marker {
	return Marker{holder: h, start: h.position}
}

// Add appends nodes to the production.
func (h *Holder) Add(nodes ...Node) {
	h.production = append(h.production, nodes...)
}

// Production returns the nodes recorded so far, in insertion order.
func (h *Holder) Production() []Node {
	return h.production
}

// Marker is a start position awaiting its node kind.
type Marker struct {
	holder *Holder
	start  int
}

// Start returns the marked position.
func (m Marker) Start() int {
	return m.start
}

// Done records a node of kind from the marked position up to, but not
// including, the holder's current position.
func (m Marker) Done(kind mdast.NodeKind) {
	m.holder.Add(Node{Range: Range{Start: m.start, End: m.holder.position}, Kind: kind})
}
