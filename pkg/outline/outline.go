// Package outline reduces a syntax tree to its block skeleton: one entry per
// block element, with nesting depth, start line and a short detail.
package outline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/langdetect"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Entry is one block element of an outline.
type Entry struct {
	// Depth counts enclosing block elements; children of the document are 0.
	Depth int `json:"depth"`

	// Kind is the element name as printed in tree dumps.
	Kind string `json:"kind"`

	// Line is the 1-based start line, 0 when unknown.
	Line int `json:"line,omitempty"`

	// Detail is the heading text or the code language.
	Detail string `json:"detail,omitempty"`

	// DefinitionsOnly marks a paragraph holding nothing but link
	// reference definitions.
	DefinitionsOnly bool `json:"definitionsOnly,omitempty"`
}

// Outline is a pre-order list of block entries.
type Outline []Entry

// Options controls what FromTree records.
type Options struct {
	// Languages fills Detail for code blocks via langdetect.
	Languages bool
}

// FromTree builds the outline of the tree rooted at root. The root itself
// is not listed.
func FromTree(root *mdast.Node, opts Options) Outline {
	var (
		entries Outline
		depth   = -1
	)

	//nolint:errcheck // callbacks never fail
	mdast.WalkWithContext(root,
		func(n *mdast.Node) error {
			if !n.Kind.IsBlock() {
				return nil
			}
			if n != root {
				entries = append(entries, entryFor(n, depth, opts))
			}
			depth++
			return nil
		},
		func(n *mdast.Node) error {
			if n.Kind.IsBlock() {
				depth--
			}
			return nil
		},
	)

	return entries
}

func entryFor(n *mdast.Node, depth int, opts Options) Entry {
	entry := Entry{
		Depth: depth,
		Kind:  n.Kind.String(),
		Line:  n.SourcePosition().StartLine,
	}

	switch {
	case n.Kind.HeadingLevel() > 0:
		entry.Detail = HeadingText(n)
	case n.Kind == mdast.NodeCodeFence || n.Kind == mdast.NodeCodeBlock:
		if opts.Languages {
			if result, ok := langdetect.ForNode(n); ok {
				entry.Detail = result.Language
			}
		}
	case n.Kind == mdast.NodeParagraph:
		entry.DefinitionsOnly = definitionsOnly(n)
	}

	return entry
}

// HeadingText returns the visible text of a heading with markers removed
// and whitespace collapsed.
func HeadingText(n *mdast.Node) string {
	var builder strings.Builder

	for _, leaf := range mdast.Leaves(n) {
		kind, ok := leaf.TokenKind()
		if !ok {
			continue
		}
		switch kind {
		case mdast.TokATXHeader, mdast.TokSetext1, mdast.TokSetext2, mdast.TokBlockQuote:
			builder.WriteByte(' ')
		default:
			builder.Write(leaf.Text())
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

// definitionsOnly reports whether every child of a paragraph is a link
// definition or blank.
func definitionsOnly(n *mdast.Node) bool {
	found := false

	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeLinkDefinition {
			found = true
			continue
		}
		kind, ok := child.TokenKind()
		if !ok || (kind != mdast.TokEOL && kind != mdast.TokWhitespace) {
			return false
		}
	}

	return found
}

// Kinds returns the entry kinds in order.
func (o Outline) Kinds() []string {
	kinds := make([]string, len(o))
	for i, entry := range o {
		kinds[i] = entry.Kind
	}
	return kinds
}

// String formats a single entry as "KIND" or "KIND detail", indented by depth.
func (e Entry) String() string {
	line := strings.Repeat("  ", e.Depth) + e.Kind
	if e.Detail != "" {
		line += " " + fmt.Sprintf("%q", e.Detail)
	}
	return line
}

// Write prints the outline one entry per line.
func Write(w io.Writer, o Outline) error {
	buf := bufio.NewWriter(w)
	for _, entry := range o {
		buf.WriteString(entry.String())
		buf.WriteByte('\n')
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}
