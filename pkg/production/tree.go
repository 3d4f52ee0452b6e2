package production

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// ErrMalformedProduction is returned when production ranges cannot form a
// tree.
var ErrMalformedProduction = errors.New("malformed production")

type event struct {
	position int
	open     bool
	seq      int
	node     Node
}

// built is a finished subtree with its logical token range.
type built struct {
	node       *mdast.Node
	start, end int
}

type frame struct {
	seq      int
	children []built
}

// BuildTree assembles the production and root into one tree. Logical tokens
// not covered by any child become leaves of the innermost open node; raw
// whitespace between siblings is reinserted between them, and raw tokens
// before the first or after the last logical token are attached to the root.
//
// The returned nodes reference raw token indices but have no File set.
func BuildTree(cache *tokencache.Cache, root Node, production []Node) (*mdast.Node, error) {
	if cache.Len() == 0 {
		return rawOnlyTree(cache, root.Kind), nil
	}

	events, err := sortedEvents(cache, root, production)
	if err != nil {
		return nil, err
	}

	var stack []frame
	current := events[0].position

	for i, ev := range events {
		for current < ev.position {
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: token %d outside the root", ErrMalformedProduction, current)
			}
			top := &stack[len(stack)-1]
			top.children = append(top.children, built{
				node:  mdast.NewLeaf(cache.RawIndex(current)),
				start: current,
				end:   current + 1,
			})
			current++
		}

		if ev.open {
			stack = append(stack, frame{seq: ev.seq})
			continue
		}

		if len(stack) == 0 || stack[len(stack)-1].seq != ev.seq {
			return nil, fmt.Errorf("%w: %s %s crosses an enclosing node",
				ErrMalformedProduction, ev.node.Kind, ev.node.Range)
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		topmost := len(stack) == 0

		if topmost && i+1 != len(events) {
			return nil, fmt.Errorf("%w: more than one root", ErrMalformedProduction)
		}

		composite, err := compose(cache, ev.node, top.children, topmost)
		if err != nil {
			return nil, err
		}

		if topmost {
			return composite, nil
		}
		parent := &stack[len(stack)-1]
		parent.children = append(parent.children, built{node: composite, start: ev.node.Range.Start, end: ev.node.Range.End})
	}

	return nil, fmt.Errorf("%w: root never closed", ErrMalformedProduction)
}

// sortedEvents returns open and close events ordered so that a sweep builds
// properly nested nodes. Zero-width production nodes are dropped.
func sortedEvents(cache *tokencache.Cache, root Node, production []Node) ([]event, error) {
	nodes := make([]Node, 0, len(production)+1)
	for _, node := range production {
		if node.Range.Start < 0 || node.Range.End > cache.Len() || node.Range.Start > node.Range.End {
			return nil, fmt.Errorf("%w: %s %s out of bounds", ErrMalformedProduction, node.Kind, node.Range)
		}
		if node.Range.IsEmpty() {
			continue
		}
		nodes = append(nodes, node)
	}
	// The root is last so it wins every tie as the outermost node.
	nodes = append(nodes, root)

	events := make([]event, 0, 2*len(nodes))
	for seq, node := range nodes {
		events = append(events,
			event{position: node.Range.Start, open: true, seq: seq, node: node},
			event{position: node.Range.End, open: false, seq: seq, node: node},
		)
	}

	slices.SortFunc(events, compareEvents)

	if len(events) == 0 || events[0].seq != events[len(events)-1].seq {
		return nil, fmt.Errorf("%w: root does not enclose the production", ErrMalformedProduction)
	}
	return events, nil
}

func compareEvents(a, b event) int {
	if c := cmp.Compare(a.position, b.position); c != 0 {
		return c
	}
	if a.open != b.open {
		if a.open {
			return 1
		}
		return -1
	}

	// Opens: the longer range first. Closes: the shorter range first.
	sumA := a.node.Range.Start + a.node.Range.End
	sumB := b.node.Range.Start + b.node.Range.End
	if c := cmp.Compare(sumB, sumA); c != 0 {
		return c
	}

	// Identical ranges: earlier production entries are inner.
	if a.open {
		return cmp.Compare(b.seq, a.seq)
	}
	return cmp.Compare(a.seq, b.seq)
}

func compose(cache *tokencache.Cache, node Node, children []built, topmost bool) (*mdast.Node, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: %s %s has no children", ErrMalformedProduction, node.Kind, node.Range)
	}

	composite := mdast.NewNode(node.Kind)

	if topmost {
		appendRaw(composite, 0, cache.RawIndex(node.Range.Start))
	}

	for i, child := range children {
		if i > 0 {
			prev := children[i-1]
			appendRaw(composite, cache.RawIndex(prev.end-1)+1, cache.RawIndex(child.start))
		}
		mdast.AppendChild(composite, child.node)
	}

	if topmost {
		appendRaw(composite, cache.RawIndex(node.Range.End-1)+1, cache.RawLen())
	}

	mdast.SpanChildren(composite)
	return composite, nil
}

// appendRaw adds leaves for raw tokens [from, to).
func appendRaw(parent *mdast.Node, from, to int) {
	for raw := from; raw < to; raw++ {
		mdast.AppendChild(parent, mdast.NewLeaf(raw))
	}
}

func rawOnlyTree(cache *tokencache.Cache, kind mdast.NodeKind) *mdast.Node {
	root := mdast.NewNode(kind)
	appendRaw(root, 0, cache.RawLen())
	mdast.SpanChildren(root)
	return root
}
