package mdast

import (
	"errors"
	"iter"
)

// SkipChildren may be returned by a Walk or WalkWithContext enter callback
// to skip the node's subtree. The leave callback still runs for the node.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // sentinel used as a control value

// WalkFunc visits one node. A non-nil error other than SkipChildren stops
// the walk and is returned by it.
type WalkFunc func(n *Node) error

// WalkContextFunc is an enter or leave callback of WalkWithContext.
type WalkContextFunc = WalkFunc

// Walk visits root and its descendants in pre-order.
func Walk(root *Node, walkFunc WalkFunc) error {
	return WalkWithContext(root, walkFunc, nil)
}

// frame is one open node of a traversal: the node and the next child to
// visit.
type frame struct {
	node *Node
	next *Node
}

// WalkWithContext visits every node twice: enter before its children and
// leave after them. Either callback may be nil. The traversal keeps its own
// stack, so deep trees do not grow the goroutine stack.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	var stack []frame

	open := func(n *Node) error {
		first := n.FirstChild
		if enter != nil {
			switch err := enter(n); {
			case errors.Is(err, SkipChildren):
				first = nil
			case err != nil:
				return err
			}
		}
		stack = append(stack, frame{node: n, next: first})
		return nil
	}

	if err := open(root); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if child := top.next; child != nil {
			top.next = child.Next
			if err := open(child); err != nil {
				return err
			}
			continue
		}

		stack = stack[:len(stack)-1]
		if leave != nil {
			if err := leave(top.node); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
		}
	}

	return nil
}

// WalkBlocks calls fn for every block-level composite under root, root
// included.
func WalkBlocks(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if !n.Kind.IsBlock() {
			return nil
		}
		return fn(n)
	})
}

// All yields root and its descendants in pre-order.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		errStop := errors.New("stop")
		//nolint:errcheck // only errStop can come back
		Walk(root, func(n *Node) error {
			if !yield(n) {
				return errStop
			}
			return nil
		})
	}
}

// Leaves returns the token leaves under root in document order.
// Concatenating their text reproduces the source covered by root.
func Leaves(root *Node) []*Node {
	return FindAll(root, (*Node).IsLeaf)
}

// FindAll returns the nodes under root, root included, that satisfy match.
func FindAll(root *Node, match func(n *Node) bool) []*Node {
	var found []*Node
	for n := range All(root) {
		if match(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindFirst returns the first node in pre-order that satisfies match.
func FindFirst(root *Node, match func(n *Node) bool) *Node {
	for n := range All(root) {
		if match(n) {
			return n
		}
	}
	return nil
}

// FindByKind returns the nodes of one kind in document order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
