package parser

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gomdtree/pkg/constraints"
	"github.com/yaklabco/gomdtree/pkg/markerblocks"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// State is the automaton state a dialect sees when deciding which blocks a
// token opens.
type State struct {
	// Stack holds the open blocks, outermost first.
	Stack []*markerblocks.Block

	// Current is the constraints of the line prefix consumed so far.
	Current constraints.Constraints

	// Env is shared by every block the dialect creates.
	Env markerblocks.Env
}

// Dialect decides block opening and the order in which open blocks see
// tokens.
type Dialect interface {
	// Name identifies the dialect in configuration and logs.
	Name() string

	// Permutation returns stack indices in the order blocks process a token.
	Permutation(stack []*markerblocks.Block) []int

	// NewBlocks returns the blocks opened at it, outermost first.
	NewBlocks(kind mdast.TokenKind, it tokencache.Iterator, state State) []*markerblocks.Block
}

// FixedPriority orders blocks by the priority of their node kind, higher
// first. Blocks of equal priority are visited innermost first. Kinds absent
// from the map have priority 0.
type FixedPriority map[mdast.NodeKind]int

// Permutation implements the ordering half of Dialect.
func (p FixedPriority) Permutation(stack []*markerblocks.Block) []int {
	order := make([]int, len(stack))
	for i := range order {
		order[i] = i
	}

	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(p[stack[b].DefaultNodeKind()], p[stack[a].DefaultNodeKind()]); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})
	return order
}
