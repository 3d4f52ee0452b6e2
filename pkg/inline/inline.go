// Package inline resolves code spans, links, autolinks and emphasis inside
// the text ranges of paragraphs and headings.
//
// Parsers run in a fixed order. Each one consumes what it recognizes and
// hands the remaining token indices, regrouped into parsing spaces, to the
// next parser. Tokens consumed by an earlier parser are never revisited.
package inline

import (
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// Parser recognizes one kind of inline construct in a parsing space.
type Parser interface {
	Parse(cache *tokencache.Cache, ranges []production.Range) Result
}

// Result holds the nodes a parser produced and the parsing spaces left for
// the parsers that follow it.
type Result struct {
	Nodes   []production.Node
	Further [][]production.Range
}

func (r *Result) addNodes(nodes ...production.Node) {
	r.Nodes = append(r.Nodes, nodes...)
}

func (r *Result) addFurther(indices []int) {
	if len(indices) == 0 {
		return
	}
	r.Further = append(r.Further, IndicesToRanges(indices))
}

// DefaultSequence returns the parsers in the order Run applies them.
func DefaultSequence() []Parser {
	return []Parser{
		AutolinkParser{},
		BacktickParser{},
		LinkDefinitionParser{},
		InlineLinkParser{},
		ReferenceLinkParser{},
		EmphStrongParser{},
	}
}

// Run parses ranges with the default sequence.
func Run(cache *tokencache.Cache, ranges []production.Range) []production.Node {
	return RunSequence(cache, ranges, DefaultSequence())
}

// RunSequence parses ranges with parsers applied in order and returns every
// node they produced.
func RunSequence(cache *tokencache.Cache, ranges []production.Range, parsers []Parser) []production.Node {
	var nodes []production.Node

	spaces := [][]production.Range{ranges}
	for _, parser := range parsers {
		var next [][]production.Range
		for _, space := range spaces {
			if !hasTokens(space) {
				continue
			}
			result := parser.Parse(cache, space)
			nodes = append(nodes, result.Nodes...)
			next = append(next, result.Further...)
		}
		spaces = next
	}

	return nodes
}

func hasTokens(ranges []production.Range) bool {
	for _, r := range ranges {
		if !r.IsEmpty() {
			return true
		}
	}
	return false
}
