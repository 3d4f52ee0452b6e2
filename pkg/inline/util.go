package inline

import (
	"slices"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// RangesToIndices flattens half-open ranges into sorted logical indices.
func RangesToIndices(ranges []production.Range) []int {
	var indices []int
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			indices = append(indices, i)
		}
	}
	slices.Sort(indices)
	return indices
}

// IndicesToRanges groups sorted indices into maximal contiguous ranges.
func IndicesToRanges(indices []int) []production.Range {
	var ranges []production.Range

	start := 0
	for i := range indices {
		if i+1 == len(indices) || indices[i]+1 != indices[i+1] {
			ranges = append(ranges, production.Range{Start: indices[start], End: indices[i] + 1})
			start = i + 1
		}
	}

	return ranges
}

// IsWhitespace reports whether whitespace separates it from its raw
// neighbour. lookup is -1 for the left side and 1 for the right side. A
// missing neighbour is not whitespace.
func IsWhitespace(it tokencache.ListIterator, lookup int) bool {
	kind, ok := it.RawLookup(lookup)
	if !ok {
		return false
	}
	if kind == mdast.TokEOL || kind == mdast.TokWhitespace {
		return true
	}
	if lookup == -1 {
		return strings.HasSuffix(it.Rollback().Text(), " ")
	}
	return strings.HasPrefix(it.Advance().Text(), " ")
}

// indicesOf returns the list iterator over ranges, starting at its first
// index.
func indicesOf(cache *tokencache.Cache, ranges []production.Range) ([]int, tokencache.ListIterator) {
	indices := RangesToIndices(ranges)
	return indices, cache.ListIterator(indices, 0)
}
