package inline

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// BacktickParser recognizes code spans: a backtick run closed by the next
// run of the same length. Unclosed runs are left as text.
type BacktickParser struct{}

// Parse implements Parser.
func (BacktickParser) Parse(cache *tokencache.Cache, ranges []production.Range) Result {
	var result Result
	var delegates []int

	indices := RangesToIndices(ranges)
	for i := 0; i < len(indices); i++ {
		it := cache.ListIterator(indices, i)
		if isBacktick(it) {
			if j := findRunOfLength(cache, indices, i+1, backtickLength(it, true)); j >= 0 {
				result.addNodes(production.Node{
					Range: production.Range{Start: indices[i], End: indices[j] + 1},
					Kind:  mdast.NodeCodeSpan,
				})
				i = j
				continue
			}
		}
		delegates = append(delegates, indices[i])
	}

	result.addFurther(delegates)
	return result
}

func isBacktick(it tokencache.ListIterator) bool {
	return it.Is(mdast.TokBacktick, mdast.TokEscapedBackticks)
}

func findRunOfLength(cache *tokencache.Cache, indices []int, from, length int) int {
	for i := from; i < len(indices); i++ {
		it := cache.ListIterator(indices, i)
		if isBacktick(it) && backtickLength(it, false) == length {
			return i
		}
	}
	return -1
}

// backtickLength returns the effective run length. An escaped run loses the
// backslash and, when opening a span, its first backtick.
func backtickLength(it tokencache.ListIterator, opening bool) int {
	length := len(it.Text())
	if it.Is(mdast.TokEscapedBackticks) {
		if opening {
			return length - 2
		}
		return length - 1
	}
	return length
}
