package inline

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// AutolinkParser recognizes <scheme:...> and <user@host> autolinks.
type AutolinkParser struct{}

// Parse implements Parser.
func (AutolinkParser) Parse(cache *tokencache.Cache, ranges []production.Range) Result {
	var result Result
	var delegates []int

	indices := RangesToIndices(ranges)
	for i := 0; i < len(indices); i++ {
		it := cache.ListIterator(indices, i)
		if !it.Is(mdast.TokLT) || !it.RawIs(1, mdast.TokAutolink, mdast.TokEmailAutolink) {
			delegates = append(delegates, indices[i])
			continue
		}

		end := i
		for end < len(indices) && !cache.ListIterator(indices, end).Is(mdast.TokGT) {
			end++
		}
		if end == len(indices) {
			delegates = append(delegates, indices[i])
			continue
		}

		result.addNodes(production.Node{
			Range: production.Range{Start: indices[i], End: indices[end] + 1},
			Kind:  mdast.NodeAutolink,
		})
		i = end
	}

	result.addFurther(delegates)
	return result
}
