package inline

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// LinkDefinitionParser recognizes a link reference definition at the start
// of a parsing space: [label]: destination 'title'. The definition must end
// the space or its line; otherwise nothing is produced.
type LinkDefinitionParser struct{}

// Parse implements Parser.
func (LinkDefinitionParser) Parse(cache *tokencache.Cache, ranges []production.Range) Result {
	indices, it := indicesOf(cache, ranges)

	var scan linkScan
	end, ok := scan.parseLinkDefinition(it)
	if !ok {
		return Result{Further: [][]production.Range{ranges}}
	}

	var result Result
	scan.commit(&result)
	// Lines after the definition are still paragraph text.
	result.addFurther(indices[end.ListIndex()+1:])
	return result
}

func (s *linkScan) parseLinkDefinition(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	start := it.Index()

	it, ok := s.parseLinkLabel(it)
	if !ok || !it.RawIs(1, mdast.TokColon) {
		return it, false
	}

	it = skipEOL(it.Advance().Advance())

	it, ok = s.parseLinkDestination(it)
	if !ok {
		return it, false
	}

	if afterDestination := skipEOL(it.Advance()); afterDestination.Valid() {
		if title, ok := s.parseLinkTitle(afterDestination); ok {
			it = title
		}
	}

	if next := it.Advance(); next.Valid() && !next.Is(mdast.TokEOL) {
		return it, false
	}

	s.add(mdast.NodeLinkDefinition, start, it.Index())
	return it, true
}
