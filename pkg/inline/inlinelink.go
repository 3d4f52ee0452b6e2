package inline

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// InlineLinkParser recognizes [text](destination 'title').
type InlineLinkParser struct{}

// Parse implements Parser.
func (InlineLinkParser) Parse(cache *tokencache.Cache, ranges []production.Range) Result {
	return scanLinks(cache, ranges, (*linkScan).parseInlineLink)
}

// scanLinks tries parse at every '[' of the space. Tokens outside matched
// links form the remaining space.
func scanLinks(
	cache *tokencache.Cache,
	ranges []production.Range,
	parse func(*linkScan, tokencache.ListIterator) (tokencache.ListIterator, bool),
) Result {
	var result Result
	var delegates []int

	_, it := indicesOf(cache, ranges)
	for it.Valid() {
		if it.Is(mdast.TokLBracket) {
			var scan linkScan
			if end, ok := parse(&scan, it); ok {
				scan.commit(&result)
				it = end.Advance()
				continue
			}
		}

		delegates = append(delegates, it.Index())
		it = it.Advance()
	}

	result.addFurther(delegates)
	return result
}

func (s *linkScan) parseInlineLink(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	start := it.Index()

	it, ok := s.parseLinkText(it)
	if !ok || !it.RawIs(1, mdast.TokLParen) {
		return it, false
	}

	it = skipEOL(it.Advance().Advance())

	if destination, ok := s.parseLinkDestination(it); ok {
		it = skipEOL(destination.Advance())
	}
	if title, ok := s.parseLinkTitle(it); ok {
		it = skipEOL(title.Advance())
	}

	if !it.Is(mdast.TokRParen) {
		return it, false
	}

	s.add(mdast.NodeInlineLink, start, it.Index())
	return it, true
}
