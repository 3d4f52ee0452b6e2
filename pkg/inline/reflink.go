package inline

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// ReferenceLinkParser recognizes full [text][label] and short [label] or
// [label][] reference links.
type ReferenceLinkParser struct{}

// Parse implements Parser.
func (ReferenceLinkParser) Parse(cache *tokencache.Cache, ranges []production.Range) Result {
	return scanLinks(cache, ranges, (*linkScan).parseReferenceLink)
}

func (s *linkScan) parseReferenceLink(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	if end, ok := s.parseFullReferenceLink(it); ok {
		return end, true
	}
	s.reset()
	return s.parseShortReferenceLink(it)
}

func (s *linkScan) parseFullReferenceLink(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	start := it.Index()

	it, ok := s.parseLinkText(it)
	if !ok {
		return it, false
	}

	it, ok = s.parseLinkLabel(skipEOL(it.Advance()))
	if !ok {
		return it, false
	}

	s.add(mdast.NodeFullReferenceLink, start, it.Index())
	return it, true
}

func (s *linkScan) parseShortReferenceLink(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	start := it.Index()

	it, ok := s.parseLinkLabel(it)
	if !ok {
		return it, false
	}

	// An empty [] directly after the label belongs to the link.
	if next := skipEOL(it.Advance()); next.Is(mdast.TokLBracket) && next.RawIs(1, mdast.TokRBracket) &&
		next.Advance().Is(mdast.TokRBracket) {
		it = next.Advance()
	}

	s.add(mdast.NodeShortReferenceLink, start, it.Index())
	return it, true
}
