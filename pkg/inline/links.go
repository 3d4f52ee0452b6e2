package inline

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// linkScan collects the nodes and nested parsing spaces of one link
// candidate. It is discarded when the candidate does not match.
type linkScan struct {
	nodes  []production.Node
	spaces [][]int
}

func (s *linkScan) add(kind mdast.NodeKind, start, end int) {
	s.nodes = append(s.nodes, production.Node{Range: production.Range{Start: start, End: end + 1}, Kind: kind})
}

func (s *linkScan) reset() {
	s.nodes = s.nodes[:0]
	s.spaces = s.spaces[:0]
}

func (s *linkScan) commit(result *Result) {
	result.addNodes(s.nodes...)
	for _, space := range s.spaces {
		result.addFurther(space)
	}
}

// skipEOL steps over a single line break.
func skipEOL(it tokencache.ListIterator) tokencache.ListIterator {
	if it.Is(mdast.TokEOL) {
		return it.Advance()
	}
	return it
}

// parseLinkDestination reads <...> or a run of tokens without whitespace
// that may contain one level of balanced parentheses. It returns the
// iterator at the last token of the destination.
func (s *linkScan) parseLinkDestination(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	if !it.Valid() || it.Is(mdast.TokEOL, mdast.TokRParen) {
		return it, false
	}

	start := it.Index()
	braces := it.Is(mdast.TokLT)
	if braces {
		it = it.Advance()
	}

	open := false
	for it.Valid() {
		if braces {
			if it.Is(mdast.TokGT) {
				break
			}
		} else {
			if it.Is(mdast.TokLParen) {
				if open {
					break
				}
				open = true
			}

			next, ok := it.RawLookup(1)
			if !ok || IsWhitespace(it, 1) {
				break
			}
			if next == mdast.TokRParen {
				if !open {
					break
				}
				open = false
			}
		}
		it = it.Advance()
	}

	if !it.Valid() || open {
		return it, false
	}

	s.add(mdast.NodeLinkDestination, start, it.Index())
	return it, true
}

// parseLinkLabel reads a flat [label]. Nested brackets and empty labels do
// not match. The label content becomes its own parsing space.
func (s *linkScan) parseLinkLabel(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	if !it.Is(mdast.TokLBracket) {
		return it, false
	}

	start := it.Index()
	var content []int

	for it = it.Advance(); it.Valid() && !it.Is(mdast.TokRBracket); it = it.Advance() {
		if it.Is(mdast.TokLBracket) {
			return it, false
		}
		content = append(content, it.Index())
	}

	if !it.Valid() || len(content) == 0 {
		return it, false
	}

	s.add(mdast.NodeLinkLabel, start, it.Index())
	s.spaces = append(s.spaces, content)
	return it, true
}

// parseLinkText reads [text] with balanced nested brackets. The text
// content becomes its own parsing space.
func (s *linkScan) parseLinkText(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	if !it.Is(mdast.TokLBracket) {
		return it, false
	}

	start := it.Index()
	var content []int

	depth := 1
	for it = it.Advance(); it.Valid(); it = it.Advance() {
		if it.Is(mdast.TokRBracket) {
			depth--
			if depth == 0 {
				break
			}
		}
		if it.Is(mdast.TokLBracket) {
			depth++
		}
		content = append(content, it.Index())
	}

	if !it.Valid() {
		return it, false
	}

	s.add(mdast.NodeLinkText, start, it.Index())
	s.spaces = append(s.spaces, content)
	return it, true
}

// parseLinkTitle reads a title delimited by matching quotes or by
// parentheses.
func (s *linkScan) parseLinkTitle(it tokencache.ListIterator) (tokencache.ListIterator, bool) {
	var closing mdast.TokenKind
	switch {
	case it.Is(mdast.TokSingleQuote):
		closing = mdast.TokSingleQuote
	case it.Is(mdast.TokDoubleQuote):
		closing = mdast.TokDoubleQuote
	case it.Is(mdast.TokLParen):
		closing = mdast.TokRParen
	default:
		return it, false
	}

	start := it.Index()
	it = it.Advance()
	for it.Valid() && !it.Is(closing) {
		it = it.Advance()
	}

	if !it.Valid() {
		return it, false
	}

	s.add(mdast.NodeLinkTitle, start, it.Index())
	return it, true
}
