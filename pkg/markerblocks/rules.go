package markerblocks

import (
	"slices"

	"github.com/yaklabco/gomdtree/pkg/constraints"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

const codeIndent = 4

// Paragraphs close before these tokens on the next line.
//
//nolint:gochecknoglobals // Read-only set.
var paragraphBreakers = []mdast.TokenKind{
	mdast.TokEOL,
	mdast.TokHorizontalRule,
	mdast.TokCodeFenceStart,
	mdast.TokListBullet,
	mdast.TokListNumber,
	mdast.TokATXHeader,
	mdast.TokBlockQuote,
	mdast.TokHTMLBlock,
}

func processBlockQuote(b *Block, _ mdast.TokenKind, it tokencache.Iterator) ProcessingResult {
	next := constraints.FromBase(it, 1, b.constraints)
	if !next.ExtendsPrev(b.constraints) {
		return Default
	}
	return Pass
}

func processList(b *Block, _ mdast.TokenKind, it tokencache.Iterator) ProcessingResult {
	if ConsecutiveEOLs(it) >= 3 {
		return Default
	}

	eol := FirstNonWhitespaceLineEOLRawIndex(it)
	next := constraints.FromBase(it, eol+1, b.constraints)
	if !next.ExtendsList(b.constraints) {
		return Default
	}
	return Pass
}

func processListItem(b *Block, _ mdast.TokenKind, it tokencache.Iterator) ProcessingResult {
	if ConsecutiveEOLs(it) >= 3 {
		return Default
	}

	eol := FirstNonWhitespaceLineEOLRawIndex(it)
	next := constraints.FromBase(it, eol+1, b.constraints)
	if !next.ExtendsPrev(b.constraints) {
		return Default
	}
	return Cancel
}

func processCodeBlock(b *Block, kind mdast.TokenKind, it tokencache.Iterator) ProcessingResult {
	if kind != mdast.TokEOL {
		return Cancel
	}

	afterEOL, ok := it.Advance().Kind()

	var nonWhitespace int
	if ok && afterEOL == mdast.TokBlockQuote {
		next := constraints.FromBase(it, 1, b.constraints)
		if !next.UpstreamWith(b.constraints) || !next.ExtendsPrev(b.constraints) {
			return Default
		}
		nonWhitespace = FirstNextLineNonBlockquoteRawIndex(it)
		afterEOL, ok = it.RawLookup(nonWhitespace)
	} else {
		nonWhitespace = FirstNonWhitespaceRawIndex(it)
	}

	if ok && afterEOL == mdast.TokEOL {
		return Cancel
	}

	indent := it.RawStart(nonWhitespace) - it.RawStart(1)
	if indent < b.constraints.Indent()+codeIndent {
		return Default
	}
	return Cancel
}

func processCodeFence(_ *Block, kind mdast.TokenKind, _ tokencache.Iterator) ProcessingResult {
	switch kind {
	case mdast.TokCodeFenceEnd:
		// The end marker belongs to the fence, so closing waits one token.
		return ProcessingResult{
			ChildrenAction: ActionDefault,
			SelfAction:     ActionDone,
			EventAction:    EventCancel,
		}.Postpone()
	case mdast.TokEOL:
		return Pass
	default:
		return Cancel
	}
}

func processAtxHeader(_ *Block, _ mdast.TokenKind, _ tokencache.Iterator) ProcessingResult {
	return ProcessingResult{
		ChildrenAction: ActionDrop,
		SelfAction:     ActionDone,
		EventAction:    EventPropagate,
	}
}

func processSetextHeader(b *Block, kind mdast.TokenKind, _ tokencache.Iterator) ProcessingResult {
	if kind == mdast.TokSetext1 {
		b.nodeKind = mdast.NodeSetext1
	} else {
		b.nodeKind = mdast.NodeSetext2
	}
	return Default.Postpone()
}

func processParagraph(b *Block, _ mdast.TokenKind, it tokencache.Iterator) ProcessingResult {
	if ConsecutiveEOLs(it) >= 2 {
		return Default
	}

	afterEOL, ok := it.Advance().Kind()
	if ok && afterEOL == mdast.TokBlockQuote {
		if !constraints.FromBase(it, 1, b.constraints).UpstreamWith(b.constraints) {
			return Default
		}
		afterEOL, ok = it.RawLookup(FirstNextLineNonBlockquoteRawIndex(it))
	}

	if !ok {
		return Default
	}

	switch afterEOL {
	case mdast.TokSetext1, mdast.TokSetext2:
		return ProcessingResult{
			ChildrenAction: ActionNothing,
			SelfAction:     ActionDrop,
			EventAction:    EventPropagate,
		}
	default:
		if slices.Contains(paragraphBreakers, afterEOL) {
			return Default
		}
	}

	return Cancel
}

func atxInlineRanges(b *Block) []production.Range {
	return []production.Range{{Start: b.marker.Start() + 1, End: b.env.Holder.Position()}}
}

func setextInlineRanges(b *Block) []production.Range {
	return []production.Range{{Start: b.marker.Start(), End: b.env.Holder.Position() - 2}}
}

func paragraphInlineRanges(b *Block) []production.Range {
	return FilterBlockquotes(b.env.Cache, production.Range{Start: b.marker.Start(), End: b.env.Holder.Position()})
}
