package markerblocks

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

// ConsecutiveEOLs counts the logical EOL tokens starting at it. Blank lines
// hold only whitespace, so "\n  \n" counts as two.
func ConsecutiveEOLs(it tokencache.Iterator) int {
	count := 0
	for it.Is(mdast.TokEOL) {
		count++
		it = it.Advance()
	}
	return count
}

// FirstNextLineNonBlockquoteRawIndex returns the raw offset of the first
// token of the next line that is neither whitespace nor a blockquote marker.
// it must point at an EOL.
func FirstNextLineNonBlockquoteRawIndex(it tokencache.Cursor) int {
	index := 1
	for it.RawIs(index, mdast.TokWhitespace, mdast.TokBlockQuote) {
		index++
	}
	return index
}

// FirstNonWhitespaceRawIndex returns the raw offset of the first token at or
// after it that is neither whitespace nor an EOL.
func FirstNonWhitespaceRawIndex(it tokencache.Cursor) int {
	index := 0
	for it.RawIs(index, mdast.TokWhitespace, mdast.TokEOL) {
		index++
	}
	return index
}

// FirstNonWhitespaceLineEOLRawIndex returns the raw offset of the EOL that
// ends the last blank line before the next content line.
func FirstNonWhitespaceLineEOLRawIndex(it tokencache.Cursor) int {
	index := FirstNonWhitespaceRawIndex(it) - 1
	for index >= 0 && !it.RawIs(index, mdast.TokEOL) {
		index--
	}
	return index
}

// IndentBeforeRawToken returns the byte distance from the start of the line
// to the raw token at rawIndex.
func IndentBeforeRawToken(it tokencache.Cursor, rawIndex int) int {
	eolPos := rawIndex - 1
	for {
		kind, ok := it.RawLookup(eolPos)
		if !ok || kind == mdast.TokEOL {
			break
		}
		eolPos--
	}
	return it.RawStart(rawIndex) - it.RawStart(eolPos+1)
}

// IsAtLineStart reports whether only whitespace precedes it on its line.
func IsAtLineStart(it tokencache.Cursor) bool {
	for index := -1; ; index-- {
		kind, ok := it.RawLookup(index)
		if !ok || kind == mdast.TokEOL {
			return true
		}
		if kind != mdast.TokWhitespace {
			return false
		}
	}
}

// FilterBlockquotes splits r around BLOCK_QUOTE tokens, dropping empty
// pieces.
func FilterBlockquotes(cache *tokencache.Cache, r production.Range) []production.Range {
	var result []production.Range
	start := r.Start
	for i := r.Start; i < r.End; i++ {
		if kind, ok := cache.Kind(i); ok && kind == mdast.TokBlockQuote {
			if start < i {
				result = append(result, production.Range{Start: start, End: i})
			}
			start = i + 1
		}
	}
	if start < r.End {
		result = append(result, production.Range{Start: start, End: r.End})
	}
	return result
}
