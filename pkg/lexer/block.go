package lexer

import (
	"bytes"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

const (
	codeIndent    = 4
	maxListDigits = 9
	minFenceRun   = 3
)

// prefixInfo describes the container markers found at the start of a line.
type prefixInfo struct {
	// pos is the offset of the first byte after the prefix.
	pos int

	// base is the column where content of the innermost blockquote starts.
	base int

	quotes int
	marked bool
}

func (lx *lexer) line(start, end int) {
	if lx.fence != nil {
		lx.fenceLine(start, end)
		return
	}
	if lx.html != nil && lx.htmlLine(start, end) {
		return
	}

	info := lx.prefix(start, end)
	pos := info.pos

	if isBlank(lx.src[pos:end]) {
		lx.emit(mdast.TokWhitespace, pos, end)
		lx.prevParagraph = false
		return
	}

	col := pos - start
	if !info.marked && !lx.prevParagraph {
		lx.closeLists(col)
	}

	if !lx.prevParagraph && col-lx.enclosing(col, info.base) >= codeIndent {
		// Indented code.
		lx.emit(mdast.TokText, pos, end)
		return
	}

	if lx.blockStart(pos, end, info) {
		lx.prevParagraph = false
		return
	}

	lx.inline(pos, end)
	lx.prevParagraph = true
}

// prefix emits whitespace, blockquote markers and list markers at the start
// of a line.
func (lx *lexer) prefix(start, end int) prefixInfo {
	src := lx.src
	info := prefixInfo{pos: start}

	for info.pos < end {
		pos := info.pos
		if n := spaceRun(src, pos, end); n > 0 {
			lx.emit(mdast.TokWhitespace, pos, pos+n)
			info.pos += n
			continue
		}

		col := pos - start
		if col-lx.enclosing(col, info.base) >= codeIndent {
			return info
		}

		switch c := src[pos]; {
		case c == '>':
			lx.emit(mdast.TokBlockQuote, pos, pos+1)
			info.pos++
			info.base = info.pos - start
			info.quotes++

		case c == '-' || c == '+' || c == '*':
			if !markerFollowed(src, pos+1, end) {
				return info
			}
			rest := src[pos:end]
			if isThematicBreak(rest) || (lx.prevParagraph && setextLevel(rest) != 0) {
				return info
			}
			lx.emit(mdast.TokListBullet, pos, pos+1)
			lx.openList(start, pos, pos+1, end)
			info.pos++
			info.marked = true

		case isDigit(c):
			n := 0
			for pos+n < end && isDigit(src[pos+n]) {
				n++
			}
			if n > maxListDigits || pos+n >= end || (src[pos+n] != '.' && src[pos+n] != ')') ||
				!markerFollowed(src, pos+n+1, end) {
				return info
			}
			lx.emit(mdast.TokListNumber, pos, pos+n+1)
			lx.openList(start, pos, pos+n+1, end)
			info.pos += n + 1
			info.marked = true

		default:
			return info
		}
	}

	return info
}

// markerFollowed reports whether a list marker ending at pos is followed by
// whitespace or the end of the line.
func markerFollowed(src []byte, pos, end int) bool {
	return pos >= end || isSpace(src[pos])
}

// enclosing returns the content column that col is measured against: the
// deepest open list item starting at or before col, or the blockquote base.
func (lx *lexer) enclosing(col, base int) int {
	result := base
	for _, content := range lx.lists {
		if content <= col && content > result {
			result = content
		}
	}
	return result
}

func (lx *lexer) openList(lineStart, markerStart, markerEnd, end int) {
	markerCol := markerStart - lineStart
	lx.closeLists(markerCol)

	spaces := spaceRun(lx.src, markerEnd, end)
	content := markerEnd + spaces - lineStart
	if spaces == 0 || spaces > codeIndent || markerEnd+spaces >= end {
		content = markerEnd + 1 - lineStart
	}
	lx.lists = append(lx.lists, content)
}

// closeLists forgets list items whose content starts right of col.
func (lx *lexer) closeLists(col int) {
	for len(lx.lists) > 0 && lx.lists[len(lx.lists)-1] > col {
		lx.lists = lx.lists[:len(lx.lists)-1]
	}
}

// blockStart emits the leaf block marker starting at pos, if any.
func (lx *lexer) blockStart(pos, end int, info prefixInfo) bool {
	src := lx.src
	rest := src[pos:end]
	contentEnd := trimEnd(src, pos, end)

	if lx.prevParagraph {
		switch setextLevel(rest) {
		case 1:
			lx.emit(mdast.TokSetext1, pos, contentEnd)
			lx.emit(mdast.TokWhitespace, contentEnd, end)
			return true
		case 2:
			lx.emit(mdast.TokSetext2, pos, contentEnd)
			lx.emit(mdast.TokWhitespace, contentEnd, end)
			return true
		}
	}

	if isThematicBreak(rest) {
		lx.emit(mdast.TokHorizontalRule, pos, contentEnd)
		lx.emit(mdast.TokWhitespace, contentEnd, end)
		return true
	}

	if n := lx.fenceOpen(pos, end); n > 0 {
		lx.fence = &fenceState{char: src[pos], length: n, quotes: info.quotes}
		lx.emit(mdast.TokCodeFenceStart, pos, pos+n)
		infoStart := pos + n + spaceRun(src, pos+n, end)
		lx.emit(mdast.TokWhitespace, pos+n, infoStart)
		lx.emit(mdast.TokFenceLang, infoStart, contentEnd)
		lx.emit(mdast.TokWhitespace, max(infoStart, contentEnd), end)
		return true
	}

	if n := atxRun(rest); n > 0 {
		lx.emit(mdast.TokATXHeader, pos, pos+n)
		lx.inline(pos+n, end)
		return true
	}

	if closer, ok := htmlBlockStart(rest); ok {
		lx.emit(mdast.TokHTMLBlock, pos, end)
		if closer == nil || !bytes.Contains(rest, closer) {
			lx.html = &htmlState{quotes: info.quotes, closer: closer}
		}
		return true
	}

	return false
}

// fenceLine lexes a line inside an open code fence.
func (lx *lexer) fenceLine(start, end int) {
	pos := lx.quotePrefix(start, end, lx.fence.quotes)

	run := 0
	for pos+run < end && lx.src[pos+run] == lx.fence.char {
		run++
	}
	if run >= lx.fence.length && isBlank(lx.src[pos+run:end]) {
		lx.emit(mdast.TokCodeFenceEnd, pos, pos+run)
		lx.emit(mdast.TokWhitespace, pos+run, end)
		lx.fence = nil
		lx.prevParagraph = false
		return
	}

	lx.emit(mdast.TokCode, pos, end)
}

// htmlLine lexes a continuation line of an HTML block. It returns false when
// the line ends the block without belonging to it.
func (lx *lexer) htmlLine(start, end int) bool {
	state := lx.html
	if state.closer == nil && isBlank(lx.src[start:end]) {
		lx.html = nil
		return false
	}

	pos := lx.quotePrefix(start, end, state.quotes)
	if state.closer == nil && isBlank(lx.src[pos:end]) {
		lx.html = nil
		lx.emit(mdast.TokWhitespace, pos, end)
		lx.prevParagraph = false
		return true
	}

	lx.emit(mdast.TokHTMLBlock, pos, end)
	if state.closer != nil && bytes.Contains(lx.src[pos:end], state.closer) {
		lx.html = nil
	}
	lx.prevParagraph = false
	return true
}

// quotePrefix emits leading whitespace and up to limit blockquote markers.
func (lx *lexer) quotePrefix(start, end, limit int) int {
	pos := start
	quotes := 0
	for pos < end {
		if n := spaceRun(lx.src, pos, end); n > 0 {
			lx.emit(mdast.TokWhitespace, pos, pos+n)
			pos += n
			continue
		}
		if quotes < limit && lx.src[pos] == '>' {
			lx.emit(mdast.TokBlockQuote, pos, pos+1)
			pos++
			quotes++
			continue
		}
		break
	}
	return pos
}

// fenceOpen returns the length of the opening fence run at pos, or 0.
func (lx *lexer) fenceOpen(pos, end int) int {
	src := lx.src
	c := src[pos]
	if c != '`' && c != '~' {
		return 0
	}

	n := 0
	for pos+n < end && src[pos+n] == c {
		n++
	}
	if n < minFenceRun {
		return 0
	}
	if c == '`' && bytes.IndexByte(src[pos+n:end], '`') >= 0 {
		return 0
	}
	return n
}

// atxRun returns the length of an ATX marker at the start of line, or 0.
func atxRun(line []byte) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || (n < len(line) && !isSpace(line[n])) {
		return 0
	}
	return n
}

// setextLevel returns 1 or 2 when line is a setext underline, 0 otherwise.
func setextLevel(line []byte) int {
	if len(line) == 0 || (line[0] != '=' && line[0] != '-') {
		return 0
	}

	c := line[0]
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	if !isBlank(line[n:]) {
		return 0
	}
	if c == '=' {
		return 1
	}
	return 2
}

// isThematicBreak reports whether line consists of three or more '*', '-' or
// '_' characters, optionally separated by spaces.
func isThematicBreak(line []byte) bool {
	if len(line) == 0 {
		return false
	}

	c := line[0]
	if c != '*' && c != '-' && c != '_' {
		return false
	}

	count := 0
	for _, b := range line {
		switch {
		case b == c:
			count++
		case isSpace(b):
		default:
			return false
		}
	}
	return count >= minFenceRun
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
