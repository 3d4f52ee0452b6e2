package lexer

import (
	"regexp"
	"unicode/utf8"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

const maxSchemeLen = 32

//nolint:gochecknoglobals // Read-only lookup table.
var punctuation = map[byte]mdast.TokenKind{
	'[':  mdast.TokLBracket,
	']':  mdast.TokRBracket,
	'(':  mdast.TokLParen,
	')':  mdast.TokRParen,
	'<':  mdast.TokLT,
	'>':  mdast.TokGT,
	':':  mdast.TokColon,
	'!':  mdast.TokExclamationMark,
	'\'': mdast.TokSingleQuote,
	'"':  mdast.TokDoubleQuote,
}

//nolint:gochecknoglobals // Compiled once.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// inline emits inline tokens for [pos, end).
func (lx *lexer) inline(pos, end int) {
	src := lx.src

	for pos < end {
		c := src[pos]

		switch {
		case isSpace(c):
			n := spaceRun(src, pos, end)
			lx.emit(mdast.TokWhitespace, pos, pos+n)
			pos += n

		case c == '*' || c == '_':
			lx.emit(mdast.TokEmph, pos, pos+1)
			pos++

		case c == '`':
			n := backtickRun(src, pos, end)
			lx.emit(mdast.TokBacktick, pos, pos+n)
			pos += n

		case c == '\\':
			pos = lx.escape(pos, end)

		case c == '<':
			if n := lx.autolink(pos, end); n > 0 {
				pos += n
				continue
			}
			lx.emit(mdast.TokLT, pos, pos+1)
			pos++

		case c == 0:
			lx.emit(mdast.TokBadCharacter, pos, pos+1)
			pos++

		default:
			if kind, ok := punctuation[c]; ok {
				lx.emit(kind, pos, pos+1)
				pos++
				continue
			}

			if n := textRun(src, pos, end); n > 0 {
				lx.emit(mdast.TokText, pos, pos+n)
				pos += n
				continue
			}

			// Invalid UTF-8.
			lx.emit(mdast.TokBadCharacter, pos, pos+1)
			pos++
		}
	}
}

func (lx *lexer) escape(pos, end int) int {
	src := lx.src

	if pos+1 < end && src[pos+1] == '`' {
		n := backtickRun(src, pos+1, end)
		lx.emit(mdast.TokEscapedBackticks, pos, pos+1+n)
		return pos + 1 + n
	}
	if pos+1 < end && isASCIIPunct(src[pos+1]) {
		lx.emit(mdast.TokText, pos, pos+2)
		return pos + 2
	}

	lx.emit(mdast.TokText, pos, pos+1)
	return pos + 1
}

// autolink emits LT, payload and GT for <scheme:...> or <user@host> and
// returns the number of bytes consumed, or 0 when pos does not start one.
func (lx *lexer) autolink(pos, end int) int {
	src := lx.src

	closeAt := -1
	for i := pos + 1; i < end; i++ {
		c := src[i]
		if c == '>' {
			closeAt = i
			break
		}
		if c == '<' || c <= ' ' {
			return 0
		}
	}
	if closeAt <= pos+1 {
		return 0
	}

	payload := src[pos+1 : closeAt]
	var kind mdast.TokenKind
	switch {
	case isURI(payload):
		kind = mdast.TokAutolink
	case emailPattern.Match(payload):
		kind = mdast.TokEmailAutolink
	default:
		return 0
	}

	lx.emit(mdast.TokLT, pos, pos+1)
	lx.emit(kind, pos+1, closeAt)
	lx.emit(mdast.TokGT, closeAt, closeAt+1)
	return closeAt + 1 - pos
}

// isURI reports whether payload starts with a scheme of 2 to 32 characters
// followed by a colon.
func isURI(payload []byte) bool {
	colon := -1
	for i, c := range payload {
		if c == ':' {
			colon = i
			break
		}
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit(c) && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	return colon >= 2 && colon <= maxSchemeLen
}

func backtickRun(src []byte, pos, end int) int {
	n := 0
	for pos+n < end && src[pos+n] == '`' {
		n++
	}
	return n
}

// textRun returns the length of plain text starting at pos. It stops at
// bytes with inline meaning and at invalid UTF-8.
func textRun(src []byte, pos, end int) int {
	n := 0
	for pos+n < end {
		c := src[pos+n]
		if c < utf8.RuneSelf {
			if isSpecial(c) {
				break
			}
			n++
			continue
		}

		r, size := utf8.DecodeRune(src[pos+n : end])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		n += size
	}
	return n
}

func isSpecial(c byte) bool {
	switch c {
	case ' ', '\t', '*', '_', '`', '\\', 0:
		return true
	}
	_, ok := punctuation[c]
	return ok
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
