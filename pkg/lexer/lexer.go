// Package lexer splits Markdown source into the raw token stream consumed by
// the parser. Every byte of the input belongs to exactly one token.
package lexer

import (
	"bytes"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Tokenize classifies content line by line and returns a gap-free token
// stream. Consecutive mergeable tokens of the same kind are collapsed.
func Tokenize(content []byte) []mdast.Token {
	lx := &lexer{src: content}

	for start := 0; start < len(content); {
		lineEnd := len(content)
		next := len(content)
		if idx := bytes.IndexByte(content[start:], '\n'); idx >= 0 {
			lineEnd = start + idx
			next = lineEnd + 1
		}

		textEnd := lineEnd
		if next > lineEnd && textEnd > start && content[textEnd-1] == '\r' {
			textEnd--
		}

		lx.line(start, textEnd)
		lx.emit(mdast.TokEOL, textEnd, next)
		start = next
	}

	return merge(lx.tokens)
}

type fenceState struct {
	char   byte
	length int
	quotes int
}

type htmlState struct {
	quotes int
	closer []byte
}

type lexer struct {
	src    []byte
	tokens []mdast.Token

	// prevParagraph is set when the previous line continued paragraph text.
	prevParagraph bool

	fence *fenceState
	html  *htmlState

	// lists holds the content columns of the list items opened so far.
	lists []int
}

func (lx *lexer) emit(kind mdast.TokenKind, start, end int) {
	if end <= start {
		return
	}
	lx.tokens = append(lx.tokens, mdast.Token{Kind: kind, StartOffset: start, EndOffset: end})
}

func merge(tokens []mdast.Token) []mdast.Token {
	if len(tokens) == 0 {
		return tokens
	}

	out := tokens[:1]
	for _, tok := range tokens[1:] {
		last := &out[len(out)-1]
		if last.Kind == tok.Kind && tok.Kind.Mergeable() && last.EndOffset == tok.StartOffset {
			last.EndOffset = tok.EndOffset
			continue
		}
		out = append(out, tok)
	}

	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// spaceRun returns the number of spaces and tabs starting at pos.
func spaceRun(src []byte, pos, end int) int {
	n := 0
	for pos+n < end && isSpace(src[pos+n]) {
		n++
	}
	return n
}

func isBlank(line []byte) bool {
	for _, c := range line {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

// trimEnd returns the offset just past the last non-space byte in [pos, end).
func trimEnd(src []byte, pos, end int) int {
	for end > pos && isSpace(src[end-1]) {
		end--
	}
	return end
}
