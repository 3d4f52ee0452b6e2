// Package tokencache provides the two views of a token stream used by the
// parser: the raw view with every token, and the logical view that skips
// whitespace.
package tokencache

import (
	"unicode/utf8"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Cache indexes a token stream for logical and raw lookups. It is immutable
// after construction and safe for concurrent use.
type Cache struct {
	content []byte
	tokens  []mdast.Token

	// logical maps logical indices to raw indices.
	logical []int
}

// New builds a cache over tokens, which must cover content.
func New(content []byte, tokens []mdast.Token) *Cache {
	logical := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		if tok.Kind != mdast.TokWhitespace {
			logical = append(logical, i)
		}
	}

	return &Cache{
		content: content,
		tokens:  tokens,
		logical: logical,
	}
}

// Len returns the number of logical tokens.
func (c *Cache) Len() int {
	return len(c.logical)
}

// RawLen returns the number of raw tokens.
func (c *Cache) RawLen() int {
	return len(c.tokens)
}

// Content returns the source bytes.
func (c *Cache) Content() []byte {
	return c.content
}

// Tokens returns the raw token stream.
func (c *Cache) Tokens() []mdast.Token {
	return c.tokens
}

// Kind returns the kind of the logical token at index.
func (c *Cache) Kind(index int) (mdast.TokenKind, bool) {
	if index < 0 || index >= len(c.logical) {
		return 0, false
	}
	return c.tokens[c.logical[index]].Kind, true
}

// RawIndex returns the raw index of the logical token at index. Indices
// before the stream map to -1, indices past it to RawLen.
func (c *Cache) RawIndex(index int) int {
	switch {
	case index < 0:
		return -1
	case index >= len(c.logical):
		return len(c.tokens)
	default:
		return c.logical[index]
	}
}

// Iterator returns a cursor positioned at the logical index.
func (c *Cache) Iterator(index int) Iterator {
	return Iterator{cache: c, index: index}
}

// ListIterator returns a cursor that walks the given logical indices.
func (c *Cache) ListIterator(indices []int, listIndex int) ListIterator {
	return ListIterator{cache: c, indices: indices, listIndex: listIndex}
}

// RawCharAt decodes the character starting at byte offset.
func (c *Cache) RawCharAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(c.content) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(c.content[offset:])
	return r, true
}

// RawCharBefore decodes the character ending just before byte offset.
func (c *Cache) RawCharBefore(offset int) (rune, bool) {
	if offset <= 0 || offset > len(c.content) {
		return 0, false
	}
	r, _ := utf8.DecodeLastRune(c.content[:offset])
	return r, true
}

func (c *Cache) rawKind(raw int) (mdast.TokenKind, bool) {
	if raw < 0 || raw >= len(c.tokens) {
		return 0, false
	}
	return c.tokens[raw].Kind, true
}

func (c *Cache) rawStart(raw int) int {
	switch {
	case raw < 0:
		return 0
	case raw >= len(c.tokens):
		return len(c.content)
	default:
		return c.tokens[raw].StartOffset
	}
}

func (c *Cache) rawEnd(raw int) int {
	switch {
	case raw < 0:
		return 0
	case raw >= len(c.tokens):
		return len(c.content)
	default:
		return c.tokens[raw].EndOffset
	}
}
