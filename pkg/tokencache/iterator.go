package tokencache

import (
	"slices"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Cursor is the read-only part shared by Iterator and ListIterator.
// Raw lookups are relative to the raw position of the current logical
// token.
type Cursor interface {
	Index() int
	Valid() bool
	Kind() (mdast.TokenKind, bool)
	Is(kinds ...mdast.TokenKind) bool
	Start() int
	End() int
	Text() string
	RawLookup(steps int) (mdast.TokenKind, bool)
	RawIs(steps int, kinds ...mdast.TokenKind) bool
	RawStart(steps int) int
	RawText(steps int) string
}

// Iterator is a position in the logical token stream. It is a value;
// Advance and Rollback return new iterators.
type Iterator struct {
	cache *Cache
	index int
}

var (
	_ Cursor = Iterator{}
	_ Cursor = ListIterator{}
)

// Index returns the logical index.
func (it Iterator) Index() int {
	return it.index
}

// Valid reports whether the iterator points at a logical token.
func (it Iterator) Valid() bool {
	return it.index >= 0 && it.index < it.cache.Len()
}

// Kind returns the kind of the current token.
func (it Iterator) Kind() (mdast.TokenKind, bool) {
	return it.cache.Kind(it.index)
}

// Is reports whether the current token has one of the given kinds.
func (it Iterator) Is(kinds ...mdast.TokenKind) bool {
	kind, ok := it.Kind()
	return ok && slices.Contains(kinds, kind)
}

// Start returns the byte offset where the current token begins.
func (it Iterator) Start() int {
	return it.cache.rawStart(it.cache.RawIndex(it.index))
}

// End returns the byte offset where the current token ends.
func (it Iterator) End() int {
	return it.cache.rawEnd(it.cache.RawIndex(it.index))
}

// Text returns the source text of the current token.
func (it Iterator) Text() string {
	if !it.Valid() {
		return ""
	}
	return string(it.cache.content[it.Start():it.End()])
}

// Advance moves to the next logical token.
func (it Iterator) Advance() Iterator {
	return Iterator{cache: it.cache, index: it.index + 1}
}

// Rollback moves to the previous logical token.
func (it Iterator) Rollback() Iterator {
	return Iterator{cache: it.cache, index: it.index - 1}
}

// RawLookup returns the kind of the raw token steps away from the current
// one, including whitespace.
func (it Iterator) RawLookup(steps int) (mdast.TokenKind, bool) {
	return it.cache.rawKind(it.cache.RawIndex(it.index) + steps)
}

// RawIs reports whether the raw token steps away has one of the given kinds.
func (it Iterator) RawIs(steps int, kinds ...mdast.TokenKind) bool {
	kind, ok := it.RawLookup(steps)
	return ok && slices.Contains(kinds, kind)
}

// RawStart returns the start offset of the raw token steps away, clamped to
// the content bounds.
func (it Iterator) RawStart(steps int) int {
	return it.cache.rawStart(it.cache.RawIndex(it.index) + steps)
}

// RawText returns the source text of the raw token steps away, or "" when
// out of range.
func (it Iterator) RawText(steps int) string {
	raw := it.cache.RawIndex(it.index) + steps
	if raw < 0 || raw >= it.cache.RawLen() {
		return ""
	}
	return string(it.cache.tokens[raw].Text(it.cache.content))
}

// ListIterator walks an ordered list of logical indices. Advance and
// Rollback move within the list; everything else behaves like an Iterator
// at the selected logical index.
type ListIterator struct {
	cache     *Cache
	indices   []int
	listIndex int
}

// ListIndex returns the position within the index list.
func (it ListIterator) ListIndex() int {
	return it.listIndex
}

// Index returns the logical index the iterator points at.
func (it ListIterator) Index() int {
	return it.base().index
}

// Valid reports whether the list position is in range.
func (it ListIterator) Valid() bool {
	return it.listIndex >= 0 && it.listIndex < len(it.indices) && it.base().Valid()
}

// Kind returns the kind of the current token.
func (it ListIterator) Kind() (mdast.TokenKind, bool) {
	if !it.Valid() {
		return 0, false
	}
	return it.base().Kind()
}

// Is reports whether the current token has one of the given kinds.
func (it ListIterator) Is(kinds ...mdast.TokenKind) bool {
	kind, ok := it.Kind()
	return ok && slices.Contains(kinds, kind)
}

// Start returns the byte offset where the current token begins.
func (it ListIterator) Start() int {
	return it.base().Start()
}

// End returns the byte offset where the current token ends.
func (it ListIterator) End() int {
	return it.base().End()
}

// Text returns the source text of the current token.
func (it ListIterator) Text() string {
	if !it.Valid() {
		return ""
	}
	return it.base().Text()
}

// Advance moves to the next entry of the list.
func (it ListIterator) Advance() ListIterator {
	return ListIterator{cache: it.cache, indices: it.indices, listIndex: it.listIndex + 1}
}

// Rollback moves to the previous entry of the list.
func (it ListIterator) Rollback() ListIterator {
	return ListIterator{cache: it.cache, indices: it.indices, listIndex: it.listIndex - 1}
}

// RawLookup returns the kind of the raw token steps away from the current
// one.
func (it ListIterator) RawLookup(steps int) (mdast.TokenKind, bool) {
	return it.base().RawLookup(steps)
}

// RawIs reports whether the raw token steps away has one of the given kinds.
func (it ListIterator) RawIs(steps int, kinds ...mdast.TokenKind) bool {
	return it.base().RawIs(steps, kinds...)
}

// RawStart returns the start offset of the raw token steps away.
func (it ListIterator) RawStart(steps int) int {
	return it.base().RawStart(steps)
}

// RawText returns the source text of the raw token steps away.
func (it ListIterator) RawText(steps int) string {
	return it.base().RawText(steps)
}

// base returns the plain iterator at the selected logical index.
func (it ListIterator) base() Iterator {
	switch {
	case it.listIndex < 0:
		return Iterator{cache: it.cache, index: -1}
	case it.listIndex >= len(it.indices):
		return Iterator{cache: it.cache, index: it.cache.Len()}
	default:
		return Iterator{cache: it.cache, index: it.indices[it.listIndex]}
	}
}
