// Package constraints describes the container prefix of a line: the nested
// blockquote and list markers that must be present (explicit) or implied by
// indentation (implicit) for a line to continue a block.
package constraints

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

const (
	// BlockQuoteType marks a blockquote entry.
	BlockQuoteType = '>'

	codeIndent      = 4
	quoteMarkerWide = 2
)

// Constraints is an immutable stack of container entries. Each entry has
// the indentation of its content, the marker character ('>' for blockquotes,
// the bullet or ordered-list delimiter for lists) and whether the marker was
// present on the line. The zero value is Base.
type Constraints struct {
	indents  []int
	types    []byte
	explicit []bool
}

// Base is the empty constraint set of top-level content.
//
//nolint:gochecknoglobals // Zero value; never mutated.
var Base = Constraints{}

// IsConstraintKind reports whether tokens of kind open a container.
func IsConstraintKind(kind mdast.TokenKind) bool {
	return kind == mdast.TokBlockQuote || kind == mdast.TokListBullet || kind == mdast.TokListNumber
}

// Indent returns the content indentation of the innermost entry, or 0.
func (c Constraints) Indent() int {
	if len(c.indents) == 0 {
		return 0
	}
	return c.indents[len(c.indents)-1]
}

// Depth returns the number of entries.
func (c Constraints) Depth() int {
	return len(c.types)
}

// Equal reports whether both constraint sets have identical entries.
func (c Constraints) Equal(other Constraints) bool {
	if len(c.types) != len(other.types) {
		return false
	}
	for i := range c.types {
		if c.types[i] != other.types[i] || c.indents[i] != other.indents[i] || c.explicit[i] != other.explicit[i] {
			return false
		}
	}
	return true
}

// UpstreamWith reports whether other starts with c and c carries no
// explicit list markers.
func (c Constraints) UpstreamWith(other Constraints) bool {
	return other.startsWith(c) && !c.containsListMarkers(len(c.types))
}

// ExtendsPrev reports whether c starts with other and none of the entries
// shared with other is an explicit list marker.
func (c Constraints) ExtendsPrev(other Constraints) bool {
	return c.startsWith(other) && !c.containsListMarkers(len(other.types))
}

// ExtendsList is ExtendsPrev for a list's own constraints, whose last entry
// may be explicit. It returns false for an empty other.
func (c Constraints) ExtendsList(other Constraints) bool {
	if len(other.types) == 0 {
		return false
	}
	return c.startsWith(other) && !c.containsListMarkers(len(other.types)-1)
}

// AddModifierIfNeeded extends c with the container opened by the current
// token, if it opens one.
func (c Constraints) AddModifierIfNeeded(kind mdast.TokenKind, it tokencache.Cursor) Constraints {
	if !IsConstraintKind(kind) {
		return c
	}
	return c.AddModifier(kind, it, 0)
}

// AddModifier extends c with the explicit entry for the marker token at
// rawOffset relative to it.
func (c Constraints) AddModifier(kind mdast.TokenKind, it tokencache.Cursor, rawOffset int) Constraints {
	text := it.RawText(rawOffset)
	if text == "" {
		return c
	}

	var modifier byte
	switch kind {
	case mdast.TokBlockQuote:
		modifier = BlockQuoteType
	case mdast.TokListNumber:
		modifier = text[len(text)-1]
	case mdast.TokListBullet:
		modifier = text[0]
	default:
		return c
	}

	lineStart := rawOffset
	for {
		prev, ok := it.RawLookup(lineStart - 1)
		if !ok || prev == mdast.TokEOL {
			break
		}
		lineStart--
	}

	markerStart := it.RawStart(rawOffset) - it.RawStart(lineStart)
	wsBefore := markerStart - c.Indent()

	if modifier == BlockQuoteType {
		return c.with(c.Indent()+wsBefore+quoteMarkerWide, modifier, true)
	}

	markerWidth := len(text)
	addition := markerWidth
	if it.RawIs(rawOffset+1, mdast.TokWhitespace) {
		wsAfter := it.RawStart(rawOffset+2) - it.RawStart(rawOffset+1)
		if wsAfter >= codeIndent {
			addition = markerWidth + 1
		} else {
			addition = markerWidth + wsAfter
		}
	}

	return c.with(c.Indent()+wsBefore+addition, modifier, true)
}

// FillImplicitsOnWhiteSpace extends c with implicit list entries copied
// from prevLine, as far as the whitespace token at rawIndex is wide enough
// to cover their indentation. Filling stops at a blockquote entry.
func (c Constraints) FillImplicitsOnWhiteSpace(it tokencache.Cursor, rawIndex int, prevLine Constraints) Constraints {
	wsLen := it.RawStart(rawIndex+1) - it.RawStart(rawIndex)

	eaten := 0
	depth := len(c.types)
	if depth > 0 && c.types[depth-1] == BlockQuoteType {
		eaten++
	}

	result := c
	for i := depth; i < len(prevLine.types); i++ {
		if prevLine.types[i] == BlockQuoteType {
			break
		}

		delta := prevLine.indents[i]
		if i > 0 {
			delta -= prevLine.indents[i-1]
		}
		if eaten+delta > wsLen {
			break
		}

		eaten += delta
		result = result.with(result.Indent()+delta, prevLine.types[i], false)
	}

	return result
}

// FromBase computes the constraints of the line starting at rawIndex,
// given the constraints of the previous line.
func FromBase(it tokencache.Cursor, rawIndex int, prevLine Constraints) Constraints {
	lineStart := it.RawStart(rawIndex)

	result := Base
	aligned := true
	for offset := rawIndex; ; offset++ {
		kind, ok := it.RawLookup(offset)
		if !ok || (kind != mdast.TokWhitespace && !IsConstraintKind(kind)) {
			break
		}
		if it.RawStart(offset)-lineStart >= result.Indent()+codeIndent {
			break
		}

		if kind == mdast.TokWhitespace {
			if aligned {
				result = result.FillImplicitsOnWhiteSpace(it, offset, prevLine)
			}
			continue
		}

		next := result.AddModifier(kind, it, offset)
		aligned = prevLine.startsWith(next)
		result = next
	}

	return result
}

// String renders the entries as "[>2 -!4]"; '!' marks explicit entries.
func (c Constraints) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range c.types {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(c.types[i])
		if c.explicit[i] {
			sb.WriteByte('!')
		}
		sb.WriteString(strconv.Itoa(c.indents[i]))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (c Constraints) with(indent int, typ byte, explicit bool) Constraints {
	n := len(c.types)
	next := Constraints{
		indents:  make([]int, n+1),
		types:    make([]byte, n+1),
		explicit: make([]bool, n+1),
	}
	copy(next.indents, c.indents)
	copy(next.types, c.types)
	copy(next.explicit, c.explicit)
	next.indents[n] = indent
	next.types[n] = typ
	next.explicit[n] = explicit
	return next
}

func (c Constraints) startsWith(other Constraints) bool {
	if len(c.types) < len(other.types) {
		return false
	}
	for i := range other.types {
		if c.types[i] != other.types[i] {
			return false
		}
	}
	return true
}

func (c Constraints) containsListMarkers(upTo int) bool {
	for i := 0; i < upTo && i < len(c.types); i++ {
		if c.types[i] != BlockQuoteType && c.explicit[i] {
			return true
		}
	}
	return false
}
