package inline

import (
	"unicode"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/production"
	"github.com/yaklabco/gomdtree/pkg/tokencache"
)

const (
	maxDelimiterRun = 50

	underscore = '_'
)

// EmphStrongParser matches runs of '*' or '_' into EMPH and STRONG nodes.
// Only one delimiter character is tracked at a time; runs of the other
// character are left as text while openers are pending.
type EmphStrongParser struct{}

type opener struct {
	index  int
	length int
}

// Parse implements Parser.
func (EmphStrongParser) Parse(cache *tokencache.Cache, ranges []production.Range) Result {
	var result Result

	indices := RangesToIndices(ranges)

	var delimiter byte
	var openers []opener

	for i := 0; i < len(indices); {
		it := cache.ListIterator(indices, i)
		if !it.Is(mdast.TokEmph) {
			i++
			continue
		}

		typ := delimiterOf(it)

		canEnd := canEndRun(cache, it)
		if canEnd > 0 && typ == delimiter && len(openers) > 0 {
			for canEnd > 0 && len(openers) > 0 {
				last := openers[len(openers)-1]
				openers = openers[:len(openers)-1]

				// Pairs of delimiters make STRONG, a single one EMPH.
				size := 1
				kind := mdast.NodeEmph
				if min(last.length, canEnd)%2 == 0 {
					size = 2
					kind = mdast.NodeStrong
				}

				from := last.index + last.length - size
				to := i + size - 1
				result.addNodes(production.Node{
					Range: production.Range{Start: indices[from], End: indices[to] + 1},
					Kind:  kind,
				})

				i += size
				canEnd -= size
				if last.length > size {
					openers = append(openers, opener{index: last.index, length: last.length - size})
				}
			}
			continue
		}

		canStart := canStartRun(cache, it)
		if canStart == 0 {
			i++
			continue
		}

		if len(openers) == 0 {
			delimiter = typ
		} else if typ != delimiter {
			i++
			continue
		}

		openers = append(openers, opener{index: i, length: canStart})
		i += canStart
	}

	return result
}

func delimiterOf(it tokencache.ListIterator) byte {
	text := it.Text()
	if text == "" {
		return 0
	}
	return text[0]
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// canStartRun returns how many delimiters of the run at it may open
// emphasis, or 0.
func canStartRun(cache *tokencache.Cache, it tokencache.ListIterator) int {
	typ := delimiterOf(it)
	if typ == underscore {
		if _, ok := it.RawLookup(-1); ok {
			if r, ok := cache.RawCharBefore(it.Start()); ok && isLetterOrDigit(r) {
				return 0
			}
		}
	}

	for count := 1; count <= maxDelimiterRun; count++ {
		if IsWhitespace(it, 1) {
			return 0
		}
		if !it.RawIs(1, mdast.TokEmph) || delimiterOf(it.Advance()) != typ {
			return count
		}
		it = it.Advance()
	}

	return maxDelimiterRun
}

// canEndRun returns how many delimiters of the run at it may close
// emphasis, or 0.
func canEndRun(cache *tokencache.Cache, it tokencache.ListIterator) int {
	if IsWhitespace(it, -1) {
		return 0
	}

	typ := delimiterOf(it)
	for count := 1; count <= maxDelimiterRun; count++ {
		if !it.RawIs(1, mdast.TokEmph) || delimiterOf(it.Advance()) != typ {
			if typ == underscore {
				if r, ok := cache.RawCharAt(it.End()); ok && isLetterOrDigit(r) {
					return 0
				}
			}
			return count
		}
		it = it.Advance()
	}

	return maxDelimiterRun
}
