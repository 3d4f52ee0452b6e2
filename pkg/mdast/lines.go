package mdast

import (
	"bytes"
	"cmp"
	"slices"
)

// LineInfo locates one source line. Offsets are byte indices into the
// snapshot content.
type LineInfo struct {
	// StartOffset is the first byte of the line.
	StartOffset int

	// NewlineStart is where the line ending ("\n" or "\r\n") begins; it
	// equals EndOffset on a final line without one.
	NewlineStart int

	// EndOffset is one past the line ending.
	EndOffset int
}

// HasNewline reports whether the line is terminated by a line ending.
func (l LineInfo) HasNewline() bool {
	return l.NewlineStart < l.EndOffset
}

// BuildLines splits content into lines. Content ending in a newline gets a
// final empty line, so every offset up to len(content) falls on a line.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	if len(content) == 0 {
		return lines
	}

	for start := 0; ; {
		eol := bytes.IndexByte(content[start:], '\n')
		if eol < 0 {
			return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
		}

		end := start + eol + 1
		newline := end - 1
		if newline > start && content[newline-1] == '\r' {
			newline--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: newline, EndOffset: end})
		start = end
	}
}

// LineCount returns the number of lines, counting a final empty line.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// Line returns the 1-based line n.
func (f *FileSnapshot) Line(n int) (LineInfo, bool) {
	if n < 1 || n > len(f.Lines) {
		return LineInfo{}, false
	}
	return f.Lines[n-1], true
}

// LineAt converts a byte offset to a 1-based line and byte column.
// Offsets at or past the end map onto the last line; negative offsets and
// empty files yield (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx := len(f.Lines) - 1
	if offset < len(f.Content) {
		idx, _ = slices.BinarySearchFunc(f.Lines, offset, func(line LineInfo, target int) int {
			return cmp.Compare(line.EndOffset-1, target)
		})
	}

	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Offset converts a 1-based line and column back to a byte offset. The
// column may point one past the line ending.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	info, ok := f.Line(line)
	if !ok || col < 1 {
		return 0, false
	}

	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns line n without its line ending, or nil when n is out
// of range.
func (f *FileSnapshot) LineContent(n int) []byte {
	info, ok := f.Line(n)
	if !ok {
		return nil
	}
	return f.Content[info.StartOffset:info.NewlineStart]
}
