package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// TreeLine describes one node of a styled tree dump.
type TreeLine struct {
	// Depth is the nesting level; each level indents by two spaces.
	Depth int

	// Kind is the node kind. Leaves carry their token kind in TypeName.
	Kind mdast.NodeKind

	// TypeName is the printed name (token kind for leaves).
	TypeName string

	// Text is the already escaped leaf text. Ignored for composites.
	Text string

	// Start and End are the byte range, printed when ShowOffsets is set.
	Start, End  int
	ShowOffsets bool
}

// FormatTreeLine renders a node in the dump layout: composites as TYPE,
// leaves as TYPE('text'), optionally followed by the byte range.
func (s *Styles) FormatTreeLine(line TreeLine) string {
	var builder strings.Builder

	builder.WriteString(strings.Repeat("  ", line.Depth))

	switch {
	case line.Kind == mdast.NodeToken:
		builder.WriteString(s.Leaf.Render(line.TypeName))
		builder.WriteString("('")
		builder.WriteString(s.LeafText.Render(line.Text))
		builder.WriteString("')")
	case line.Kind.IsInline():
		builder.WriteString(s.Inline.Render(line.TypeName))
	default:
		builder.WriteString(s.Block.Render(line.TypeName))
	}

	if line.ShowOffsets {
		builder.WriteString(" ")
		builder.WriteString(s.Offsets.Render(fmt.Sprintf("[%d, %d)", line.Start, line.End)))
	}

	builder.WriteByte('\n')
	return builder.String()
}

// FormatFileHeader formats the header printed above each file's dump.
func (s *Styles) FormatFileHeader(path string) string {
	return s.FilePath.Render(path) + s.Dim.Render(":")
}

// FormatFileError formats a per-file failure.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}
