package mdast

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go4.org/bytereplacer"
)

//nolint:gochecknoglobals // Immutable replacer shared by all dumps.
var dumpEscaper = bytereplacer.New(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	`'`, `\'`,
)

// EscapeText returns leaf text in the escaped form used by tree dumps.
func EscapeText(text []byte) string {
	// Replace may rewrite its argument in place.
	return string(dumpEscaper.Replace(append([]byte(nil), text...)))
}

// DumpOptions controls the tree dump format.
type DumpOptions struct {
	// Offsets appends the byte range of every node as "[start, end)".
	Offsets bool
}

// Dump writes the tree rooted at root, one node per line. Composites are
// written as TYPE, leaves as TYPE('text'); each depth level adds two spaces
// of indentation.
func Dump(w io.Writer, root *Node) error {
	return DumpWith(w, root, DumpOptions{})
}

// DumpWith is Dump with explicit options.
func DumpWith(w io.Writer, root *Node, opts DumpOptions) error {
	buf := bufio.NewWriter(w)
	depth := 0

	err := WalkWithContext(root,
		func(n *Node) error {
			buf.WriteString(strings.Repeat("  ", depth))
			buf.WriteString(n.TypeName())
			if n.IsLeaf() {
				buf.WriteString("('")
				buf.WriteString(EscapeText(n.Text()))
				buf.WriteString("')")
			}
			if opts.Offsets {
				r := n.SourceRange()
				fmt.Fprintf(buf, " [%d, %d)", r.StartOffset, r.EndOffset)
			}
			buf.WriteByte('\n')
			depth++
			return nil
		},
		func(*Node) error {
			depth--
			return nil
		},
	)
	if err != nil {
		return err
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

// DumpString returns the dump of root as a string.
func DumpString(root *Node) string {
	var sb strings.Builder
	//nolint:errcheck // strings.Builder never fails
	Dump(&sb, root)
	return sb.String()
}
