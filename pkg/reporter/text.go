package reporter

import (
	"context"
	"io"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// TextReporter prints the syntax tree in the indented dump layout.
// Without color or truncation the output equals mdast.Dump.
type TextReporter struct {
	stream
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	r := &TextReporter{stream: newStream(opts)}
	r.body = r.writeTree
	return r
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	return r.report(ctx, result)
}

// RenderFile implements FileRenderer.
func (r *TextReporter) RenderFile(w io.Writer, file *runner.FileOutcome) error {
	return r.render(w, file)
}

// Extension implements FileRenderer.
func (r *TextReporter) Extension() string {
	return ".tree"
}

func (r *TextReporter) writeTree(w io.Writer, file *runner.FileOutcome) error {
	depth := 0

	return mdast.WalkWithContext(file.Snapshot.Root,
		func(n *mdast.Node) error {
			sourceRange := n.SourceRange()
			line := pretty.TreeLine{
				Depth:       depth,
				Kind:        n.Kind,
				TypeName:    n.TypeName(),
				Start:       sourceRange.StartOffset,
				End:         sourceRange.EndOffset,
				ShowOffsets: r.opts.ShowOffsets,
			}
			if n.IsLeaf() {
				line.Text = r.truncate(mdast.EscapeText(n.Text()))
			}

			depth++
			_, err := io.WriteString(w, r.styles.FormatTreeLine(line))
			return err
		},
		func(*mdast.Node) error {
			depth--
			return nil
		},
	)
}
