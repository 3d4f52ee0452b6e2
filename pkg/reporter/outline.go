package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/outline"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// OutlineReporter prints only block elements, with heading text and
// detected code languages.
type OutlineReporter struct {
	stream
}

// NewOutlineReporter creates a new outline reporter.
func NewOutlineReporter(opts Options) *OutlineReporter {
	r := &OutlineReporter{stream: newStream(opts)}
	r.body = r.writeOutline
	return r
}

// Report implements Reporter.
func (r *OutlineReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	return r.report(ctx, result)
}

// RenderFile implements FileRenderer.
func (r *OutlineReporter) RenderFile(w io.Writer, file *runner.FileOutcome) error {
	return r.render(w, file)
}

// Extension implements FileRenderer.
func (r *OutlineReporter) Extension() string {
	return ".outline"
}

func (r *OutlineReporter) writeOutline(w io.Writer, file *runner.FileOutcome) error {
	entries := outline.FromTree(file.Snapshot.Root, outline.Options{Languages: r.opts.DetectLanguages})

	for _, entry := range entries {
		var builder strings.Builder
		builder.WriteString(strings.Repeat("  ", entry.Depth))
		builder.WriteString(r.styles.Block.Render(entry.Kind))
		if entry.Detail != "" {
			builder.WriteString(" ")
			builder.WriteString(r.styles.LeafText.Render(fmt.Sprintf("%q", r.truncate(entry.Detail))))
		}
		if r.opts.ShowOffsets && entry.Line > 0 {
			builder.WriteString(" ")
			builder.WriteString(r.styles.Offsets.Render(fmt.Sprintf("(line %d)", entry.Line)))
		}
		builder.WriteByte('\n')

		if _, err := io.WriteString(w, builder.String()); err != nil {
			return fmt.Errorf("write outline: %w", err)
		}
	}

	return nil
}
