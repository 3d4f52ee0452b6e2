package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// Column widths of the token listing.
const (
	positionWidth = 9
	kindWidth     = 20
)

// TokensReporter lists the raw token stream, one token per line:
// line:column, kind and escaped text.
type TokensReporter struct {
	stream
}

// NewTokensReporter creates a new token stream reporter.
func NewTokensReporter(opts Options) *TokensReporter {
	r := &TokensReporter{stream: newStream(opts)}
	r.body = r.writeTokens
	return r
}

// Report implements Reporter.
func (r *TokensReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	return r.report(ctx, result)
}

// RenderFile implements FileRenderer.
func (r *TokensReporter) RenderFile(w io.Writer, file *runner.FileOutcome) error {
	return r.render(w, file)
}

// Extension implements FileRenderer.
func (r *TokensReporter) Extension() string {
	return ".tokens"
}

func (r *TokensReporter) writeTokens(w io.Writer, file *runner.FileOutcome) error {
	snapshot := file.Snapshot

	for _, tok := range snapshot.Tokens {
		line, col := snapshot.LineAt(tok.StartOffset)

		var builder strings.Builder
		builder.WriteString(padTo(r.styles.Dim.Render(fmt.Sprintf("%d:%d", line, col)), positionWidth))
		builder.WriteString(padTo(r.styles.Leaf.Render(tok.Kind.String()), kindWidth))
		builder.WriteString("'")
		builder.WriteString(r.styles.LeafText.Render(r.truncate(mdast.EscapeText(tok.Text(snapshot.Content)))))
		builder.WriteString("'")
		if r.opts.ShowOffsets {
			builder.WriteString(" ")
			builder.WriteString(r.styles.Offsets.Render(fmt.Sprintf("[%d, %d)", tok.StartOffset, tok.EndOffset)))
		}
		builder.WriteByte('\n')

		if _, err := io.WriteString(w, builder.String()); err != nil {
			return fmt.Errorf("write tokens: %w", err)
		}
	}

	return nil
}

// padTo pads styled text to width printable columns plus one space.
func padTo(styled string, width int) string {
	pad := width - ansi.PrintableRuneWidth(styled)
	if pad < 1 {
		pad = 1
	}
	return styled + strings.Repeat(" ", pad)
}
