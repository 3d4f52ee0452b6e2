// Package reporter renders parse results as trees, token streams, outlines
// or JSON.
package reporter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

var errNoSnapshot = errors.New("file has no parse result")

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that failed to parse and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// FileRenderer renders a single parsed file on its own, as used when
// dumps are written to an output directory.
type FileRenderer interface {
	RenderFile(w io.Writer, file *runner.FileOutcome) error

	// Extension is the file extension for dumps, including the dot.
	Extension() string
}

// Compile-time interface checks.
var (
	_ Reporter     = (*TextReporter)(nil)
	_ Reporter     = (*TokensReporter)(nil)
	_ Reporter     = (*OutlineReporter)(nil)
	_ Reporter     = (*JSONReporter)(nil)
	_ FileRenderer = (*TextReporter)(nil)
	_ FileRenderer = (*TokensReporter)(nil)
	_ FileRenderer = (*OutlineReporter)(nil)
	_ FileRenderer = (*JSONReporter)(nil)
)

// New creates a Reporter for the specified options.
//
//nolint:ireturn // Factory returns the interface by design.
func New(opts Options) (Reporter, error) {
	renderer, err := NewFileRenderer(opts)
	if err != nil {
		return nil, err
	}
	//nolint:forcetypeassert // Every renderer is also a Reporter.
	return renderer.(Reporter), nil
}

// NewFileRenderer creates the FileRenderer for the specified options.
//
//nolint:ireturn // Factory returns the interface by design.
func NewFileRenderer(opts Options) (FileRenderer, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatText:
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatTokens:
		return NewTokensReporter(opts), nil
	case config.FormatOutline:
		return NewOutlineReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// stream is the shared Report loop of the line-oriented reporters: a header
// per file when more than one is shown, the file body, then the summary.
type stream struct {
	opts   Options
	styles *pretty.Styles
	body   func(w io.Writer, file *runner.FileOutcome) error
}

func newStream(opts Options) stream {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return stream{opts: opts, styles: pretty.NewStyles(colorEnabled)}
}

func (s *stream) report(ctx context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(s.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	headers := len(result.Files) > 1
	failed := 0

	for i := range result.Files {
		if err := ctx.Err(); err != nil {
			return failed, fmt.Errorf("report cancelled: %w", err)
		}

		file := &result.Files[i]
		path := displayPath(file.Path, s.opts.WorkingDir)

		if file.Error != nil || file.Snapshot == nil {
			failed++
			fmt.Fprint(bw, s.styles.FormatFileError(path, fileError(file)))
			continue
		}

		if headers {
			if i > 0 {
				bw.WriteByte('\n')
			}
			fmt.Fprintln(bw, s.styles.FormatFileHeader(path))
		}

		if err := s.body(bw, file); err != nil {
			return failed, err
		}
	}

	if s.opts.ShowSummary {
		s.summary(bw, result.Stats)
	}

	return failed, nil
}

func (s *stream) summary(w io.Writer, stats runner.Stats) {
	fmt.Fprintln(w)
	fmt.Fprint(w, s.styles.FormatSummaryOneLine(stats))
	if s.opts.ShowKinds && len(stats.NodesByKind) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, s.styles.FormatKindTable(stats, terminalWidth(s.opts.Writer)))
	}
}

// render runs body against a buffer so partial output never reaches w.
func (s *stream) render(w io.Writer, file *runner.FileOutcome) error {
	if file == nil {
		return errNoSnapshot
	}
	if file.Snapshot == nil {
		return fmt.Errorf("render %s: %w", file.Path, fileError(file))
	}
	var buf bytes.Buffer
	if err := s.body(&buf, file); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}

// truncate shortens text to the configured width.
func (s *stream) truncate(text string) string {
	if s.opts.MaxTextWidth <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(s.opts.MaxTextWidth), "…")
}

func fileError(file *runner.FileOutcome) error {
	if file != nil && file.Error != nil {
		return file.Error
	}
	return errNoSnapshot
}

// displayPath makes path relative to workDir when it lies beneath it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
