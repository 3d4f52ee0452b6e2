package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gomdtree/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format selects the renderer.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowOffsets appends byte ranges to tree and token lines.
	ShowOffsets bool

	// MaxTextWidth truncates leaf text and details; 0 disables truncation.
	MaxTextWidth int

	// DetectLanguages annotates code blocks with their language.
	DetectLanguages bool

	// ShowSummary prints run statistics after the files.
	ShowSummary bool

	// ShowKinds adds a node-kind table to the summary.
	ShowKinds bool

	// Compact disables JSON indentation.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:          os.Stdout,
		Format:          config.FormatText,
		Color:           string(config.ColorAuto),
		MaxTextWidth:    config.DefaultMaxTextWidth,
		DetectLanguages: true,
		ShowSummary:     true,
	}
}

// OptionsFromConfig derives reporter options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, writer io.Writer) Options {
	opts := DefaultOptions()
	if writer != nil {
		opts.Writer = writer
	}
	if cfg == nil {
		return opts
	}

	opts.Format = cfg.Format
	opts.Color = string(cfg.Color)
	opts.ShowOffsets = cfg.ShowOffsets()
	opts.MaxTextWidth = cfg.MaxTextWidth()
	opts.DetectLanguages = cfg.DetectLanguages()
	return opts
}
