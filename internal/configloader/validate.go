package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/config"
)

// max_text_width values outside [8, 500] are accepted with a warning.
const (
	minSensibleTextWidth = 8
	maxSensibleTextWidth = 500
)

// ValidationError pins a problem to a config key such as
// "output.max_text_width" or "ignore[2]".
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult separates fatal problems from advisory ones.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks enumerations, numeric ranges, extensions and ignore
// globs. Empty enumerations are allowed since defaults fill them later.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Dialect != "" && !cfg.Dialect.IsValid() {
		result.fail("dialect", cfg.Dialect, "invalid dialect %q; must be: commonmark", cfg.Dialect)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, tokens, outline", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if width := cfg.Output.MaxTextWidth; width != nil {
		switch w := *width; {
		case w < 0:
			result.fail("output.max_text_width", w, "max_text_width must be >= 0 (0 disables truncation)")
		case w > 0 && w < minSensibleTextWidth, w > maxSensibleTextWidth:
			result.warn("output.max_text_width", w, "unusual text width %d", w)
		}
	}

	if cfg.Extensions != nil && len(cfg.Extensions) == 0 {
		result.warn("extensions", nil, "no extensions configured; directories will yield no files")
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.warn(fmt.Sprintf("extensions[%d]", i), ext, "extension %q has no leading dot and will match nothing", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}
