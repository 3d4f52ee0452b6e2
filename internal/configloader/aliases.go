package configloader

import (
	"strings"

	"github.com/yaklabco/gomdtree/pkg/config"
)

// dialectAliases maps alternate dialect spellings to canonical names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dialectAliases = map[string]config.Dialect{
	"commonmark":  config.DialectCommonMark,
	"common-mark": config.DialectCommonMark,
	"cm":          config.DialectCommonMark,
}

// formatAliases maps alternate output format names to canonical formats.
//
//nolint:gochecknoglobals // Read-only lookup table.
var formatAliases = map[string]config.OutputFormat{
	"text":    config.FormatText,
	"tree":    config.FormatText,
	"txt":     config.FormatText,
	"json":    config.FormatJSON,
	"tokens":  config.FormatTokens,
	"lex":     config.FormatTokens,
	"outline": config.FormatOutline,
	"blocks":  config.FormatOutline,
}

// ResolveDialect returns the canonical dialect for a name or alias.
// Matching is case-insensitive.
func ResolveDialect(name string) (config.Dialect, bool) {
	dialect, ok := dialectAliases[strings.ToLower(strings.TrimSpace(name))]
	return dialect, ok
}

// ResolveFormat returns the canonical output format for a name or alias.
// Matching is case-insensitive.
func ResolveFormat(name string) (config.OutputFormat, bool) {
	format, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]
	return format, ok
}

// normalizeAliases rewrites aliased values in place. Unknown values are left
// untouched so validation can report them.
func normalizeAliases(cfg *config.Config) {
	if cfg.Dialect != "" {
		if dialect, ok := ResolveDialect(string(cfg.Dialect)); ok {
			cfg.Dialect = dialect
		}
	}
	if cfg.Format != "" {
		if format, ok := ResolveFormat(string(cfg.Format)); ok {
			cfg.Format = format
		}
	}
}
