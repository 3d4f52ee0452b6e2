package config

import (
	"fmt"
	"strings"
)

// Formats returns every supported output format in display order.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatTokens, FormatOutline}
}

// ParseFormat converts a user-supplied string to an OutputFormat.
// Matching is case-insensitive; an empty string selects FormatText.
func ParseFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatText, nil
	}

	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; must be one of: %s", s, joinFormats())
	}
	return format, nil
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTokens, FormatOutline:
		return true
	default:
		return false
	}
}

// IsValid returns true if the color mode is supported.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// IsValid returns true if the dialect is supported.
func (d Dialect) IsValid() bool {
	return d == DialectCommonMark
}

func joinFormats() string {
	names := make([]string, 0, len(Formats()))
	for _, format := range Formats() {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}
