package configloader

import "github.com/yaklabco/gomdtree/pkg/config"

// merge overlays override on base and returns a new Config. Non-zero
// scalars, non-nil pointers and non-nil slices in override win; slices
// replace rather than append.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	setIfNonZero(&out.Dialect, override.Dialect)
	setIfNonZero(&out.Format, override.Format)
	setIfNonZero(&out.Color, override.Color)
	setIfNonZero(&out.OutputDir, override.OutputDir)
	setIfNonZero(&out.Jobs, override.Jobs)

	setIfNonNil(&out.Output.ShowOffsets, override.Output.ShowOffsets)
	setIfNonNil(&out.Output.MaxTextWidth, override.Output.MaxTextWidth)
	setIfNonNil(&out.Output.DetectLanguages, override.Output.DetectLanguages)

	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	return &out
}

func setIfNonZero[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func setIfNonNil[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

// MergeAll folds configs left to right; later entries take precedence and
// nil entries are skipped.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
