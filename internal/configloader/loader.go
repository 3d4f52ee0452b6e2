// Package configloader resolves the effective gomdtree configuration from
// defaults, config files, GOMDTREE_* environment variables and CLI flags.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/fsutil"
)

// ErrConfigExists is returned by WriteTemplate when it would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls which layers Load consults.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath comes from --config and is loaded after every other file.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values; its non-zero fields win over everything.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration plus where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

type layer struct {
	name string
	path string
}

// Load merges, from lowest to highest precedence: defaults, the system,
// user, project and explicit files, the environment, then CLIConfig. The
// result is alias-normalized and validated; the first validation error is
// returned as a *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, l := range opts.layers(paths) {
		fileCfg, err := loadConfigFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config %s: %w", l.name, l.path, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}
	normalizeAliases(cfg)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, warning := range validation.Warnings {
		result.Warnings = append(result.Warnings, warning.Message)
	}

	result.Config = cfg
	return result, nil
}

func (opts LoadOptions) layers(paths *ConfigPaths) []layer {
	all := []struct {
		layer
		skip bool
	}{
		{layer{"system", paths.System}, opts.IgnoreSystemConfig},
		{layer{"user", paths.User}, opts.IgnoreUserConfig},
		{layer{"project", paths.Project}, opts.IgnoreProjectConfig},
		{layer{"explicit", paths.Explicit}, false},
	}

	var out []layer
	for _, candidate := range all {
		if !candidate.skip && candidate.path != "" {
			out = append(out, candidate.layer)
		}
	}
	return out
}

// loadConfigFile reads a YAML config. JSON files parse too since YAML is a
// superset.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.FromYAML(content)
}

// WriteTemplate renders a config template and writes it atomically to
// path. Without force an existing file yields ErrConfigExists. The
// returned flag reports whether a file was replaced.
func WriteTemplate(ctx context.Context, path string, opts config.TemplateOptions, force bool) (bool, error) {
	existed := isRegularFile(path)
	if existed && !force {
		return false, fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return false, fmt.Errorf("generate template: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, content, fsutil.DefaultFileMode); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return existed, nil
}
