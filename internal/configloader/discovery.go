package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "gomdtree"

// Project file names in lookup order. The first is what init writes.
//
//nolint:gochecknoglobals // read-only
var projectNames = []string{".gomdtree.yml", ".gomdtree.yaml", "gomdtree.yml", "gomdtree.yaml"}

//nolint:gochecknoglobals // read-only
var globalNames = []string{"config.yaml", "config.yml"}

// ConfigPaths holds the config file found for each layer. Empty means the
// layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// ProjectConfigName is the file name written by `gomdtree init`.
func ProjectConfigName() string { return projectNames[0] }

// DiscoverPaths looks up the system, user and project config files.
// System and user files live in a gomdtree directory under /etc (or
// %ProgramData%) and $XDG_CONFIG_HOME; the project file is the nearest one
// in workDir or its ancestors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemDir(), globalNames),
		User:    firstFile(userDir(), globalNames),
		Project: project,
	}, nil
}

func systemDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDirName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appDirName)
}

func userDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// FindProjectConfig returns the nearest project config at or above
// startDir, or "" when there is none. The search does not climb past a
// repository root (.git, .hg or .svn) or the user's home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()
	for candidate := range ancestors(dir) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}
		if found := firstFile(candidate, projectNames); found != "" {
			return found, nil
		}
		if candidate == home || isRepositoryRoot(candidate) {
			break
		}
	}
	return "", nil
}

// ancestors yields dir, its parent, and so on up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); isRegularFile(path) {
			return path
		}
	}
	return ""
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
