package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds Markdown files matching opts.
// It returns a sorted, duplicate-free list of absolute file paths.
// Explicitly named files are kept even when hidden; directories are walked
// skipping hidden entries.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := &matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    opts.IncludeGlobs,
		exclude:    opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
		visited:    make(map[string]struct{}),
	}

	var files []string

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if m.file(absPath) {
				files = append(files, absPath)
			}
			continue
		}

		found, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// matcher applies extension and glob filters relative to workDir.
type matcher struct {
	workDir    string
	extensions []string
	include    []string
	exclude    []string
	follow     bool
	visited    map[string]struct{}
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// file reports whether a regular file should be parsed.
func (m *matcher) file(path string) bool {
	ext := filepath.Ext(path)
	if !slices.ContainsFunc(m.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}

	rel := m.rel(path)
	if matchAny(rel, m.exclude) {
		return false
	}
	return len(m.include) == 0 || matchAny(rel, m.include)
}

// skipDir reports whether a directory below a walk root is pruned.
func (m *matcher) skipDir(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".") || matchAny(m.rel(path), m.exclude)
}

// walk collects matching files under root.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && m.skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			if info.IsDir() {
				if !m.follow || m.skipDir(path) {
					return nil
				}
				target, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // Unresolvable targets are skipped.
				}
				if _, seen := m.visited[target]; seen {
					return nil
				}
				m.visited[target] = struct{}{}
				sub, err := m.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.file(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
