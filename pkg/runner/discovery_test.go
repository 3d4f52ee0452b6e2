package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/runner"
)

// writeTree creates files (relative, slash-separated) under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+name+"\n"), 0o644))
	}
}

// relAll returns discovered paths relative to dir, slash-separated.
func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    []string
		opts     runner.Options
		expected []string
	}{
		{
			name:     "directory walk",
			files:    []string{"readme.md", "docs/guide.md", "docs/api.markdown", "src/main.go", "notes.txt"},
			opts:     runner.Options{Paths: []string{"."}},
			expected: []string{"docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name:     "defaults to working directory",
			files:    []string{"a.md", "b/c.md"},
			expected: []string{"a.md", "b/c.md"},
		},
		{
			name:     "custom extensions",
			files:    []string{"a.md", "b.mdx", "c.txt"},
			opts:     runner.Options{Extensions: []string{".MDX", ".txt"}},
			expected: []string{"b.mdx", "c.txt"},
		},
		{
			name:     "exclude directory",
			files:    []string{"a.md", "vendor/lib/x.md", "docs/vendor.md"},
			opts:     runner.Options{ExcludeGlobs: []string{"vendor/**"}},
			expected: []string{"a.md", "docs/vendor.md"},
		},
		{
			name:     "exclude basename anywhere",
			files:    []string{"CHANGELOG.md", "docs/CHANGELOG.md", "docs/guide.md"},
			opts:     runner.Options{ExcludeGlobs: []string{"CHANGELOG.md"}},
			expected: []string{"docs/guide.md"},
		},
		{
			name:     "include globs",
			files:    []string{"a.md", "docs/b.md", "docs/deep/c.md"},
			opts:     runner.Options{IncludeGlobs: []string{"docs/**/*.md"}},
			expected: []string{"docs/b.md", "docs/deep/c.md"},
		},
		{
			name:     "hidden entries skipped",
			files:    []string{"a.md", ".hidden.md", ".github/b.md"},
			expected: []string{"a.md"},
		},
		{
			name:     "explicit hidden file kept",
			files:    []string{".hidden.md"},
			opts:     runner.Options{Paths: []string{".hidden.md"}},
			expected: []string{".hidden.md"},
		},
		{
			name:     "duplicates removed",
			files:    []string{"a.md", "docs/b.md"},
			opts:     runner.Options{Paths: []string{".", "a.md", "docs", "docs/b.md"}},
			expected: []string{"a.md", "docs/b.md"},
		},
		{
			name:     "explicit file with other extension skipped",
			files:    []string{"notes.txt"},
			opts:     runner.Options{Paths: []string{"notes.txt"}},
			expected: []string{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, testCase.files...)

			opts := testCase.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, relAll(t, dir, files))

			for _, f := range files {
				assert.True(t, filepath.IsAbs(f), f)
			}
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.md")
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "real.md", "real/doc.md")

	if err := os.Symlink(filepath.Join(dir, "real.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	external := t.TempDir()
	writeTree(t, external, "external.md")
	require.NoError(t, os.Symlink(external, filepath.Join(dir, "linked")))

	// A link back to the root must not recurse forever.
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "loop")))

	ctx := context.Background()

	files, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"link.md", "real.md", "real/doc.md"}, relAll(t, dir, files))

	files, err = runner.Discover(ctx, runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)

	var foundExternal bool
	for _, f := range files {
		if strings.HasSuffix(f, "external.md") {
			foundExternal = true
		}
	}
	assert.True(t, foundExternal, "expected external.md via followed symlink, got %v", files)
}
