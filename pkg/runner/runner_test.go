package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/fsutil"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/parser"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

func TestNew(t *testing.T) {
	t.Parallel()

	p := parser.New()
	r := runner.New(p)
	assert.Same(t, p, r.Parser)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(parser.New()).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasErrors())
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody\n"), 0o644))

	result, err := runner.New(parser.New()).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, path, outcome.Path)
	assert.Equal(t, path, outcome.Snapshot.Path)
	assert.Equal(t, mdast.NodeDocument, outcome.Snapshot.Root.Kind)
	assert.Equal(t, int64(14), outcome.Info.Size)

	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.Equal(t, int64(14), result.Stats.Bytes)
	assert.Equal(t, len(outcome.Snapshot.Tokens), result.Stats.Tokens)
	assert.Equal(t, 1, result.Stats.NodesByKind["ATX_1"])
	assert.Equal(t, 1, result.Stats.NodesByKind["PARAGRAPH"])
	assert.Equal(t, 1, result.Stats.NodesByKind["MARKDOWN_FILE"])
}

func TestRunner_Run_SerialVsParallel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 20 {
		content := "# Doc " + strconv.Itoa(i) + "\n\n- item *" + strconv.Itoa(i) + "*\n> quote\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc"+strconv.Itoa(i)+".md"), []byte(content), 0o644))
	}

	ctx := context.Background()
	r := runner.New(parser.New())

	serial, err := r.Run(ctx, runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)

	parallel, err := r.Run(ctx, runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, 20)
	require.Len(t, serial.Files, 20)
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t,
			mdast.DumpString(serial.Files[i].Snapshot.Root),
			mdast.DumpString(parallel.Files[i].Snapshot.Root),
		)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(parser.New()).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_ParseFile_Missing(t *testing.T) {
	t.Parallel()

	outcome := runner.New(parser.New()).ParseFile(context.Background(), filepath.Join(t.TempDir(), "gone.md"))
	require.ErrorIs(t, outcome.Error, fsutil.ErrNotFound)
	assert.Nil(t, outcome.Snapshot)
}

func TestResult_Errors(t *testing.T) {
	t.Parallel()

	var nilResult *runner.Result
	assert.False(t, nilResult.HasErrors())
	assert.Nil(t, nilResult.Errors())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.md"), []byte("ok"), 0o644))

	result, err := runner.New(parser.New()).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.False(t, result.HasErrors())
	assert.Empty(t, result.Errors())
}

func TestRunner_ParseStream(t *testing.T) {
	t.Parallel()

	result, err := runner.New(parser.New()).ParseStream(context.Background(), "<stdin>", strings.NewReader("# Title\n"))
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	assert.Equal(t, "<stdin>", outcome.Path)
	require.NotNil(t, outcome.Snapshot)
	assert.Equal(t, "<stdin>", outcome.Snapshot.Path)
	assert.Equal(t, 1, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.Equal(t, int64(8), result.Stats.Bytes)
	assert.Equal(t, 1, result.Stats.NodesByKind["ATX_1"])
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"docs"})
	assert.Equal(t, []string{"docs"}, opts.Paths)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.Equal(t, cfg.Extensions, opts.Extensions)
	assert.Equal(t, 3, opts.Jobs)

	assert.Equal(t, []string{"x"}, runner.OptionsFromConfig(nil, []string{"x"}).Paths)
}
