package cli_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/internal/cli"
	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/pkg/parser"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "gomdtree", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"parse", "tokens", "outline", "check", "config", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}

	envCmd, _, err := cmd.Find([]string{"config", "env"})
	require.NoError(t, err)
	assert.Equal(t, "env", envCmd.Name())
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	tests := []struct {
		name       string
		command    string
		present    []string
		notPresent []string
	}{
		{
			name:    "parse",
			command: "parse",
			present: []string{
				"format", "dialect", "jobs", "output-dir", "ignore", "extensions",
				"offsets", "max-width", "no-languages", "summary", "kinds", "compact", "follow-symlinks",
			},
		},
		{
			name:       "tokens preset hides format",
			command:    "tokens",
			present:    []string{"offsets", "output-dir"},
			notPresent: []string{"format"},
		},
		{
			name:       "outline preset hides format",
			command:    "outline",
			present:    []string{"no-languages", "jobs"},
			notPresent: []string{"format"},
		},
		{
			name:    "check",
			command: "check",
			present: []string{"jobs", "diff", "quiet"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			sub, _, err := cmd.Find([]string{testCase.command})
			require.NoError(t, err)

			for _, name := range testCase.present {
				assert.NotNil(t, sub.Flags().Lookup(name), "expected flag %q", name)
			}
			for _, name := range testCase.notPresent {
				assert.Nil(t, sub.Flags().Lookup(name), "unexpected flag %q", name)
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "expected global flag %q", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestParseCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	parseCmd, _, err := cmd.Find([]string{"parse"})
	require.NoError(t, err)

	assert.NoError(t, parseCmd.Args(parseCmd, []string{"file1.md", "file2.md", "docs/"}))
	assert.NoError(t, parseCmd.Args(parseCmd, []string{"-"}))
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"files failed", cli.ErrFilesFailed, cli.ExitFileErrors},
		{"divergent", cli.ErrDivergent, cli.ExitDivergent},
		{"config", fmt.Errorf("%w: bad file", cli.ErrConfig), cli.ExitConfigError},
		{"validation", fmt.Errorf("load: %w", &configloader.ValidationError{Field: "dialect", Message: "unknown"}), cli.ExitConfigError},
		{"internal", fmt.Errorf("parse: %w", parser.ErrInternal), cli.ExitInternalError},
		{"invalid tokens", parser.ErrInvalidTokens, cli.ExitInternalError},
		{"missing file", fmt.Errorf("stat: %w", fs.ErrNotExist), cli.ExitIOError},
		{"permission", errors.Join(errors.New("read"), fs.ErrPermission), cli.ExitIOError},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitInvalidUsage},
		{"unknown", errors.New("something else"), cli.ExitInvalidUsage},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, cli.ExitCodeFromError(testCase.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitFileErrors, cli.ExitCodeFromResult(&runner.Result{
		Files: []runner.FileOutcome{{Path: "a.md", Error: errors.New("boom")}},
		Stats: runner.Stats{FilesErrored: 1},
	}))
}

func TestIsSignal(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsSignal(cli.ErrFilesFailed))
	assert.True(t, cli.IsSignal(fmt.Errorf("run: %w", cli.ErrDivergent)))
	assert.False(t, cli.IsSignal(cli.ErrUsage))
	assert.False(t, cli.IsSignal(errors.New("other")))
}
