package mdast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

func TestDumpString(t *testing.T) {
	t.Parallel()

	snapshot := headingSnapshot()

	expected := strings.Join([]string{
		"MARKDOWN_FILE",
		"  ATX_1",
		"    ATX_HEADER('#')",
		"    WHITE_SPACE(' ')",
		"    TEXT('Hi')",
		`  EOL('\n')`,
		"",
	}, "\n")

	assert.Equal(t, expected, mdast.DumpString(snapshot.Root))
}

func TestDumpWith_Offsets(t *testing.T) {
	t.Parallel()

	snapshot := headingSnapshot()

	var sb strings.Builder
	require.NoError(t, mdast.DumpWith(&sb, snapshot.Root, mdast.DumpOptions{Offsets: true}))

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "MARKDOWN_FILE [0, 5)", lines[0])
	assert.Equal(t, "    TEXT('Hi') [2, 4)", lines[4])
}

func TestEscapeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "abc", expected: "abc"},
		{name: "newline", input: "\n", expected: `\n`},
		{name: "crlf", input: "\r\n", expected: `\r\n`},
		{name: "tab", input: "\t", expected: `\t`},
		{name: "quote", input: "it's", expected: `it\'s`},
		{name: "backslash", input: `a\b`, expected: `a\\b`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			input := []byte(testCase.input)
			assert.Equal(t, testCase.expected, mdast.EscapeText(input))
			assert.Equal(t, testCase.input, string(input), "input must not be modified")
		})
	}
}
