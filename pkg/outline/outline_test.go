package outline_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/outline"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

func parse(t *testing.T, input string) *mdast.Node {
	t.Helper()

	snapshot, err := parser.New().Parse(context.Background(), "doc.md", []byte(input))
	require.NoError(t, err)
	return snapshot.Root
}

func TestFromTree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     outline.Options
		expected outline.Outline
	}{
		{
			name:     "empty document",
			input:    "",
			expected: nil,
		},
		{
			name:  "heading and list",
			input: "# Title\n\n- a\n- b\n",
			expected: outline.Outline{
				{Depth: 0, Kind: "ATX_1", Line: 1, Detail: "Title"},
				{Depth: 0, Kind: "UNORDERED_LIST", Line: 3},
				{Depth: 1, Kind: "LIST_ITEM", Line: 3},
				{Depth: 2, Kind: "PARAGRAPH", Line: 3},
				{Depth: 1, Kind: "LIST_ITEM", Line: 4},
				{Depth: 2, Kind: "PARAGRAPH", Line: 4},
			},
		},
		{
			name:  "quoted paragraph",
			input: "> quoted\n> text\n",
			expected: outline.Outline{
				{Depth: 0, Kind: "BLOCK_QUOTE", Line: 1},
				{Depth: 1, Kind: "PARAGRAPH", Line: 1},
			},
		},
		{
			name:  "fence language",
			input: "```go\nx := 1\n```\n",
			opts:  outline.Options{Languages: true},
			expected: outline.Outline{
				{Depth: 0, Kind: "CODE_FENCE", Line: 1, Detail: "go"},
			},
		},
		{
			name:  "fence without languages",
			input: "```go\nx := 1\n```\n",
			expected: outline.Outline{
				{Depth: 0, Kind: "CODE_FENCE", Line: 1},
			},
		},
		{
			name:  "definition paragraph",
			input: "[a]: /u\n",
			expected: outline.Outline{
				{Depth: 0, Kind: "PARAGRAPH", Line: 1, DefinitionsOnly: true},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := outline.FromTree(parse(t, testCase.input), testCase.opts)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestHeadingText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kind  mdast.NodeKind
		want  string
	}{
		{name: "atx", input: "## Two  words\n", kind: mdast.NodeATX2, want: "Two words"},
		{name: "emphasis kept", input: "# a *b*\n", kind: mdast.NodeATX1, want: "a *b*"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			headings := mdast.FindByKind(parse(t, testCase.input), testCase.kind)
			require.Len(t, headings, 1)
			assert.Equal(t, testCase.want, outline.HeadingText(headings[0]))
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := outline.Write(&buf, outline.Outline{
		{Depth: 0, Kind: "ATX_1", Detail: "Title"},
		{Depth: 1, Kind: "LIST_ITEM"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ATX_1 \"Title\"\n  LIST_ITEM\n", buf.String())
}

func TestKinds(t *testing.T) {
	t.Parallel()

	o := outline.Outline{{Kind: "PARAGRAPH"}, {Kind: "CODE_BLOCK"}}
	assert.Equal(t, []string{"PARAGRAPH", "CODE_BLOCK"}, o.Kinds())
}
