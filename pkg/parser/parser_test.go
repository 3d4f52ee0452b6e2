package parser_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/lexer"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

func dump(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func mustParse(t *testing.T, input string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := parser.New().Parse(context.Background(), "test.md", []byte(input))
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	return snapshot
}

func TestParse_Trees(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "atx heading",
			input: "# Title\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  ATX_1",
				"    ATX_HEADER('#')",
				"    WHITE_SPACE(' ')",
				"    TEXT('Title')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "blockquote soft break",
			input: "> quoted\n> text\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  BLOCK_QUOTE",
				"    BLOCK_QUOTE('>')",
				"    WHITE_SPACE(' ')",
				"    PARAGRAPH",
				"      TEXT('quoted')",
				"      EOL('\\n')",
				"      BLOCK_QUOTE('>')",
				"      WHITE_SPACE(' ')",
				"      TEXT('text')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "bullet list",
			input: "- a\n- b\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  UNORDERED_LIST",
				"    LIST_ITEM",
				"      LIST_BULLET('-')",
				"      WHITE_SPACE(' ')",
				"      PARAGRAPH",
				"        TEXT('a')",
				"    EOL('\\n')",
				"    LIST_ITEM",
				"      LIST_BULLET('-')",
				"      WHITE_SPACE(' ')",
				"      PARAGRAPH",
				"        TEXT('b')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "strong and emphasis",
			input: "**bold** and *em*",
			expected: dump(
				"MARKDOWN_FILE",
				"  PARAGRAPH",
				"    STRONG",
				"      EMPH('*')",
				"      EMPH('*')",
				"      TEXT('bold')",
				"      EMPH('*')",
				"      EMPH('*')",
				"    WHITE_SPACE(' ')",
				"    TEXT('and')",
				"    WHITE_SPACE(' ')",
				"    EMPH",
				"      EMPH('*')",
				"      TEXT('em')",
				"      EMPH('*')",
			),
		},
		{
			name:  "inline link",
			input: "[text](http://x)",
			expected: dump(
				"MARKDOWN_FILE",
				"  PARAGRAPH",
				"    INLINE_LINK",
				"      LINK_TEXT",
				"        LBRACKET('[')",
				"        TEXT('text')",
				"        RBRACKET(']')",
				"      LPAREN('(')",
				"      LINK_DESTINATION",
				"        TEXT('http')",
				"        COLON(':')",
				"        TEXT('//x')",
				"      RPAREN(')')",
			),
		},
		{
			name:  "indented code",
			input: "    code\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  WHITE_SPACE('    ')",
				"  CODE_BLOCK",
				"    TEXT('code')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "unmatched closer after a pair",
			input: "*a*b*",
			expected: dump(
				"MARKDOWN_FILE",
				"  PARAGRAPH",
				"    EMPH",
				"      EMPH('*')",
				"      TEXT('a')",
				"      EMPH('*')",
				"    TEXT('b')",
				"    EMPH('*')",
			),
		},
		{
			name:  "code fence",
			input: "```go\nx\n```\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  CODE_FENCE",
				"    CODE_FENCE_START('```')",
				"    FENCE_LANG('go')",
				"    EOL('\\n')",
				"    CODE('x')",
				"    EOL('\\n')",
				"    CODE_FENCE_END('```')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "setext heading",
			input: "Title\n===\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  SETEXT_1",
				"    TEXT('Title')",
				"    EOL('\\n')",
				"    SETEXT_1('===')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "paragraphs split by a blank line",
			input: "a\n\nb\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  PARAGRAPH",
				"    TEXT('a')",
				"  EOL('\\n')",
				"  EOL('\\n')",
				"  PARAGRAPH",
				"    TEXT('b')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "nested blockquotes",
			input: "> > a\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  BLOCK_QUOTE",
				"    BLOCK_QUOTE('>')",
				"    WHITE_SPACE(' ')",
				"    BLOCK_QUOTE",
				"      BLOCK_QUOTE('>')",
				"      WHITE_SPACE(' ')",
				"      PARAGRAPH",
				"        TEXT('a')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "ordered list",
			input: "1. x\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  ORDERED_LIST",
				"    LIST_ITEM",
				"      LIST_NUMBER('1.')",
				"      WHITE_SPACE(' ')",
				"      PARAGRAPH",
				"        TEXT('x')",
				"  EOL('\\n')",
			),
		},
		{
			name:  "code span",
			input: "`a`",
			expected: dump(
				"MARKDOWN_FILE",
				"  PARAGRAPH",
				"    CODE_SPAN",
				"      BACKTICK('`')",
				"      TEXT('a')",
				"      BACKTICK('`')",
			),
		},
		{
			name:  "thematic break",
			input: "***\n",
			expected: dump(
				"MARKDOWN_FILE",
				"  HORIZONTAL_RULE('***')",
				"  EOL('\\n')",
			),
		},
		{
			name:     "empty input",
			input:    "",
			expected: dump("MARKDOWN_FILE"),
		},
		{
			name:  "whitespace only",
			input: "  ",
			expected: dump(
				"MARKDOWN_FILE",
				"  WHITE_SPACE('  ')",
			),
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			snapshot := mustParse(t, testCase.input)
			assert.Equal(t, testCase.expected, mdast.DumpString(snapshot.Root))
		})
	}
}

func TestParse_NestedList(t *testing.T) {
	t.Parallel()

	snapshot := mustParse(t, "- a\n  - b\n")

	lists := mdast.FindByKind(snapshot.Root, mdast.NodeUnorderedList)
	require.Len(t, lists, 2)
	assert.Same(t, snapshot.Root, lists[0].Parent)
	assert.Equal(t, mdast.NodeListItem, lists[1].Parent.Kind)
	assert.Same(t, lists[0], lists[1].Parent.Parent)

	items := mdast.FindByKind(snapshot.Root, mdast.NodeListItem)
	require.Len(t, items, 2)
	assert.Equal(t, "- a\n  - b", string(items[0].Text()))
	assert.Equal(t, "- b", string(items[1].Text()))
}

func TestParse_LazyContinuation(t *testing.T) {
	t.Parallel()

	snapshot := mustParse(t, "> a\nb\n")

	quote := snapshot.Root.FirstChild
	require.Equal(t, mdast.NodeBlockQuote, quote.Kind)

	paragraphs := mdast.FindByKind(quote, mdast.NodeParagraph)
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "a\nb", string(paragraphs[0].Text()))
}

func TestParse_QuoteEndsAtBlankLine(t *testing.T) {
	t.Parallel()

	snapshot := mustParse(t, "> a\n\nb\n")

	quotes := mdast.FindByKind(snapshot.Root, mdast.NodeBlockQuote)
	require.Len(t, quotes, 1)
	assert.Equal(t, "> a", string(quotes[0].Text()))

	paragraphs := mdast.FindByKind(snapshot.Root, mdast.NodeParagraph)
	require.Len(t, paragraphs, 2)
	assert.Same(t, quotes[0], paragraphs[0].Parent)
	assert.Same(t, snapshot.Root, paragraphs[1].Parent)
	assert.Equal(t, "b", string(paragraphs[1].Text()))
}

// A setext detector opens only at line start, so an underline after a
// quote marker leaves the quoted line as raw tokens.
func TestParse_SetextInsideQuote(t *testing.T) {
	t.Parallel()

	input := "> T\n> ===\n"
	snapshot := mustParse(t, input)

	quotes := mdast.FindByKind(snapshot.Root, mdast.NodeBlockQuote)
	require.Len(t, quotes, 1)

	assert.Empty(t, mdast.FindByKind(snapshot.Root, mdast.NodeParagraph))
	assert.Empty(t, mdast.FindByKind(snapshot.Root, mdast.NodeSetext1))

	underline := mdast.FindFirst(quotes[0], func(n *mdast.Node) bool {
		kind, ok := n.TokenKind()
		return ok && kind == mdast.TokSetext1
	})
	require.NotNil(t, underline)
	assert.Same(t, quotes[0], underline.Parent)
	assert.Equal(t, "===", string(underline.Text()))

	assert.Equal(t, input, string(leafText(snapshot.Root)))
}

func TestParse_HeadingDropsParagraph(t *testing.T) {
	t.Parallel()

	snapshot := mustParse(t, "## Sub *title*\n")

	assert.Empty(t, mdast.FindByKind(snapshot.Root, mdast.NodeParagraph))

	headings := mdast.FindByKind(snapshot.Root, mdast.NodeATX2)
	require.Len(t, headings, 1)
	assert.Equal(t, "## Sub *title*", string(headings[0].Text()))

	emphasis := mdast.FindByKind(headings[0], mdast.NodeEmph)
	require.Len(t, emphasis, 1)
	assert.Equal(t, "*title*", string(emphasis[0].Text()))
}

func TestParse_LinkDefinitionsAndReferences(t *testing.T) {
	t.Parallel()

	snapshot := mustParse(t, "[a]: /u 'title'\n\n[a][] [b]\n")

	definitions := mdast.FindByKind(snapshot.Root, mdast.NodeLinkDefinition)
	require.Len(t, definitions, 1)

	index := mdast.CollectDefinitions(snapshot.Root)
	def, ok := index.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "/u", def.Destination)
	assert.Equal(t, "title", def.Title)

	shortLinks := mdast.FindByKind(snapshot.Root, mdast.NodeShortReferenceLink)
	require.Len(t, shortLinks, 2)
	assert.Equal(t, "[a][]", string(shortLinks[0].Text()))
	assert.Equal(t, "[b]", string(shortLinks[1].Text()))

	unresolved := mdast.UnresolvedReferences(snapshot.Root)
	require.Len(t, unresolved, 1)
	assert.Same(t, shortLinks[1], unresolved[0])
}

func TestParse_Autolinks(t *testing.T) {
	t.Parallel()

	snapshot := mustParse(t, "<http://x.y> <a@b.co>")

	links := mdast.FindByKind(snapshot.Root, mdast.NodeAutolink)
	require.Len(t, links, 2)
	assert.Equal(t, "<http://x.y>", string(links[0].Text()))
	assert.Equal(t, "<a@b.co>", string(links[1].Text()))
}

func TestParse_Snapshot(t *testing.T) {
	t.Parallel()

	content := []byte("# Hello\n\nWorld")
	snapshot, err := parser.New().Parse(context.Background(), "test.md", content)
	require.NoError(t, err)

	assert.Equal(t, "test.md", snapshot.Path)
	assert.Equal(t, content, snapshot.Content)
	assert.NotSame(t, &content[0], &snapshot.Content[0], "content should be copied")
	assert.Equal(t, 3, snapshot.LineCount())
	assert.True(t, mdast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)))

	require.NoError(t, mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
		assert.Same(t, snapshot, n.File)
		return nil
	}))
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot, err := parser.New().Parse(ctx, "test.md", []byte("# x\n"))
	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "parse cancelled")
}

func TestParseTokens(t *testing.T) {
	t.Parallel()

	content := []byte("*a*")

	root, err := parser.New().ParseTokens(context.Background(), content, lexer.Tokenize(content))
	require.NoError(t, err)
	assert.Equal(t, mdast.NodeDocument, root.Kind)
	assert.Nil(t, root.File)
	assert.Equal(t, 0, root.FirstToken)
	assert.Equal(t, 2, root.LastToken)
}

func TestParseTokens_InvalidStream(t *testing.T) {
	t.Parallel()

	content := []byte("hello")
	tokens := []mdast.Token{{Kind: mdast.TokText, StartOffset: 0, EndOffset: 3}}

	root, err := parser.New().ParseTokens(context.Background(), content, tokens)
	require.ErrorIs(t, err, parser.ErrInvalidTokens)
	assert.Nil(t, root)
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	assert.Equal(t, parser.DialectCommonMark, parser.New().Dialect().Name())
	assert.Equal(t, parser.DialectCommonMark, parser.New(parser.WithDialect(nil)).Dialect().Name())
	assert.Equal(t, parser.DialectCommonMark, parser.New(parser.WithDialect(parser.CommonMark())).Dialect().Name())
}

func TestParse_Concurrent(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n\n- a\n- *b*\n\n> quote\n")
	p := parser.New()
	want := mdast.DumpString(mustParse(t, string(content)).Root)

	const workers = 8
	dumps := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot, err := p.Parse(context.Background(), "test.md", content)
			errs[i] = err
			if err == nil {
				dumps[i] = mdast.DumpString(snapshot.Root)
			}
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, want, dumps[i])
	}
}

//nolint:gochecknoglobals // Shared test corpus.
var corpus = []string{
	"",
	"\n",
	"   ",
	"# Title\n",
	"#\n",
	"> quoted\n> text\n",
	"> a\nb\n",
	"> > a\n",
	"- a\n- b\n",
	"- a\n  - b\n",
	"- \n",
	"  - a\n\n  b\n",
	"1. x\n2. y\n",
	"**bold** and *em*",
	"*a*b*",
	"***a***",
	"snake_case_name",
	"[text](http://x)",
	"[a]: /u 'title'\n\n[a][] [a]\n",
	"[a][b]\n",
	"    code\n",
	"```go\nx\n```\n",
	"```\nunclosed",
	"Title\n===\n",
	"> T\n> ===\n",
	"> a\n\nb\n",
	"a\n---\n",
	"a\n\nb\n",
	"***\n",
	"* * *\n",
	"<div>\nhi\n</div>\n",
	"`a` ``b``",
	"<http://x.y> <a@b.co>",
	"\\`x` \\*y\\*",
	"a\r\nb\r\n",
	"\x00\xff",
}

func TestParse_Properties(t *testing.T) {
	t.Parallel()

	for _, input := range corpus {
		t.Run(strings.ReplaceAll(input, "\n", `\n`), func(t *testing.T) {
			t.Parallel()

			snapshot := mustParse(t, input)
			checkTree(t, snapshot)

			again := mustParse(t, input)
			assert.Equal(t, mdast.DumpString(snapshot.Root), mdast.DumpString(again.Root), "parse is not deterministic")

			reparsed := mustParse(t, string(leafText(snapshot.Root)))
			assert.Equal(t, mdast.DumpString(snapshot.Root), mdast.DumpString(reparsed.Root), "parse is not idempotent")
		})
	}
}

// checkTree verifies that the leaves reproduce the input and every
// composite spans exactly its children.
func checkTree(t *testing.T, snapshot *mdast.FileSnapshot) {
	t.Helper()

	if !bytes.Equal(snapshot.Content, leafText(snapshot.Root)) {
		t.Fatalf("leaves %q do not reproduce input %q", leafText(snapshot.Root), snapshot.Content)
	}

	leaves := mdast.Leaves(snapshot.Root)
	if len(leaves) != len(snapshot.Tokens) {
		t.Fatalf("expected %d leaves, got %d", len(snapshot.Tokens), len(leaves))
	}
	for i, leaf := range leaves {
		if leaf.FirstToken != i || leaf.LastToken != i {
			t.Fatalf("leaf %d wraps tokens [%d, %d]", i, leaf.FirstToken, leaf.LastToken)
		}
	}

	err := mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
		if n.IsLeaf() || n.FirstChild == nil {
			return nil
		}
		if n.FirstToken != n.FirstChild.FirstToken || n.LastToken != n.LastChild.LastToken {
			t.Errorf("%s [%d, %d] does not span its children", n.Kind, n.FirstToken, n.LastToken)
		}
		for child := n.FirstChild; child.Next != nil; child = child.Next {
			if child.Next.FirstToken != child.LastToken+1 {
				t.Errorf("%s has a gap after token %d", n.Kind, child.LastToken)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
}

func leafText(root *mdast.Node) []byte {
	var buf bytes.Buffer
	for _, leaf := range mdast.Leaves(root) {
		buf.Write(leaf.Text())
	}
	return buf.Bytes()
}
