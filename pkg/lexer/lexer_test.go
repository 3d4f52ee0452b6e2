package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/lexer"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

func kinds(tokens []mdast.Token) string {
	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = tok.Kind.String()
	}
	return strings.Join(names, " ")
}

func TestTokenize_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain text", input: "hello world", expected: "TEXT WHITE_SPACE TEXT"},
		{name: "atx heading", input: "# Hi\n", expected: "ATX_HEADER WHITE_SPACE TEXT EOL"},
		{name: "hash without space", input: "#hash", expected: "TEXT"},
		{name: "bullet list", input: "- a\n- b\n", expected: "LIST_BULLET WHITE_SPACE TEXT EOL LIST_BULLET WHITE_SPACE TEXT EOL"},
		{name: "ordered list", input: "1. a\n", expected: "LIST_NUMBER WHITE_SPACE TEXT EOL"},
		{name: "nested bullet", input: "- a\n  - b\n", expected: "LIST_BULLET WHITE_SPACE TEXT EOL WHITE_SPACE LIST_BULLET WHITE_SPACE TEXT EOL"},
		{name: "blockquote", input: "> a\n", expected: "BLOCK_QUOTE WHITE_SPACE TEXT EOL"},
		{name: "nested blockquote", input: ">> a", expected: "BLOCK_QUOTE BLOCK_QUOTE WHITE_SPACE TEXT"},
		{name: "setext 1", input: "Title\n===\n", expected: "TEXT EOL SETEXT_1 EOL"},
		{name: "setext 2", input: "Title\n---\n", expected: "TEXT EOL SETEXT_2 EOL"},
		{name: "thematic break", input: "***\n", expected: "HORIZONTAL_RULE EOL"},
		{name: "spaced thematic break", input: "- - -\n", expected: "HORIZONTAL_RULE EOL"},
		{name: "dashes without paragraph", input: "---", expected: "HORIZONTAL_RULE"},
		{
			name:     "code fence",
			input:    "```go\nx := 1\n```\n",
			expected: "CODE_FENCE_START FENCE_LANG EOL CODE EOL CODE_FENCE_END EOL",
		},
		{name: "unclosed fence", input: "~~~\na\n\nb", expected: "CODE_FENCE_START EOL CODE EOL EOL CODE"},
		{name: "fence in blockquote", input: "> ```\n> a\n> ```", expected: "BLOCK_QUOTE WHITE_SPACE CODE_FENCE_START EOL BLOCK_QUOTE WHITE_SPACE CODE EOL BLOCK_QUOTE WHITE_SPACE CODE_FENCE_END"},
		{name: "indented code", input: "    code\n", expected: "WHITE_SPACE TEXT EOL"},
		{name: "lazy continuation", input: "a\n    b", expected: "TEXT EOL WHITE_SPACE TEXT"},
		{name: "emphasis", input: "*a* _b_", expected: "EMPH TEXT EMPH WHITE_SPACE EMPH TEXT EMPH"},
		{name: "code span", input: "`x`", expected: "BACKTICK TEXT BACKTICK"},
		{name: "escaped backticks", input: "\\``x`", expected: "ESCAPED_BACKTICKS TEXT BACKTICK"},
		{name: "escaped punctuation", input: "\\*a", expected: "TEXT"},
		{name: "autolink", input: "<http://a.b>", expected: "LT AUTOLINK GT"},
		{name: "email autolink", input: "<me@example.com>", expected: "LT EMAIL_AUTOLINK GT"},
		{name: "not an autolink", input: "<a b>", expected: "LT TEXT WHITE_SPACE TEXT GT"},
		{name: "inline link", input: "[a](b)", expected: "LBRACKET TEXT RBRACKET LPAREN TEXT RPAREN"},
		{
			name:     "link definition",
			input:    "[a]: /u 'b'",
			expected: "LBRACKET TEXT RBRACKET COLON WHITE_SPACE TEXT WHITE_SPACE SINGLE_QUOTE TEXT SINGLE_QUOTE",
		},
		{name: "html block", input: "<div>\nhi\n\nx", expected: "HTML_BLOCK EOL HTML_BLOCK EOL EOL TEXT"},
		{name: "html comment closes on line", input: "<!-- c -->\nx", expected: "HTML_BLOCK EOL TEXT"},
		{name: "inline html is not a block", input: "<span>", expected: "LT TEXT GT"},
		{name: "crlf", input: "a\r\nb", expected: "TEXT EOL TEXT"},
		{name: "bad byte", input: "a\xffb", expected: "TEXT BAD_CHARACTER TEXT"},
		{name: "nul", input: "\x00", expected: "BAD_CHARACTER"},
		{name: "unicode text", input: "héllo wörld", expected: "TEXT WHITE_SPACE TEXT"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tokens := lexer.Tokenize([]byte(testCase.input))
			assert.Equal(t, testCase.expected, kinds(tokens))
		})
	}
}

func TestTokenize_Text(t *testing.T) {
	t.Parallel()

	content := []byte("```go\nx\n```")
	tokens := lexer.Tokenize(content)

	require.Len(t, tokens, 6)
	assert.Equal(t, "CODE_FENCE_START FENCE_LANG EOL CODE EOL CODE_FENCE_END", kinds(tokens))

	texts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		texts = append(texts, string(token.Text(content)))
	}
	assert.Equal(t, []string{"```", "go", "\n", "x", "\n", "```"}, texts)
}

func TestTokenize_Coverage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n\n\n",
		"# Title\n\nSome *emph* and **strong** text.\n",
		"- a\n- b\n\n  c\n",
		"> quote\n> > nested\n>\n> back\n",
		"```\ncode\n```\n~~~ js  \n\n~~~\n",
		"[x]: <http://example.com> \"title\"\n\n[x][] and [y][x]\n",
		"Heading\n=======\n\n* * *\n",
		"<div>\n  <p>html</p>\n</div>\n\nafter\n",
		"1) one\n2) two\n   10. ten\n",
		"\t\ttabs\r\n\r\nmixed\r\n",
		"\\`\\`` `x` ``y`` \\\\ \\*",
		"trailing spaces   \n",
		"\xff\xfe\x00 bad",
	}

	for _, input := range inputs {
		tokens := lexer.Tokenize([]byte(input))
		require.True(t, mdast.ValidateTokens(tokens, len(input)), "input %q", input)

		for i := 1; i < len(tokens); i++ {
			prev, cur := tokens[i-1], tokens[i]
			assert.False(t, prev.Kind == cur.Kind && cur.Kind.Mergeable(),
				"input %q: unmerged %s at %d", input, cur.Kind, i)
		}
	}
}

func FuzzTokenize(f *testing.F) {
	f.Add("# a\n- b\n> c\n```\nd\n```\n")
	f.Add("[a]: b 'c'\n\n*x* `y` <http://z>")
	f.Add("a\n===\n\n    code\n")

	f.Fuzz(func(t *testing.T, input string) {
		tokens := lexer.Tokenize([]byte(input))
		if !mdast.ValidateTokens(tokens, len(input)) {
			t.Fatalf("tokens do not cover %q", input)
		}
	})
}
