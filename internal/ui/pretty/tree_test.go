package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

func TestFormatTreeLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name string
		line pretty.TreeLine
		want string
	}{
		{
			name: "composite",
			line: pretty.TreeLine{Depth: 1, Kind: mdast.NodeParagraph, TypeName: "PARAGRAPH"},
			want: "  PARAGRAPH\n",
		},
		{
			name: "leaf",
			line: pretty.TreeLine{Depth: 2, Kind: mdast.NodeToken, TypeName: "TEXT", Text: `a\n`},
			want: "    TEXT('a\\n')\n",
		},
		{
			name: "offsets",
			line: pretty.TreeLine{Kind: mdast.NodeEmph, TypeName: "EMPH", Start: 3, End: 8, ShowOffsets: true},
			want: "EMPH [3, 8)\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, styles.FormatTreeLine(testCase.line))
		})
	}
}

func TestFormatFileLines(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "doc.md:", styles.FormatFileHeader("doc.md"))
	assert.Equal(t, "doc.md: error: boom\n", styles.FormatFileError("doc.md", errors.New("boom")))
}
