package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

func TestKindRows(t *testing.T) {
	t.Parallel()

	rows := pretty.KindRows(runner.Stats{NodesByKind: map[string]int{
		"PARAGRAPH":     3,
		"EMPH":          1,
		"MARKDOWN_FILE": 1,
		"LIST_ITEM":     5,
	}})

	require.Len(t, rows, 4)
	assert.Equal(t, "LIST_ITEM", rows[0].Kind)
	assert.Equal(t, "PARAGRAPH", rows[1].Kind)
	assert.Equal(t, "EMPH", rows[2].Kind)
	assert.Equal(t, "MARKDOWN_FILE", rows[3].Kind)
	assert.InDelta(t, 50.0, rows[0].Share, 0.001)
}

func TestFormatKindTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Empty(t, styles.FormatKindTable(runner.Stats{}, 80))

	out := styles.FormatKindTable(runner.Stats{NodesByKind: map[string]int{
		"PARAGRAPH": 3,
		"EMPH":      1,
	}}, 80)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "KIND         COUNT   SHARE", lines[0])
	assert.Equal(t, "PARAGRAPH        3   75.0%", lines[2])
	assert.Equal(t, "EMPH             1   25.0%", lines[3])
}

func TestFormatKindTable_Narrow(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatKindTable(runner.Stats{NodesByKind: map[string]int{
		"SHORT_REFERENCE_LINK": 1,
	}}, 25)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SHORT_R…        1  100.0%", lines[2])
}
