package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdtree/pkg/runner"
)

// Table layout constants.
const (
	minKindWidth   = 8
	countWidth     = 7
	shareWidth     = 6
	columnGap      = 2
	defaultTermCol = 80
)

// KindRow is one row of the node-kind table.
type KindRow struct {
	Kind  string
	Count int
	Share float64
}

// KindRows sorts node counts by count descending, then by kind name.
func KindRows(stats runner.Stats) []KindRow {
	total := 0
	for _, count := range stats.NodesByKind {
		total += count
	}

	rows := make([]KindRow, 0, len(stats.NodesByKind))
	for kind, count := range stats.NodesByKind {
		row := KindRow{Kind: kind, Count: count}
		if total > 0 {
			row.Share = float64(count) * 100 / float64(total)
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b KindRow) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})

	return rows
}

// FormatKindTable renders node counts per kind as a table no wider than termWidth.
func (s *Styles) FormatKindTable(stats runner.Stats, termWidth int) string {
	rows := KindRows(stats)
	if len(rows) == 0 {
		return ""
	}

	if termWidth <= 0 {
		termWidth = defaultTermCol
	}

	kindWidth := len("KIND")
	for _, row := range rows {
		kindWidth = max(kindWidth, lipgloss.Width(row.Kind))
	}
	kindWidth = max(minKindWidth, min(kindWidth, termWidth-countWidth-shareWidth-2*columnGap))

	gap := strings.Repeat(" ", columnGap)
	totalWidth := kindWidth + countWidth + shareWidth + 2*columnGap

	var builder strings.Builder

	header := padRight("KIND", kindWidth) + gap + padLeft("COUNT", countWidth) + gap + padLeft("SHARE", shareWidth)
	builder.WriteString(s.TableHeader.Render(header) + "\n")
	builder.WriteString(s.TableBorder.Render(strings.Repeat("─", totalWidth)) + "\n")

	for _, row := range rows {
		builder.WriteString(padRight(truncateString(row.Kind, kindWidth), kindWidth))
		builder.WriteString(gap)
		builder.WriteString(padLeft(fmt.Sprintf("%d", row.Count), countWidth))
		builder.WriteString(gap)
		builder.WriteString(s.Dim.Render(padLeft(fmt.Sprintf("%.1f%%", row.Share), shareWidth)))
		builder.WriteByte('\n')
	}

	return builder.String()
}

func padRight(str string, width int) string {
	if pad := width - lipgloss.Width(str); pad > 0 {
		return str + strings.Repeat(" ", pad)
	}
	return str
}

func padLeft(str string, width int) string {
	if pad := width - lipgloss.Width(str); pad > 0 {
		return strings.Repeat(" ", pad) + str
	}
	return str
}

// truncateString shortens str to maxLen runes, marking the cut with "…".
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
