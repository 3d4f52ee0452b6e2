package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Parsed 3 files: 412 tokens, 97 nodes, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found.") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d tokens", stats.Tokens),
		fmt.Sprintf("%d nodes", stats.Nodes),
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	head := fmt.Sprintf("Parsed %d %s", stats.FilesParsed, plural(stats.FilesParsed, wordFile, wordFiles))
	if stats.FilesErrored == 0 {
		head = s.Success.Render(head)
	}

	return head + s.Dim.Render(": ") + strings.Join(parts, ", ") + "\n"
}

// FormatCheckSummary formats the result line of an outline comparison.
func (s *Styles) FormatCheckSummary(files, divergent int) string {
	if divergent == 0 {
		return s.Success.Render(fmt.Sprintf("All %d %s match the reference outline", files, plural(files, wordFile, wordFiles))) + "\n"
	}
	return s.Failure.Render(fmt.Sprintf("%d of %d %s diverge from the reference outline",
		divergent, files, plural(files, wordFile, wordFiles))) + "\n"
}
