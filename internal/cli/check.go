package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/crosscheck"
	"github.com/yaklabco/gomdtree/pkg/outline"
)

type checkFlags struct {
	diff  bool
	quiet bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Compare block structure against goldmark",
		Long: `Parse Markdown files and compare their block outline with the outline
goldmark builds for the same input. Headings, lists, items, quotes,
paragraphs and code blocks are compared by nesting depth and kind.

Exits with status 2 when any document diverges.

Examples:
  gomdtree check docs/
  gomdtree check --diff README.md`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print the full outline diff for divergent files")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only the summary line")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	sess, err := loadSession(cmd, cfg)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	result, err := parseInputs(cmd, sess, args, false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), out))
	checker := crosscheck.New()

	checked, divergent := 0, 0
	for i := range result.Files {
		outcome := &result.Files[i]
		if outcome.Error != nil {
			//nolint:errcheck // Best-effort terminal output.
			io.WriteString(out, styles.FormatFileError(outcome.Path, outcome.Error))
			continue
		}

		report := checker.Check(outcome.Snapshot)
		checked++
		if report.Matches() {
			continue
		}
		divergent++

		if !flags.quiet {
			writeDivergence(out, styles, report, flags.diff)
		}
	}

	logger.Debug("check finished", logging.FieldFiles, checked, logging.FieldDivergences, divergent)

	//nolint:errcheck // Best-effort terminal output.
	io.WriteString(out, styles.FormatCheckSummary(checked, divergent))

	switch {
	case result.HasErrors():
		return ErrFilesFailed
	case divergent > 0:
		return ErrDivergent
	}
	return nil
}

// writeDivergence prints the first disagreement of one document.
func writeDivergence(out io.Writer, styles *pretty.Styles, report crosscheck.Report, withDiff bool) {
	div := report.Divergence

	writeLine(out, styles.FormatFileHeader(report.Path))
	writeLine(out, fmt.Sprintf("  entry %d", div.Index))
	writeLine(out, "    "+styles.Removed.Render("reference: "+describeEntry(div.Reference)))
	writeLine(out, "    "+styles.Added.Render("ours:      "+describeEntry(div.Ours)))

	if withDiff && report.Diff != "" {
		for _, line := range strings.Split(strings.TrimRight(report.Diff, "\n"), "\n") {
			writeLine(out, "    "+styles.Dim.Render(line))
		}
	}
}

func describeEntry(entry *outline.Entry) string {
	if entry == nil {
		return "(end of outline)"
	}

	desc := entry.String()
	if entry.Line > 0 {
		desc += fmt.Sprintf(" (line %d)", entry.Line)
	}
	return strings.TrimSpace(desc)
}
