package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/reporter"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// stdinPath is the argument that selects standard input.
const stdinPath = "-"

// stdinName is the display name of standard input.
const stdinName = "<stdin>"

type parseFlags struct {
	format      string
	dialect     string
	ignore      []string
	extensions  []string
	offsets     bool
	maxWidth    int
	noLanguages bool
	summary     bool
	kinds       bool
	compact     bool
	follow      bool
}

// newParseCommand builds "parse" and its presets. A non-empty preset fixes
// the output format and hides the --format flag.
func newParseCommand(use, short, long string, preset config.OutputFormat) *cobra.Command {
	var cfg config.Config
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   use + " [paths...]",
		Short: short,
		Long:  long,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset != "" {
				flags.format = string(preset)
			}
			return runParse(cmd, args, &cfg, flags)
		},
	}

	addParseFlags(cmd, &cfg, flags, preset == "")

	return cmd
}

const parseLongDescription = `Parse Markdown files into a lossless concrete syntax tree and print it.

By default, parses all .md and .markdown files in the current directory
and subdirectories. Specify paths to parse specific files or directories,
or "-" to read a single document from standard input.

Examples:
  gomdtree parse README.md                 # Print the tree of one file
  gomdtree parse docs/ --format json       # Trees as JSON
  gomdtree parse --offsets README.md       # Include byte ranges
  gomdtree parse docs/ --output-dir out/   # One dump file per document
  cat notes.md | gomdtree parse -          # Read standard input`

const tokensLongDescription = `Print the raw token stream of Markdown files: one token per line with
its line:column position, kind and text.

Examples:
  gomdtree tokens README.md
  gomdtree tokens --offsets README.md`

const outlineLongDescription = `Print only the block structure of Markdown files: headings with their
text, lists, quotes, paragraphs and code blocks with detected languages.

Examples:
  gomdtree outline docs/
  gomdtree outline --offsets README.md`

func runParse(cmd *cobra.Command, args []string, cfg *config.Config, flags *parseFlags) error {
	if err := applyParseFlags(cmd, cfg, flags); err != nil {
		return err
	}

	sess, err := loadSession(cmd, cfg)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	result, err := parseInputs(cmd, sess, args, flags.follow)
	if err != nil {
		return err
	}

	opts := reporter.OptionsFromConfig(sess.cfg, cmd.OutOrStdout())
	opts.WorkingDir = sess.workDir
	opts.ShowSummary = flags.summary || flags.kinds
	opts.ShowKinds = flags.kinds
	opts.Compact = flags.compact

	if sess.cfg.OutputDir != "" {
		renderer, err := reporter.NewFileRenderer(opts)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}

		written, err := reporter.WriteDir(sess.ctx, renderer, sess.cfg.OutputDir, sess.workDir, result)
		if err != nil {
			return fmt.Errorf("write output directory: %w", err)
		}
		logger.Info("wrote dumps", logging.FieldOutput, sess.cfg.OutputDir, logging.FieldFiles, len(written))

		for _, outcome := range result.Files {
			if outcome.Error != nil {
				logger.Error("parse failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			}
		}
	} else {
		rep, err := reporter.New(opts)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		if _, err := rep.Report(sess.ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

// parseInputs parses standard input when the only argument is "-", and
// discovers and parses files otherwise.
func parseInputs(cmd *cobra.Command, sess *session, args []string, follow bool) (*runner.Result, error) {
	logger := logging.FromContext(sess.ctx)
	run := runner.New(sess.parser)
	start := time.Now()

	if len(args) == 1 && args[0] == stdinPath {
		result, err := run.ParseStream(sess.ctx, stdinName, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed standard input", logging.FieldElapsed, time.Since(start))
		return result, nil
	}

	opts := runner.OptionsFromConfig(sess.cfg, args)
	opts.WorkingDir = sess.workDir
	opts.FollowSymlinks = follow

	logger.Debug("starting parse run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := run.Run(sess.ctx, opts)
	if err != nil {
		return nil, errors.Join(errors.New("parse run failed"), err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldTokens, result.Stats.Tokens,
		logging.FieldNodes, result.Stats.Nodes,
		logging.FieldElapsed, time.Since(start),
	)

	return result, nil
}

// applyParseFlags copies explicitly set flags into the CLI configuration.
func applyParseFlags(cmd *cobra.Command, cfg *config.Config, flags *parseFlags) error {
	changed := cmd.Flags().Changed

	if flags.format != "" {
		format, ok := configloader.ResolveFormat(flags.format)
		if !ok {
			_, err := config.ParseFormat(flags.format)
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cfg.Format = format
	}
	if changed("dialect") {
		dialect, ok := configloader.ResolveDialect(flags.dialect)
		if !ok {
			return fmt.Errorf("%w: unknown dialect %q", ErrUsage, flags.dialect)
		}
		cfg.Dialect = dialect
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("extensions") {
		cfg.Extensions = flags.extensions
	}
	if changed("offsets") {
		cfg.Output.ShowOffsets = config.Bool(flags.offsets)
	}
	if changed("max-width") {
		cfg.Output.MaxTextWidth = config.Int(flags.maxWidth)
	}
	if changed("no-languages") {
		cfg.Output.DetectLanguages = config.Bool(!flags.noLanguages)
	}

	return nil
}

func addParseFlags(cmd *cobra.Command, cfg *config.Config, flags *parseFlags, withFormat bool) {
	if withFormat {
		cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, tokens, outline")
	}
	cmd.Flags().StringVar(&flags.dialect, "dialect", string(config.DialectCommonMark), "Markdown dialect: commonmark")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "write one dump per file under this directory")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to parse (default .md,.markdown)")
	cmd.Flags().BoolVar(&flags.offsets, "offsets", false, "show byte offsets (line numbers in outlines)")
	cmd.Flags().IntVar(&flags.maxWidth, "max-width", config.DefaultMaxTextWidth, "truncate leaf text to this width (0 = never)")
	cmd.Flags().BoolVar(&flags.noLanguages, "no-languages", false, "do not detect code block languages")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print run statistics after the output")
	cmd.Flags().BoolVar(&flags.kinds, "kinds", false, "print a node count per kind (implies --summary)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().BoolVarP(&flags.follow, "follow-symlinks", "L", false, "follow symbolic links to directories")
}

// writeLine writes s and a newline, ignoring errors on best-effort output.
func writeLine(w io.Writer, s string) {
	//nolint:errcheck // Best-effort terminal output.
	fmt.Fprintln(w, s)
}
