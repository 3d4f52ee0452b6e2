package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdtree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdtree",
		Short: "A lossless Markdown concrete syntax tree parser",
		Long: `gomdtree parses Markdown into a concrete syntax tree that keeps every
byte of the source: markers, whitespace and line endings included.

It prints trees, token streams and block outlines, exports them as JSON,
and can compare its block structure against goldmark.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto), "colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand("parse", "Print the syntax tree of Markdown files", parseLongDescription, ""))
	rootCmd.AddCommand(newParseCommand("tokens", "Print the token stream of Markdown files", tokensLongDescription, config.FormatTokens))
	rootCmd.AddCommand(newParseCommand("outline", "Print the block outline of Markdown files", outlineLongDescription, config.FormatOutline))
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	newHelpFormatter(color, os.Stdout).apply(rootCmd)

	return rootCmd
}
