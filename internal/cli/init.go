package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gomdtree configuration file",
		Long: `Create a .gomdtree.yml configuration file in the current directory.
The minimal template documents every setting in comments; --full writes
each setting with its default value.

Examples:
  gomdtree init                      Create minimal .gomdtree.yml
  gomdtree init --full               Write every setting with its default
  gomdtree init --format json        Create .gomdtree.json (load it with --config)
  gomdtree init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .gomdtree.yml or .gomdtree.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".gomdtree.json"
		} else {
			outputPath = configloader.ProjectConfigName()
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	opts := config.TemplateOptions{Full: flags.full, Format: flags.format}
	replaced, err := configloader.WriteTemplate(ctx, absPath, opts, flags.force)
	if errors.Is(err, configloader.ErrConfigExists) {
		return fmt.Errorf("%w: %w; use --force to overwrite", ErrUsage, err)
	}
	if err != nil {
		return err
	}

	if replaced {
		logger.Warn("overwrote existing file", logging.FieldPath, outputPath)
	}
	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.format == "json" {
		logger.Info("JSON files are not discovered automatically; pass them with --config")
	}

	return nil
}
