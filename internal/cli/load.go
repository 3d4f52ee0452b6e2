package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

// session is the resolved environment of one command invocation.
type session struct {
	ctx     context.Context
	workDir string
	cfg     *config.Config
	parser  *parser.Parser
}

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadSession merges configuration sources with the CLI overrides in cliCfg
// and builds the parser for the configured dialect.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config

	dialect, ok := parser.DialectByName(string(cfg.Dialect))
	if !ok {
		return nil, fmt.Errorf("%w: unknown dialect %q", ErrConfig, cfg.Dialect)
	}

	ctx = logging.WithFields(ctx, logging.FieldDialect, dialect.Name())
	logger = logging.FromContext(ctx)

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldOutput, cfg.OutputDir,
	)

	return &session{
		ctx:     ctx,
		workDir: workDir,
		cfg:     cfg,
		parser:  parser.New(parser.WithDialect(dialect), parser.WithLogger(logger)),
	}, nil
}
