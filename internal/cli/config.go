package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
		Long: `Print the configuration gomdtree resolves for the current directory,
after merging system, user, project and explicit files with GOMDTREE_*
environment variables.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()
			for _, name := range slices.Sorted(maps.Keys(vars)) {
				writeLine(cmd.OutOrStdout(), name+"\t"+vars[name])
			}
		},
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd, &config.Config{})
	if err != nil {
		return err
	}

	header := "# Resolved gomdtree configuration"
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		header += "\n# Explicit file: " + configPath
	}

	data, err := sess.cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}

	writeLine(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
	return nil
}
