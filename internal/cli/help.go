// Package cli provides the Cobra command structure for gomdtree.
package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/internal/ui/pretty"
)

// flagColumnGap separates the flag column from descriptions.
const flagColumnGap = 3

// helpFormatter renders command help with the same palette as tree dumps:
// commands like block nodes, subcommands like inline nodes, flags like
// offsets.
type helpFormatter struct {
	styles *pretty.Styles
}

func newHelpFormatter(colorMode string, writer io.Writer) *helpFormatter {
	return &helpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *helpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":     h.styles.Block.Render,
		"heading":     h.styles.TableHeader.Render,
		"subcommand":  h.styles.Inline.Render,
		"dim":         h.styles.Dim.Render,
		"flags":       h.flagUsages,
		"environment": h.environment,
		"rpad":        rpad,
		"join":        strings.Join,
		"trim":        trimTrailingWhitespaces,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

// apply installs the help and usage renderers on cmd. Subcommands inherit them.
func (h *helpFormatter) apply(cmd *cobra.Command) {
	funcs := h.funcs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages lays out visible flags in two aligned columns.
func (h *helpFormatter) flagUsages(set *pflag.FlagSet) string {
	type row struct {
		names, usage string
		width        int
	}

	var rows []row
	widest := 0

	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		varname, usage := pflag.UnquoteUsage(flag)

		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		plain := names
		if varname != "" {
			plain += " " + varname
		}

		if flag.DefValue != "" && flag.DefValue != "false" && flag.DefValue != "0" && flag.DefValue != "[]" {
			usage += h.styles.Dim.Render(fmt.Sprintf(" (default %s)", flag.DefValue))
		}

		styled := h.styles.Offsets.Render(names)
		if varname != "" {
			styled += " " + h.styles.Dim.Render(varname)
		}

		rows = append(rows, row{names: styled, usage: usage, width: lipgloss.Width(plain)})
		widest = max(widest, lipgloss.Width(plain))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", widest-r.width+flagColumnGap)
		lines = append(lines, "  "+r.names+pad+r.usage)
	}
	return strings.Join(lines, "\n")
}

// environment lists the GOMDTREE_* variables, sorted by name.
func (h *helpFormatter) environment() string {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	widest := 0
	for _, name := range names {
		widest = max(widest, len(name))
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+h.styles.Offsets.Render(rpad(name, widest+flagColumnGap))+vars[name])
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
