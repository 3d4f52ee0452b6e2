package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return []byte(DefaultTemplate()), nil
}

// DefaultTemplate returns the commented minimal configuration written by `gomdtree init`.
func DefaultTemplate() string {
	return DefaultTemplateHeader() + `

# Markdown dialect used for block recognition
dialect: commonmark

# File extensions treated as Markdown
# extensions:
#   - .md
#   - .markdown

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Renderer settings
# output:
#   show_offsets: false
#   max_text_width: 60
#   detect_languages: true
`
}

// generateFullTemplate renders NewConfig with a header.
func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", "node_modules/**", ".git/**"}

	data, err := cfg.ToYAMLWithHeader(DefaultTemplateHeader() + "\n#\n# Every setting is listed with its default value.")
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return data, nil
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()

	jsonBytes, err := json.MarshalIndent(map[string]any{
		"dialect":    cfg.Dialect,
		"extensions": cfg.Extensions,
		"ignore":     []string{},
		"output": map[string]any{
			"show_offsets":     cfg.ShowOffsets(),
			"max_text_width":   cfg.MaxTextWidth(),
			"detect_languages": cfg.DetectLanguages(),
		},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdtree configuration
# See: https://github.com/yaklabco/gomdtree`
}
