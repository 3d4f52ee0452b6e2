package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/config"
)

const envVarPrefix = "GOMDTREE_"

// envVar binds one GOMDTREE_* variable to a config key.
type envVar struct {
	suffix string
	key    string
	help   string
	set    func(cfg *config.Config, raw string) error
}

//nolint:gochecknoglobals // read-only
var envVars = []envVar{
	{"DIALECT", "dialect", "Markdown dialect: commonmark", func(cfg *config.Config, raw string) error {
		cfg.Dialect = config.Dialect(raw)
		return nil
	}},
	{"FORMAT", "format", "Output format: text, json, tokens, or outline", func(cfg *config.Config, raw string) error {
		cfg.Format = config.OutputFormat(raw)
		return nil
	}},
	{"COLOR", "color", "Color mode: auto, always, or never", func(cfg *config.Config, raw string) error {
		cfg.Color = config.ColorMode(raw)
		return nil
	}},
	{"OUTPUT_DIR", "output_dir", "Directory receiving one dump per file", func(cfg *config.Config, raw string) error {
		cfg.OutputDir = raw
		return nil
	}},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)", intSetter(func(cfg *config.Config, n int) {
		cfg.Jobs = n
	})},
	{"MAX_TEXT_WIDTH", "output.max_text_width", "Leaf text width in text dumps (0 = unlimited)", intSetter(func(cfg *config.Config, n int) {
		cfg.Output.MaxTextWidth = config.Int(n)
	})},
	{"SHOW_OFFSETS", "output.show_offsets", "Include byte offsets in text dumps: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Output.ShowOffsets = config.Bool(b)
	})},
	{"DETECT_LANGUAGES", "output.detect_languages", "Detect code block languages: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Output.DetectLanguages = config.Bool(b)
	})},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns", func(cfg *config.Config, raw string) error {
		cfg.Ignore = splitList(raw)
		return nil
	}},
	{"EXTENSIONS", "extensions", "Comma-separated list of Markdown extensions", func(cfg *config.Config, raw string) error {
		cfg.Extensions = splitList(raw)
		return nil
	}},
}

func (v envVar) name() string { return envVarPrefix + v.suffix }

func intSetter(apply func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("not an integer: %q", raw)
		}
		apply(cfg, n)
		return nil
	}
}

func boolSetter(apply func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("not a boolean: %q", raw)
		}
		apply(cfg, b)
		return nil
	}
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(raw string) []string {
	var items []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// LoadFromEnv overlays every non-empty GOMDTREE_* variable onto cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		raw := os.Getenv(v.name())
		if raw == "" {
			continue
		}
		if err := v.set(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", v.name(), err)
		}
	}
	return nil
}

// GetEnvVarName maps a config key such as "output.show_offsets" to its
// environment variable, or "" when the key has none.
func GetEnvVarName(key string) string {
	for _, v := range envVars {
		if v.key == key {
			return v.name()
		}
	}
	return ""
}

// ListEnvVars returns each supported variable with a one-line description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, v := range envVars {
		vars[v.name()] = v.help
	}
	return vars
}
