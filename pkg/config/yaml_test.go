package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()

		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"*.md", "vendor/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".txt"
		*clone.Output.MaxTextWidth = 10

		assert.Equal(t, "*.md", original.Ignore[0])
		assert.Equal(t, ".md", original.Extensions[0])
		assert.Equal(t, config.DefaultMaxTextWidth, original.MaxTextWidth())
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Format:    config.FormatJSON,
			Jobs:      4,
			OutputDir: "out",
			Color:     config.ColorNever,
		}

		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, 4, clone.Jobs)
		assert.Equal(t, "out", clone.OutputDir)
		assert.Equal(t, config.ColorNever, clone.Color)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("defaults serialize", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "dialect: commonmark")
		assert.Contains(t, string(data), "max_text_width: 60")
		assert.NotContains(t, string(data), "format")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().ToYAMLWithHeader("# header")
		require.NoError(t, err)
		assert.Regexp(t, `^# header\n\ndialect:`, string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
dialect: commonmark
extensions: [".md", ".mdx"]
output:
  show_offsets: true
  max_text_width: 0
`))
		require.NoError(t, err)
		assert.Equal(t, config.DialectCommonMark, cfg.Dialect)
		assert.Equal(t, []string{".md", ".mdx"}, cfg.Extensions)
		assert.True(t, cfg.ShowOffsets())
		assert.Equal(t, 0, cfg.MaxTextWidth())
		assert.Nil(t, cfg.Output.DetectLanguages)
		assert.False(t, cfg.DetectLanguages())
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("dialect: [unterminated"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("output:\n  show_offset: true\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "show_offset")
	})

	t.Run("comment-only document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("# nothing set\n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("round trips defaults", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().ToYAML()
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig().Output, cfg.Output)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Equal(t, config.DefaultTemplate(), string(data))

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DialectCommonMark, cfg.Dialect)
	})

	t.Run("full template lists ignores", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Contains(t, cfg.Ignore, "vendor/**")
		assert.True(t, cfg.DetectLanguages())
	})

	t.Run("json template", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "commonmark", decoded["dialect"])
	})
}
