// Package config defines core configuration types for gomdtree.
// These types are pure data structures with no dependency on the loaders that fill them.
package config

// Dialect names the Markdown dialect used for block recognition.
type Dialect string

const (
	DialectCommonMark Dialect = "commonmark"
)

// OutputFormat specifies how parse results are rendered.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatTokens  OutputFormat = "tokens"
	FormatOutline OutputFormat = "outline"
)

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultMaxTextWidth is the leaf text width used by the text renderer.
const DefaultMaxTextWidth = 60

// OutputConfig controls what renderers include.
type OutputConfig struct {
	// ShowOffsets adds byte offsets to text dumps.
	ShowOffsets *bool `mapstructure:"show_offsets" yaml:"show_offsets,omitempty"`

	// MaxTextWidth truncates leaf text in text dumps. Zero disables truncation.
	MaxTextWidth *int `mapstructure:"max_text_width" yaml:"max_text_width,omitempty"`

	// DetectLanguages annotates code blocks with a detected language in JSON output.
	DetectLanguages *bool `mapstructure:"detect_languages" yaml:"detect_languages,omitempty"`
}

// Config is the root configuration structure for gomdtree.
type Config struct {
	// Dialect selects the block dialect ("commonmark").
	Dialect Dialect `mapstructure:"dialect" yaml:"dialect"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Extensions lists the file extensions treated as Markdown.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Output configures renderers.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// OutputDir writes one dump per input file instead of printing to stdout.
	OutputDir string `mapstructure:"-" yaml:"-"`

	// Color controls styled output.
	Color ColorMode `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions returns the Markdown file extensions searched by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialect:    DialectCommonMark,
		Ignore:     nil,
		Extensions: DefaultExtensions(),
		Output: OutputConfig{
			ShowOffsets:     Bool(false),
			MaxTextWidth:    Int(DefaultMaxTextWidth),
			DetectLanguages: Bool(true),
		},
		Format: FormatText,
		Color:  ColorAuto,
		Jobs:   0, // 0 means use runtime.NumCPU()
	}
}

// ShowOffsets reports whether text dumps include offsets.
func (c *Config) ShowOffsets() bool {
	return c != nil && c.Output.ShowOffsets != nil && *c.Output.ShowOffsets
}

// DetectLanguages reports whether code blocks get a detected language.
func (c *Config) DetectLanguages() bool {
	return c != nil && c.Output.DetectLanguages != nil && *c.Output.DetectLanguages
}

// MaxTextWidth returns the leaf text width, or DefaultMaxTextWidth when unset.
func (c *Config) MaxTextWidth() int {
	if c == nil || c.Output.MaxTextWidth == nil {
		return DefaultMaxTextWidth
	}
	return *c.Output.MaxTextWidth
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to i.
func Int(i int) *int {
	return &i
}
