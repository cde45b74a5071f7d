package config

// Format values accepted by the --format flag. Only the raw data snapshot is
// affected; documentation pages are always markdown.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// Config holds the runtime configuration for an export run.
type Config struct {
	// Output is the directory the data snapshot and documentation are
	// written under.
	Output string `mapstructure:"output"`
	// Format selects the raw snapshot serialization: json, yaml or
	// markdown (markdown keeps the yaml snapshot).
	Format string `mapstructure:"format"`
	// NonInteractive skips the browser login and goes straight to the
	// default credential chain.
	NonInteractive bool `mapstructure:"non_interactive"`

	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ValidFormat reports whether the configured format is one of the supported
// values.
func (c *Config) ValidFormat() bool {
	switch c.Format {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return true
	}
	return false
}
