// Package config loads svkit configuration from defaults, svkit.yaml,
// SVKIT_ environment variables and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	Jobs         int             `koanf:"jobs"`
	LogFile      string          `koanf:"log_file"`
	Lint         LintConfig      `koanf:"lint"`
	Propagate    PropagateConfig `koanf:"propagate"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// LintConfig configures the lint command.
type LintConfig struct {
	Disabled      []string                  `koanf:"disabled"`
	Enabled       []string                  `koanf:"enabled"`
	Severity      map[string]string         `koanf:"severity"`
	Rules         map[string]map[string]any `koanf:"rules"`
	StyleGuideURL string                    `koanf:"style_guide_url"`
}

// PropagateConfig configures the propagate command.
type PropagateConfig struct {
	// Defines are prepended to every source as `define directives.
	Defines map[string]string `koanf:"defines"`
}

// Config file names, in lookup order.
const (
	ConfigFileName    = "svkit.yaml"
	ConfigFileNameAlt = "svkit.yml"
)

// Default configuration values.
const (
	DefaultOutput = "auto" // TTY=text, otherwise markdown
	DefaultJobs   = 0      // GOMAXPROCS
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}
