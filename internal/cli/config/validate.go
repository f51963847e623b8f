package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/svkit/pkg/lint"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("output must be one of %v, got %q", OutputFormats, c.OutputFormat)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	for rule, sev := range c.Lint.Severity {
		if _, err := lint.ParseSeverity(sev); err != nil {
			return fmt.Errorf("lint.severity.%s: %w", rule, err)
		}
	}
	return nil
}

// LintConfig converts the lint section into an engine configuration.
func (c *Config) LintConfig() *lint.Config {
	cfg := lint.NewConfig()
	for _, name := range c.Lint.Disabled {
		cfg.Disable(name)
	}
	for _, name := range c.Lint.Enabled {
		cfg.Enable(name)
	}
	for name, sev := range c.Lint.Severity {
		if s, err := lint.ParseSeverity(sev); err == nil {
			cfg.SetSeverity(name, s)
		}
	}
	for name, opts := range c.Lint.Rules {
		cfg.SetRuleOptions(name, opts)
	}
	return cfg
}
