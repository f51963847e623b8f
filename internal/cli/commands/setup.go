package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/svkit/internal/cli/config"
	"github.com/leapstack-labs/svkit/internal/cli/output"
	"github.com/leapstack-labs/svkit/pkg/lint"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd. format, when
// non-empty, overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// getConfig returns the current configuration, or defaults when the root
// command did not load one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cwd, _ := os.Getwd()
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		Jobs:         config.DefaultJobs,
		Lint:         config.LintConfig{StyleGuideURL: lint.DefaultStyleGuideURL},
		ProjectRoot:  cwd,
	}
}
