package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svkit/pkg/lint"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultJobs, cfg.Jobs)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, lint.DefaultStyleGuideURL, cfg.Lint.StyleGuideURL)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, `output: json
jobs: 3
log_file: svkit.log
lint:
  disabled: [void-cast]
  severity:
    package-filename: error
  rules:
    package-filename:
      optional_suffix: _p
propagate:
  defines:
    WIDTH: "8"
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, "svkit.log", cfg.LogFile)
	assert.Equal(t, []string{"void-cast"}, cfg.Lint.Disabled)
	assert.Equal(t, map[string]string{"package-filename": "error"}, cfg.Lint.Severity)
	assert.Equal(t, "_p", cfg.Lint.Rules["package-filename"]["optional_suffix"])
	assert.Equal(t, map[string]string{"WIDTH": "8"}, cfg.Propagate.Defines)
	assert.Equal(t, path, GetConfigFileUsed())

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.ProjectRoot)
}

func TestLoadConfig_SearchesUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "verbose: true\n")
	nested := filepath.Join(root, "rtl", "core")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ConfigFileName, filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "output: json\n")
	t.Setenv("SVKIT_OUTPUT", "yaml")
	t.Setenv("SVKIT_LINT__DISABLED", "void-cast,package-filename")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.OutputFormat, "env var should override config file")
	assert.Equal(t, []string{"void-cast", "package-filename"}, cfg.Lint.Disabled)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "output: json\njobs: 2\n")
	t.Setenv("SVKIT_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")
	flags.Int("jobs", 0, "jobs")
	flags.String("config", "", "config file")
	require.NoError(t, flags.Set("output", "text"))
	require.NoError(t, flags.Set("config", path))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.OutputFormat, "flag value should override config file and env var")
	assert.Equal(t, 2, cfg.Jobs, "unset flags do not override")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errSub  string
	}{
		{"unknown output", "output: html\n", "output must be one of"},
		{"negative jobs", "jobs: -1\n", "jobs must not be negative"},
		{"bad severity", "lint:\n  severity:\n    void-cast: fatal\n", "unknown severity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestConfig_LintConfig(t *testing.T) {
	cfg := &Config{Lint: LintConfig{
		Disabled: []string{"void-cast"},
		Enabled:  []string{"package-filename", "void-cast"},
		Severity: map[string]string{"package-filename": "hint"},
		Rules:    map[string]map[string]any{"package-filename": {"optional_suffix": "_p"}},
	}}

	lc := cfg.LintConfig()
	assert.True(t, lc.IsDisabled("void-cast"))
	assert.False(t, lc.IsDisabled("package-filename"))
	assert.True(t, lc.IsDisabled("explicit-parameter-storage-type"))
	assert.Equal(t, lint.SeverityHint, lc.GetSeverity("package-filename", lint.SeverityError))
	assert.Equal(t, map[string]any{"optional_suffix": "_p"}, lc.GetRuleOptions("package-filename"))
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "falls back to a discard logger")

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
