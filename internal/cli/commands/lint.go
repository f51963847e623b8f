package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/svkit/internal/cli/config"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/lint/rules"
	"github.com/leapstack-labs/svkit/pkg/parser"
)

// ErrLintIssues is returned by the lint command when violations were found,
// so the process exits non-zero.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format override
	Disable  []string // Rule names to disable
	Rules    []string // Run only these rules
	Severity string   // Minimum severity reported
	Watch    bool     // Re-lint on file changes
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Run lint rules on SystemVerilog sources",
		Long: `Parse SystemVerilog sources and report style violations.

Directories are searched recursively for .sv, .svh, .v and .vh files.
Rules are configured under the lint key of svkit.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # Lint the current directory
  svkit lint

  # Lint specific files as JSON
  svkit lint rtl/foo_pkg.sv --format json

  # Run a single rule
  svkit lint --rule package-filename rtl/

  # Re-lint whenever a source changes
  svkit lint --watch rtl/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule names to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only these rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch sources and re-lint on change")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	if opts.Watch {
		return watchLint(cmd.Context(), cc, args, opts)
	}
	found, err := lintOnce(cmd.Context(), cc, args, opts)
	if err != nil {
		return err
	}
	if found {
		return ErrLintIssues
	}
	return nil
}

// lintOnce lints args and renders the results. It reports whether any
// violation or parse failure was found.
func lintOnce(ctx context.Context, cc *CommandContext, args []string, opts *LintOptions) (bool, error) {
	threshold, err := lint.ParseSeverity(opts.Severity)
	if err != nil {
		return false, err
	}
	reg := rules.NewRegistry()
	for _, name := range opts.Rules {
		if _, ok := reg.Lookup(strings.TrimSpace(name)); !ok {
			return false, fmt.Errorf("unknown rule %q (see 'svkit rules')", name)
		}
	}

	paths, err := collectFiles(args)
	if err != nil {
		return false, err
	}

	analyzer := lint.NewAnalyzer(reg, buildLintConfig(cc.Cfg, opts),
		lint.WithLogger(cc.Logger), lint.WithJobs(cc.Cfg.Jobs))

	results := make([]lintFileResult, len(paths))
	var files []lint.File
	var slots []int
	for i, path := range paths {
		results[i].Path = path
		src, err := os.ReadFile(path)
		if err != nil {
			results[i].Err = err
			continue
		}
		res, err := parser.Parse(string(src), path)
		if err != nil {
			results[i].Err = err
			continue
		}
		files = append(files, lint.File{Name: path, Tree: res.Tree})
		slots = append(slots, i)
	}

	cc.Logger.Debug("linting", "files", len(files), "rules", len(analyzer.ActiveRules()))
	fileResults, err := analyzer.AnalyzeFiles(ctx, files)
	if err != nil {
		return false, err
	}
	for j, fr := range fileResults {
		i := slots[j]
		results[i].Err = fr.Err
		results[i].Statuses = filterBySeverity(fr.Statuses, threshold)
	}

	return renderLintResults(cc.Renderer, results)
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	lintCfg := cfg.LintConfig()
	for _, name := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(name))
	}
	if len(opts.Rules) > 0 {
		lintCfg.EnabledRules = make(map[string]bool)
		for _, name := range opts.Rules {
			lintCfg.Enable(strings.TrimSpace(name))
		}
	}
	return lintCfg
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path     string
	Statuses []lint.Status
	Err      error
}

func filterBySeverity(statuses []lint.Status, threshold lint.Severity) []lint.Status {
	var kept []lint.Status
	for _, s := range statuses {
		if s.Severity <= threshold && !s.IsOK() {
			kept = append(kept, s)
		}
	}
	return kept
}
