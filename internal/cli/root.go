// Package cli provides the command-line interface for svkit.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/svkit/internal/cli/commands"
	"github.com/leapstack-labs/svkit/internal/cli/config"
	"github.com/leapstack-labs/svkit/internal/logging"
	"github.com/leapstack-labs/svkit/pkg/lint"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var closeLog func() error

	rootCmd := &cobra.Command{
		Use:   "svkit",
		Short: "svkit - SystemVerilog lint and include propagation",
		Long: `svkit parses SystemVerilog sources into concrete syntax trees.

It runs style lint rules over them and links ` + "`include" + ` directives
across a batch of files, folding constant parameter expressions.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger, closer, err := logging.New(logging.Options{
				Verbose: cfg.Verbose,
				Console: cmd.ErrOrStderr(),
				File:    cfg.LogFile,
			})
			if err != nil {
				return err
			}
			closeLog = closer

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, config.LoggerKey(), logger))
			lint.SetStyleGuideURL(cfg.Lint.StyleGuideURL)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if closeLog == nil {
				return nil
			}
			return closeLog()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
SystemVerilog lint and include propagation
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: svkit.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("output", "", "Output format (auto|text|markdown|json|yaml)")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Parallel workers (0: one per CPU)")
	rootCmd.PersistentFlags().String("log-file", "", "Append debug logs as JSON to this file")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewLintCommand())
	rootCmd.AddCommand(commands.NewPropagateCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewTreeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for svkit.

To load completions:

Bash:
  $ source <(svkit completion bash)

Zsh:
  $ svkit completion zsh > "${fpath[1]}/_svkit"

Fish:
  $ svkit completion fish | source

PowerShell:
  PS> svkit completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
