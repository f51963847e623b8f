package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/svkit/internal/cli/output"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/lint/rules"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// RuleInfo is the documented form of a rule.
type RuleInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Topic       string   `json:"topic,omitempty" yaml:"topic,omitempty"`
	Citation    string   `json:"citation,omitempty" yaml:"citation,omitempty"`
	Severity    string   `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	ConfigKeys  []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Rationale   string   `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample  string   `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string   `json:"good_example,omitempty" yaml:"good_example,omitempty"`
}

func ruleInfo(def lint.RuleDef) RuleInfo {
	return RuleInfo{
		Name:        def.Name,
		Topic:       def.Topic,
		Citation:    def.Citation(),
		Severity:    def.Severity.String(),
		Description: def.Description,
		ConfigKeys:  def.ConfigKeys,
		Rationale:   def.Rationale,
		BadExample:  def.BadExample,
		GoodExample: def.GoodExample,
	}
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Use --verbose to see rationale and examples for every rule.`,
		Example: `  # List all rules
  svkit rules

  # Show details for a specific rule
  svkit rules package-filename

  # Output as JSON
  svkit rules --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return rules.NewRegistry().Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewCommandContext(cmd, opts.Format).Renderer
			reg := rules.NewRegistry()
			if len(args) > 0 {
				def, ok := reg.Lookup(args[0])
				if !ok {
					return fmt.Errorf("rule %q not found", args[0])
				}
				return showRule(r, ruleInfo(def))
			}
			var infos []RuleInfo
			for _, def := range reg.All() {
				infos = append(infos, ruleInfo(def))
			}
			return listRules(r, infos, opts.Verbose)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// RulesOutput is the structured rules listing.
type RulesOutput struct {
	Rules []RuleInfo `json:"rules" yaml:"rules"`
	Count int        `json:"count" yaml:"count"`
}

func listRules(r *output.Renderer, infos []RuleInfo, verbose bool) error {
	if ok, err := r.Structured(RulesOutput{Rules: infos, Count: len(infos)}); ok {
		return err
	}

	r.Header(fmt.Sprintf("Lint Rules (%d)", len(infos)))
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Name, r.Title(strings.ReplaceAll(info.Topic, "-", " ")), info.Severity, info.Description}
	}
	r.Table([]string{"Rule", "Topic", "Severity", "Description"}, rows)

	if verbose {
		for _, info := range infos {
			r.Println("")
			if err := showRule(r, info); err != nil {
				return err
			}
		}
	}
	r.Println("")
	r.Println(r.Styles().Muted.Render("Use 'svkit rules <rule-name>' for detailed documentation"))
	return nil
}

func showRule(r *output.Renderer, info RuleInfo) error {
	if ok, err := r.Structured(info); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		showRuleMarkdown(r, info)
		return nil
	}

	styles := r.Styles()
	r.Println(styles.Header2.Render(info.Name))
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), info.Severity)
	if info.Citation != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Style"), info.Citation)
	}
	r.Println("  " + info.Description)
	if info.Rationale != "" {
		r.Println("")
		r.Println(styles.Bold.Render("  Why This Matters"))
		r.Println("  " + info.Rationale)
	}
	for _, ex := range []struct {
		title string
		code  string
		style func(...string) string
	}{
		{"Bad Example", info.BadExample, styles.Muted.Render},
		{"Good Example", info.GoodExample, styles.Success.Render},
	} {
		if ex.code == "" {
			continue
		}
		r.Println("")
		r.Println(styles.Bold.Render("  " + ex.title))
		for _, line := range strings.Split(ex.code, "\n") {
			r.Println(ex.style("    " + line))
		}
	}
	if len(info.ConfigKeys) > 0 {
		r.Println("")
		r.Printf("  %s: %s\n", styles.Bold.Render("Options"), strings.Join(info.ConfigKeys, ", "))
	}
	return nil
}

func showRuleMarkdown(r *output.Renderer, info RuleInfo) {
	r.Printf("## %s\n\n", info.Name)
	r.Printf("**Severity:** `%s`", info.Severity)
	if info.Citation != "" {
		r.Printf(" | **Style:** %s", info.Citation)
	}
	r.Println("")
	r.Println("")
	r.Println(info.Description)
	r.Println("")
	if info.Rationale != "" {
		r.Println("### Why This Matters")
		r.Println("")
		r.Println(info.Rationale)
		r.Println("")
	}
	if info.BadExample != "" {
		r.Println("### Bad Example")
		r.Println("")
		r.Println("```systemverilog")
		r.Println(info.BadExample)
		r.Println("```")
		r.Println("")
	}
	if info.GoodExample != "" {
		r.Println("### Good Example")
		r.Println("")
		r.Println("```systemverilog")
		r.Println(info.GoodExample)
		r.Println("```")
		r.Println("")
	}
	if len(info.ConfigKeys) > 0 {
		r.Printf("Options: `%s`\n\n", strings.Join(info.ConfigKeys, "`, `"))
	}
}
