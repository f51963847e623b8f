package lint

import (
	"github.com/leapstack-labs/svkit/pkg/syntax"
)

// Rule is a per-file rule instance. Report is called once, after analysis.
type Rule interface {
	Report() Status
}

// SyntaxTreeRule inspects symbols one at a time during the analyzer's shared
// traversal.
type SyntaxTreeRule interface {
	Rule
	HandleSymbol(sym syntax.Symbol, ctx *syntax.Context) error
}

// TreeRule inspects a whole tree at once.
type TreeRule interface {
	Rule
	Lint(tree syntax.Symbol, filename string) error
}

// Factory returns a fresh rule instance configured with opts.
type Factory func(opts map[string]any) (Rule, error)

// RuleDef describes a rule and how to instantiate it.
type RuleDef struct {
	Name        string   // Unique name, e.g., "package-filename"
	Topic       string   // Style-guide topic used for the citation
	Description string   // Human-readable description
	Severity    Severity // Default severity
	ConfigKeys  []string // Option keys this rule accepts
	New         Factory

	// Documentation fields
	Rationale   string // Why this rule exists
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
}

// Citation returns the style-guide citation for the rule.
func (d RuleDef) Citation() string {
	return Citation(d.Topic)
}
