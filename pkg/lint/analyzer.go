package lint

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/svkit/pkg/syntax"
)

// Analyzer runs the enabled rules of a registry against syntax trees.
type Analyzer struct {
	registry *Registry
	config   *Config
	logger   *slog.Logger
	jobs     int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithJobs bounds the number of files analyzed concurrently.
func WithJobs(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.jobs = n
		}
	}
}

// NewAnalyzer creates an analyzer over reg. A nil config enables every rule.
func NewAnalyzer(reg *Registry, config *Config, opts ...Option) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{
		registry: reg,
		config:   config,
		logger:   slog.New(slog.DiscardHandler),
		jobs:     runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ActiveRules returns the registered rules the config leaves enabled, sorted
// by name.
func (a *Analyzer) ActiveRules() []RuleDef {
	var active []RuleDef
	for _, def := range a.registry.All() {
		if a.config.IsDisabled(def.Name) {
			continue
		}
		active = append(active, def)
	}
	return active
}

type instance struct {
	def  RuleDef
	rule Rule
}

func (a *Analyzer) instantiate() ([]instance, error) {
	defs := a.ActiveRules()
	out := make([]instance, 0, len(defs))
	for _, def := range defs {
		rule, err := def.New(a.config.GetRuleOptions(def.Name))
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", def.Name, err)
		}
		switch rule.(type) {
		case SyntaxTreeRule, TreeRule:
		default:
			return nil, fmt.Errorf("rule %s: %T implements neither SyntaxTreeRule nor TreeRule", def.Name, rule)
		}
		out = append(out, instance{def: def, rule: rule})
	}
	return out, nil
}

// Analyze runs every active rule on tree and returns one status per rule,
// sorted by rule name. A nil tree yields empty statuses. Syntax-tree rules
// share one traversal; tree rules run concurrently beside it.
func (a *Analyzer) Analyze(ctx context.Context, tree syntax.Symbol, filename string) ([]Status, error) {
	instances, err := a.instantiate()
	if err != nil {
		return nil, err
	}

	if !syntax.IsNil(tree) {
		var walkers []SyntaxTreeRule
		g, gctx := errgroup.WithContext(ctx)
		for _, inst := range instances {
			switch r := inst.rule.(type) {
			case SyntaxTreeRule:
				walkers = append(walkers, r)
			case TreeRule:
				name := inst.def.Name
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					if err := r.Lint(tree, filename); err != nil {
						return fmt.Errorf("rule %s: %w", name, err)
					}
					return nil
				})
			}
		}
		if len(walkers) > 0 {
			g.Go(func() error {
				return walkSyntaxRules(gctx, tree, walkers)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("lint %s: %w", filename, err)
		}
	}

	statuses := make([]Status, 0, len(instances))
	for _, inst := range instances {
		status := inst.rule.Report()
		if status.RuleName == "" {
			status.RuleName = inst.def.Name
		}
		if status.Citation == "" {
			status.Citation = inst.def.Citation()
		}
		status.Severity = a.config.GetSeverity(inst.def.Name, inst.def.Severity)
		statuses = append(statuses, status)
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].RuleName < statuses[j].RuleName
	})

	a.logger.Debug("analyzed file", "file", filename, "rules", len(statuses), "violations", countViolations(statuses))
	return statuses, nil
}

// walkSyntaxRules fans a single pre-order traversal out to every rule.
func walkSyntaxRules(ctx context.Context, tree syntax.Symbol, rules []SyntaxTreeRule) error {
	var failure error
	dispatch := func(sym syntax.Symbol, c *syntax.Context) syntax.Action {
		for _, r := range rules {
			if err := r.HandleSymbol(sym, c); err != nil {
				failure = err
				return syntax.Stop
			}
		}
		return syntax.Continue
	}
	syntax.Walk(tree, syntax.VisitorFuncs{
		Leaf: func(leaf *syntax.Leaf, c *syntax.Context) syntax.Action {
			return dispatch(leaf, c)
		},
		Node: func(node *syntax.Node, c *syntax.Context) syntax.Action {
			if err := ctx.Err(); err != nil {
				failure = err
				return syntax.Stop
			}
			return dispatch(node, c)
		},
	})
	return failure
}

func countViolations(statuses []Status) int {
	n := 0
	for _, s := range statuses {
		n += len(s.Violations)
	}
	return n
}

// File is one input to AnalyzeFiles.
type File struct {
	Name string
	Tree syntax.Symbol
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Name     string
	Statuses []Status
	Err      error
}

// AnalyzeFiles analyzes files concurrently, bounded by the job limit. Results
// keep the input order. A failure in one file is recorded in its result and
// does not stop the others; only cancellation of ctx aborts the batch.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, files []File) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			statuses, err := a.Analyze(gctx, f.Tree, f.Name)
			results[i] = FileResult{Name: f.Name, Statuses: statuses, Err: err}
			if err != nil {
				a.logger.Warn("lint failed", "file", f.Name, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
