package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svkit/internal/testutil"
	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/parser"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// identRule flags every identifier spelled like its "word" option.
type identRule struct {
	word       string
	violations lint.ViolationSet
}

func (r *identRule) HandleSymbol(sym syntax.Symbol, ctx *syntax.Context) error {
	if l, ok := sym.(*syntax.Leaf); ok && l.Token.Kind == token.IDENT && l.Token.Text == r.word {
		r.violations.Add(lint.NewViolation(l.Token, "found "+r.word, ctx))
	}
	return nil
}

func (r *identRule) Report() lint.Status {
	return lint.Status{RuleName: "ident", Violations: r.violations.Items()}
}

var identDef = lint.RuleDef{
	Name:     "ident",
	Topic:    "naming",
	Severity: lint.SeverityWarning,
	New: func(opts map[string]any) (lint.Rule, error) {
		return &identRule{word: lint.GetStringOption(opts, "word", "bad")}, nil
	},
}

// moduleCountRule flags every module after the first.
type moduleCountRule struct {
	violations lint.ViolationSet
}

func (r *moduleCountRule) Lint(tree syntax.Symbol, _ string) error {
	for i, m := range cst.FindAllModuleDeclarations(tree) {
		if i == 0 {
			continue
		}
		tok, err := cst.GetModuleNameToken(m.Symbol)
		if err != nil {
			return err
		}
		r.violations.Add(lint.Violation{Token: tok, Message: "one module per file", Context: m.Context})
	}
	return nil
}

func (r *moduleCountRule) Report() lint.Status {
	return lint.Status{Violations: r.violations.Items()}
}

var moduleCountDef = lint.RuleDef{
	Name:     "module-count",
	Topic:    "file-contents",
	Severity: lint.SeverityError,
	New:      func(map[string]any) (lint.Rule, error) { return &moduleCountRule{}, nil },
}

type failingRule struct{}

func (failingRule) Lint(syntax.Symbol, string) error {
	return syntax.Malformed("kModuleHeader", "leaf", "")
}
func (failingRule) Report() lint.Status { return lint.Status{} }

var failingDef = lint.RuleDef{
	Name: "failing",
	New:  func(map[string]any) (lint.Rule, error) { return failingRule{}, nil },
}

func tok(text string, offset int) token.Token {
	return token.Token{Kind: token.IDENT, Text: text, Pos: token.Position{Line: 1, Column: offset + 1, Offset: offset}}
}

func parse(t *testing.T, src string) syntax.Symbol {
	t.Helper()
	res, err := parser.Parse(src, "test.sv")
	require.NoError(t, err)
	return res.Tree
}

func newRegistry(t *testing.T, defs ...lint.RuleDef) *lint.Registry {
	t.Helper()
	reg := lint.NewRegistry()
	for _, def := range defs {
		require.NoError(t, reg.Register(def))
	}
	return reg
}

func TestViolationSet_OrderAndDedup(t *testing.T) {
	var set lint.ViolationSet
	assert.True(t, set.Add(lint.Violation{Token: tok("c", 20), Message: "m"}))
	assert.True(t, set.Add(lint.Violation{Token: tok("a", 0), Message: "z"}))
	assert.True(t, set.Add(lint.Violation{Token: tok("a", 0), Message: "b"}))
	assert.True(t, set.Add(lint.Violation{Token: tok("b", 10), Message: "m"}))
	assert.False(t, set.Add(lint.Violation{Token: tok("b", 10), Message: "m"}))

	items := set.Items()
	require.Len(t, items, 4)
	assert.Equal(t, 4, set.Len())
	var got []string
	for _, v := range items {
		got = append(got, v.Token.Text+":"+v.Message)
	}
	assert.Equal(t, []string{"a:b", "a:z", "b:m", "c:m"}, got)

	items[0].Message = "changed"
	assert.Equal(t, "b", set.Items()[0].Message, "Items returns a copy")
}

func TestRegistry(t *testing.T) {
	reg := lint.NewRegistry()
	require.NoError(t, reg.Register(moduleCountDef))
	require.NoError(t, reg.Register(identDef))

	err := reg.Register(identDef)
	var dup *lint.DuplicateRuleError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "ident", dup.Name)
	assert.ErrorIs(t, err, lint.ErrDuplicateRule)

	assert.Error(t, reg.Register(lint.RuleDef{New: identDef.New}), "nameless rule")
	assert.Error(t, reg.Register(lint.RuleDef{Name: "no-factory"}))

	def, ok := reg.Lookup("ident")
	require.True(t, ok)
	assert.Equal(t, "naming", def.Topic)
	_, ok = reg.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"ident", "module-count"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
	assert.Panics(t, func() { reg.MustRegister(identDef) })
}

func TestConfig(t *testing.T) {
	var nilConfig *lint.Config
	assert.False(t, nilConfig.IsDisabled("x"))
	assert.Equal(t, lint.SeverityHint, nilConfig.GetSeverity("x", lint.SeverityHint))
	assert.Nil(t, nilConfig.GetRuleOptions("x"))

	cfg := lint.NewConfig().Disable("a").SetSeverity("b", lint.SeverityError)
	assert.True(t, cfg.IsDisabled("a"))
	assert.False(t, cfg.IsDisabled("b"))
	assert.Equal(t, lint.SeverityError, cfg.GetSeverity("b", lint.SeverityWarning))
	assert.Equal(t, lint.SeverityWarning, cfg.GetSeverity("c", lint.SeverityWarning))

	cfg.Enable("b")
	assert.True(t, cfg.IsDisabled("c"), "rules outside the enabled set are skipped")
	assert.False(t, cfg.IsDisabled("b"))

	cfg.Enable("a")
	assert.True(t, cfg.IsDisabled("a"), "disable wins over enable")
}

func TestOptions(t *testing.T) {
	opts := map[string]any{
		"s":      "text",
		"i":      float64(3),
		"b":      true,
		"list":   []any{"x", 1, "y"},
		"csv":    "a, b,,c",
		"strs":   []string{"p"},
		"wrong":  42,
		"int64":  int64(7),
		"native": 5,
	}
	assert.Equal(t, "text", lint.GetStringOption(opts, "s", "d"))
	assert.Equal(t, "d", lint.GetStringOption(opts, "wrong", "d"))
	assert.Equal(t, 3, lint.GetIntOption(opts, "i", 0))
	assert.Equal(t, 7, lint.GetIntOption(opts, "int64", 0))
	assert.Equal(t, 5, lint.GetIntOption(opts, "native", 0))
	assert.Equal(t, 9, lint.GetIntOption(opts, "s", 9))
	assert.Equal(t, 9, lint.GetIntOption(nil, "i", 9))
	assert.True(t, lint.GetBoolOption(opts, "b", false))
	assert.False(t, lint.GetBoolOption(opts, "missing", false))
	assert.Equal(t, []string{"x", "y"}, lint.GetStringSliceOption(opts, "list", nil))
	assert.Equal(t, []string{"a", "b", "c"}, lint.GetStringSliceOption(opts, "csv", nil))
	assert.Equal(t, []string{"p"}, lint.GetStringSliceOption(opts, "strs", nil))
	assert.Equal(t, []string{"d"}, lint.GetStringSliceOption(opts, "wrong", []string{"d"}))
	assert.Equal(t, 3.0, lint.GetOption(opts, "i", 0.0))
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]lint.Severity{
		"error": lint.SeverityError, "Warning": lint.SeverityWarning, "warn": lint.SeverityWarning,
		" info ": lint.SeverityInfo, "hint": lint.SeverityHint,
	} {
		got, err := lint.ParseSeverity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.NotEqual(t, "unknown", got.String())
	}
	_, err := lint.ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestCitation(t *testing.T) {
	t.Cleanup(lint.ResetStyleGuideURL)
	assert.Empty(t, lint.Citation(""))
	assert.Equal(t, "[Style: naming] <"+lint.DefaultStyleGuideURL+"#naming>", lint.Citation("naming"))

	lint.SetStyleGuideURL("https://example.com/guide/")
	assert.Equal(t, "[Style: naming] <https://example.com/guide#naming>", lint.Citation("naming"))
	lint.SetStyleGuideURL("")
	assert.Equal(t, lint.DefaultStyleGuideURL, lint.StyleGuideURL)
}

func TestAnalyzer_Analyze(t *testing.T) {
	tree := parse(t, "module bad; endmodule\nmodule other; wire bad; endmodule")
	reg := newRegistry(t, identDef, moduleCountDef)
	cfg := lint.NewConfig().SetSeverity("ident", lint.SeverityInfo)
	analyzer := lint.NewAnalyzer(reg, cfg, lint.WithLogger(testutil.NewTestLogger(t)), lint.WithJobs(2))

	statuses, err := analyzer.Analyze(context.Background(), tree, "test.sv")
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	ident := statuses[0]
	assert.Equal(t, "ident", ident.RuleName)
	assert.Equal(t, lint.SeverityInfo, ident.Severity)
	require.Len(t, ident.Violations, 2)
	assert.Equal(t, 7, ident.Violations[0].Token.Offset())
	assert.True(t, ident.Violations[0].Context.IsInside(cst.ModuleDeclaration))
	assert.True(t, ident.Violations[1].Context.IsInside(cst.DataDeclaration))

	count := statuses[1]
	assert.Equal(t, "module-count", count.RuleName)
	assert.Equal(t, lint.Citation("file-contents"), count.Citation, "filled from the definition")
	assert.Equal(t, lint.SeverityError, count.Severity)
	require.Len(t, count.Violations, 1)
	assert.Equal(t, "other", count.Violations[0].Token.Text)
	assert.False(t, count.IsOK())
}

func TestAnalyzer_RuleOptionsAndFreshInstances(t *testing.T) {
	reg := newRegistry(t, identDef)
	cfg := lint.NewConfig().SetRuleOptions("ident", map[string]any{"word": "w"})
	analyzer := lint.NewAnalyzer(reg, cfg)

	first, err := analyzer.Analyze(context.Background(), parse(t, "module m; wire w; endmodule"), "a.sv")
	require.NoError(t, err)
	require.Len(t, first[0].Violations, 1)

	second, err := analyzer.Analyze(context.Background(), parse(t, "module m; endmodule"), "b.sv")
	require.NoError(t, err)
	assert.True(t, second[0].IsOK(), "no state carried over from a.sv")
}

func TestAnalyzer_NilTree(t *testing.T) {
	analyzer := lint.NewAnalyzer(newRegistry(t, identDef, moduleCountDef, failingDef), nil)
	statuses, err := analyzer.Analyze(context.Background(), nil, "empty.sv")
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, s := range statuses {
		assert.True(t, s.IsOK(), s.RuleName)
	}
}

func TestAnalyzer_DisabledRules(t *testing.T) {
	reg := newRegistry(t, identDef, moduleCountDef)
	analyzer := lint.NewAnalyzer(reg, lint.NewConfig().Disable("ident"))
	assert.Len(t, analyzer.ActiveRules(), 1)

	statuses, err := analyzer.Analyze(context.Background(), parse(t, "module bad; endmodule"), "x.sv")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "module-count", statuses[0].RuleName)
}

func TestAnalyzer_RuleError(t *testing.T) {
	analyzer := lint.NewAnalyzer(newRegistry(t, identDef, failingDef), nil)
	_, err := analyzer.Analyze(context.Background(), parse(t, "module m; endmodule"), "broken.sv")
	require.Error(t, err)
	assert.ErrorIs(t, err, syntax.ErrMalformedTree)
	assert.Contains(t, err.Error(), "broken.sv")
	assert.Contains(t, err.Error(), "rule failing")
}

func TestAnalyzer_FactoryError(t *testing.T) {
	boom := errors.New("bad option")
	reg := newRegistry(t, lint.RuleDef{
		Name: "strict",
		New:  func(map[string]any) (lint.Rule, error) { return nil, boom },
	})
	_, err := lint.NewAnalyzer(reg, nil).Analyze(context.Background(), nil, "x.sv")
	assert.ErrorIs(t, err, boom)
}

type reportOnly struct{}

func (reportOnly) Report() lint.Status { return lint.Status{} }

func TestAnalyzer_RuleWithoutStyle(t *testing.T) {
	reg := newRegistry(t, lint.RuleDef{
		Name: "lazy",
		New:  func(map[string]any) (lint.Rule, error) { return reportOnly{}, nil },
	})
	_, err := lint.NewAnalyzer(reg, nil).Analyze(context.Background(), nil, "x.sv")
	assert.ErrorContains(t, err, "neither")
}

func TestAnalyzer_AnalyzeFiles(t *testing.T) {
	reg := newRegistry(t, identDef, moduleCountDef)
	analyzer := lint.NewAnalyzer(reg, nil, lint.WithJobs(2))
	files := []lint.File{
		{Name: "a.sv", Tree: parse(t, "module bad; endmodule")},
		{Name: "empty.sv"},
		{Name: "b.sv", Tree: parse(t, "module a; endmodule module b; endmodule")},
	}

	results, err := analyzer.AnalyzeFiles(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, f := range files {
		assert.Equal(t, f.Name, results[i].Name)
		assert.NoError(t, results[i].Err)
		assert.Len(t, results[i].Statuses, 2)
	}
	assert.Len(t, results[0].Statuses[0].Violations, 1)
	assert.Len(t, results[2].Statuses[1].Violations, 1)
}

func TestAnalyzer_AnalyzeFiles_PerFileErrors(t *testing.T) {
	analyzer := lint.NewAnalyzer(newRegistry(t, failingDef), nil)
	results, err := analyzer.AnalyzeFiles(context.Background(), []lint.File{
		{Name: "a.sv", Tree: parse(t, "module a; endmodule")},
		{Name: "b.sv"},
	})
	require.NoError(t, err)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err, "nil trees never run tree rules")
}

func TestAnalyzer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	analyzer := lint.NewAnalyzer(newRegistry(t, identDef), nil)
	_, err := analyzer.AnalyzeFiles(ctx, []lint.File{{Name: "a.sv", Tree: parse(t, "module a; endmodule")}})
	assert.ErrorIs(t, err, context.Canceled)
}
