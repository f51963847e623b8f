// Package lint runs SystemVerilog lint rules over syntax trees.
//
// # Architecture
//
// Rules are registered in an explicit Registry as RuleDef values. A RuleDef
// carries metadata and a Factory; the Analyzer asks the factory for a fresh
// rule instance for every file it analyzes, so rule state never leaks between
// files.
//
// Rules come in two styles:
//
//  1. SyntaxTreeRule: HandleSymbol is called for every symbol of one shared
//     pre-order traversal of the tree, fanned out to all such rules.
//  2. TreeRule: Lint receives the whole tree and the file name and runs its
//     own searches, typically with pkg/matcher.
//
// Each instance collects findings in a ViolationSet, ordered by anchor offset,
// and hands them back once through Report.
//
// # Using the Registry
//
//	reg := lint.NewRegistry()
//	if err := rules.RegisterAll(reg); err != nil {
//		return err
//	}
//	analyzer := lint.NewAnalyzer(reg, lint.NewConfig())
//	statuses, err := analyzer.Analyze(ctx, tree, "foo_pkg.sv")
//
// # Configuration
//
// Use Config to choose rules, override severities and pass rule options:
//
//	config := lint.NewConfig()
//	config.Disable("void-cast")
//	config.SetSeverity("package-filename", lint.SeverityError)
//	config.SetRuleOptions("void-cast", map[string]any{"forbidden_functions": []string{"uvm_hdl_read"}})
package lint
