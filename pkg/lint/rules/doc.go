// Package rules provides the SystemVerilog lint rules shipped with svkit.
//
// Rules are plain lint.RuleDef values. Nothing registers itself; callers
// choose what to register:
//
//	reg := lint.NewRegistry()
//	if err := rules.RegisterAll(reg); err != nil {
//		return err
//	}
//
// or, for the full built-in set, simply:
//
//	reg := rules.NewRegistry()
package rules
