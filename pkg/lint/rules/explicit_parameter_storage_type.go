package rules

import (
	"fmt"

	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/matcher"
	"github.com/leapstack-labs/svkit/pkg/syntax"
)

const (
	explicitParameterStorageTypeName  = "explicit-parameter-storage-type"
	explicitParameterStorageTypeTopic = "constants"
)

// ExplicitParameterStorageType requires value parameters to state a type.
var ExplicitParameterStorageType = lint.RuleDef{
	Name:        explicitParameterStorageTypeName,
	Topic:       explicitParameterStorageTypeTopic,
	Description: "Checks that every parameter and localparam is declared with an explicit storage type.",
	Severity:    lint.SeverityWarning,
	New:         newExplicitParameterStorageType,
	Rationale:   "An implicit parameter type is inferred from its value and may change width or signedness when overridden.",
	BadExample:  `localparam Width = 8;`,
	GoodExample: `localparam int Width = 8;`,
}

var paramDeclaration = matcher.Node(cst.ParamDeclaration)

type explicitParameterStorageTypeRule struct {
	violations lint.ViolationSet
}

func newExplicitParameterStorageType(map[string]any) (lint.Rule, error) {
	return &explicitParameterStorageTypeRule{}, nil
}

func (r *explicitParameterStorageTypeRule) HandleSymbol(sym syntax.Symbol, ctx *syntax.Context) error {
	m, ok := paramDeclaration.Matches(sym, ctx)
	if !ok {
		return nil
	}
	isType, err := cst.IsParamTypeDeclaration(m.Symbol)
	if err != nil || isType {
		return err
	}
	info, err := cst.GetParamTypeInfoSymbol(m.Symbol)
	if err != nil {
		return err
	}
	empty, err := cst.IsTypeInfoEmpty(info)
	if err != nil || !empty {
		return err
	}
	name, err := cst.GetParameterNameToken(m.Symbol)
	if err != nil {
		return err
	}
	r.violations.Add(lint.Violation{
		Token:   name,
		Message: fmt.Sprintf("Explicitly define a storage type for every parameter and localparam, (%s).", name.Text),
		Context: m.Context,
	})
	return nil
}

func (r *explicitParameterStorageTypeRule) Report() lint.Status {
	return lint.Status{
		RuleName:   explicitParameterStorageTypeName,
		Citation:   lint.Citation(explicitParameterStorageTypeTopic),
		Violations: r.violations.Items(),
	}
}
