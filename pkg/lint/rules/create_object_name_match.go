package rules

import (
	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/matcher"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

const (
	createObjectNameMatchName  = "create-object-name-match"
	createObjectNameMatchTopic = "naming"
)

// CreateObjectNameMatch checks the name argument of UVM factory calls.
var CreateObjectNameMatch = lint.RuleDef{
	Name:  createObjectNameMatchName,
	Topic: createObjectNameMatchTopic,
	Description: "Checks that the 'name' argument of type_id::create() matches " +
		"the name of the variable to which it is assigned.",
	Severity:    lint.SeverityWarning,
	New:         newCreateObjectNameMatch,
	Rationale:   "Component names that differ from their handles make hierarchy paths and logs hard to follow.",
	BadExample:  `env_h = env::type_id::create("env", this);`,
	GoodExample: `env_h = env::type_id::create("env_h", this);`,
}

// createAssignment matches "lhs = rhs;" and captures both sides.
var createAssignment = matcher.Node(cst.AssignmentStatement).
	Capture("lhs", matcher.Path{matcher.Child(0)}).
	Capture("rhs", matcher.Path{matcher.Child(2)})

type createObjectNameMatchRule struct {
	violations lint.ViolationSet
}

func newCreateObjectNameMatch(map[string]any) (lint.Rule, error) {
	return &createObjectNameMatchRule{}, nil
}

// isTypeIDCreate reports whether callee is exactly T::type_id::create.
func isTypeIDCreate(callee syntax.Symbol) bool {
	ref, ok := syntax.AsNode(callee)
	if !ok || ref.NodeTag() != cst.Reference || ref.NumChildren() != 1 {
		return false
	}
	ids := cst.GetQualifiedIDs(ref.Child(0))
	return len(ids) == 3 && ids[1].Token.Text == "type_id" && ids[2].Token.Text == "create"
}

func (r *createObjectNameMatchRule) HandleSymbol(sym syntax.Symbol, ctx *syntax.Context) error {
	m, ok := createAssignment.Matches(sym, ctx)
	if !ok {
		return nil
	}
	lhs, err := m.Capture("lhs")
	if err != nil {
		return err
	}
	// Only plain scalar handles are checked; selects and hierarchy opt out.
	id, ok := cst.GetSimpleReferenceID(lhs)
	if !ok {
		return nil
	}
	rhs, err := m.Capture("rhs")
	if err != nil {
		return err
	}
	if !syntax.IsNodeTag(rhs, cst.FunctionCall) {
		return nil
	}
	callee, err := cst.GetFunctionCallCallee(rhs)
	if err != nil {
		return err
	}
	if !isTypeIDCreate(callee) {
		return nil
	}
	args, err := cst.GetCallArguments(rhs)
	if err != nil || len(args) == 0 {
		return err
	}
	name, ok := syntax.AsLeaf(args[0])
	if !ok || name.Token.Kind != token.STRING {
		return nil
	}
	if cst.Unquote(name.Token.Text) == id.Token.Text {
		return nil
	}
	r.violations.Add(lint.Violation{
		Token: name.Token,
		Message: "The 'name' argument of type_id::create() must match the name of " +
			"the variable to which it is assigned: " + id.Token.Text,
		Context: m.Context,
	})
	return nil
}

func (r *createObjectNameMatchRule) Report() lint.Status {
	return lint.Status{
		RuleName:   createObjectNameMatchName,
		Citation:   lint.Citation(createObjectNameMatchTopic),
		Violations: r.violations.Items(),
	}
}
