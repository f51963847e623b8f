package rules

import (
	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/matcher"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

const (
	voidCastName  = "void-cast"
	voidCastTopic = "void-casts"
)

// VoidCast forbids some calls inside void'( ... ).
var VoidCast = lint.RuleDef{
	Name:        voidCastName,
	Topic:       voidCastTopic,
	Description: "Checks that void casts do not contain certain function/method calls.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"forbidden_functions"},
	New:         newVoidCast,
	Rationale:   "Discarding the result of randomize() or of a backdoor read hides failures.",
	BadExample:  `void'(obj.randomize());`,
	GoodExample: `if (!obj.randomize()) $error("randomize failed");`,
}

var defaultForbiddenFunctions = []string{"uvm_hdl_read"}

var voidCastCall = matcher.Node(cst.VoidCast).
	Capture("expr", matcher.Path{matcher.Child(3)})

type voidCastRule struct {
	forbidden  map[string]bool
	violations lint.ViolationSet
}

func newVoidCast(opts map[string]any) (lint.Rule, error) {
	r := &voidCastRule{forbidden: make(map[string]bool)}
	for _, name := range lint.GetStringSliceOption(opts, "forbidden_functions", defaultForbiddenFunctions) {
		r.forbidden[name] = true
	}
	return r, nil
}

func (r *voidCastRule) HandleSymbol(sym syntax.Symbol, ctx *syntax.Context) error {
	m, ok := voidCastCall.Matches(sym, ctx)
	if !ok {
		return nil
	}
	expr, err := m.Capture("expr")
	if err != nil {
		return err
	}
	call := cst.Unparen(expr)
	if !syntax.IsNodeTag(call, cst.FunctionCall) {
		return nil
	}
	callee, err := cst.GetFunctionCallCallee(call)
	if err != nil {
		return err
	}

	// Plain function calls and system tasks are checked against the
	// forbidden list.
	if id, ok := cst.GetSimpleReferenceID(callee); ok {
		r.checkForbidden(id, m.Context)
	} else if id, ok := syntax.AsLeaf(callee); ok && id.Token.Kind == token.SYSTEM_IDENT {
		r.checkForbidden(id, m.Context)
	}

	// randomize() and obj.randomize() are forbidden regardless of options.
	if syntax.IsNodeTag(callee, cst.Reference) {
		last, err := cst.GetReferenceLastID(callee)
		if err != nil {
			return err
		}
		if first := syntax.LeftmostLeaf(call); first != nil && last.Token.Text == "randomize" {
			r.violations.Add(lint.Violation{
				Token:   first.Token,
				Message: "randomize() is forbidden within void casts",
				Context: m.Context,
			})
		}
	}
	return nil
}

func (r *voidCastRule) checkForbidden(id *syntax.Leaf, ctx syntax.Snapshot) {
	if !r.forbidden[id.Token.Text] {
		return
	}
	r.violations.Add(lint.Violation{
		Token:   id.Token,
		Message: id.Token.Text + " is an invalid call within this void cast",
		Context: ctx,
	})
}

func (r *voidCastRule) Report() lint.Status {
	return lint.Status{
		RuleName:   voidCastName,
		Citation:   lint.Citation(voidCastTopic),
		Violations: r.violations.Items(),
	}
}
