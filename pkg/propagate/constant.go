package propagate

import (
	"strconv"

	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// ConstantFolder folds integer expressions: literals combined by unary,
// binary, parenthesized and conditional expressions, and references to
// value parameters that cannot be overridden. Those are localparams, and
// parameters declared in a package or at compilation unit scope, of the
// unit or of any unit it includes, directly or transitively. A reference
// resolves from its own module, package or class outward, so a module
// parameter shadows outer declarations without being folded. Folded
// expressions become decimal literals positioned at the expression's first
// token.
type ConstantFolder struct{}

// Name implements Folder.
func (ConstantFolder) Name() string { return "constant" }

// Fold implements Folder.
func (ConstantFolder) Fold(root *syntax.Symbol, scope Scope) (syntax.RewriteStats, error) {
	return syntax.Rewrite(root, &constantRewriter{params: newParamResolver(scope)})
}

type constantRewriter struct {
	syntax.BaseRewriter
	params *paramResolver
}

func (f *constantRewriter) LeaveNode(slot *syntax.Slot, node *syntax.Node, ctx *syntax.Context) error {
	switch node.NodeTag() {
	case cst.Reference:
		if !inExpression(slot) {
			return nil
		}
	case cst.ConditionExpression, cst.BinaryExpression, cst.UnaryExpression, cst.ParenGroup:
	default:
		return nil
	}
	scope, err := scopeOf(ctx)
	if err != nil {
		return err
	}
	ev := f.params.evaluator(scope)

	if node.NodeTag() == cst.ConditionExpression {
		if c, ok := ev.eval(node.Child(0)); ok {
			branch := node.Child(4)
			if c != 0 {
				branch = node.Child(2)
			}
			if syntax.IsNil(branch) {
				return nil
			}
			return slot.Replace(branch)
		}
		return f.params.err
	}
	v, ok := ev.eval(node)
	if f.params.err != nil {
		return f.params.err
	}
	if !ok {
		return nil
	}
	return slot.Replace(literal(v, node))
}

// inExpression reports whether a reference in slot is read as a value, as
// opposed to assigned, called or passed where it may be written.
func inExpression(slot *syntax.Slot) bool {
	parent := slot.Parent()
	if parent == nil {
		return false
	}
	switch parent.NodeTag() {
	case cst.BinaryExpression, cst.ParenGroup, cst.ConditionExpression, cst.TrailingAssign,
		cst.Dimension, cst.Select, cst.ReturnStatement, cst.Concatenation:
		return true
	case cst.UnaryExpression:
		op, ok := syntax.AsLeaf(parent.Child(0))
		return ok && op.Token.Kind != token.INC && op.Token.Kind != token.DEC
	case cst.AssignmentStatement, cst.AssignmentExpression:
		return slot.Index() == 2
	case cst.ContinuousAssign, cst.ForInitialization:
		return slot.Index() == 3
	case cst.IfStatement:
		return slot.Index() == 2
	}
	return false
}

func literal(v int64, at syntax.Symbol) *syntax.Leaf {
	var pos token.Position
	if first := syntax.LeftmostLeaf(at); first != nil {
		pos = first.Token.Pos
	}
	return syntax.NewLeaf(token.Token{Kind: token.NUMBER, Text: strconv.FormatInt(v, 10), Pos: pos})
}

// evaluator computes the integer value of an expression without changing it.
type evaluator struct {
	lookup func(name string) (int64, bool)
}

func (e evaluator) eval(sym syntax.Symbol) (int64, bool) {
	switch s := sym.(type) {
	case *syntax.Leaf:
		if s == nil || s.Token.Kind != token.NUMBER {
			return 0, false
		}
		return ParseInteger(s.Token.Text)
	case *syntax.Node:
		if s == nil {
			return 0, false
		}
		return e.evalNode(s)
	}
	return 0, false
}

func (e evaluator) evalNode(n *syntax.Node) (int64, bool) {
	switch n.NodeTag() {
	case cst.ParenGroup:
		return e.eval(n.Child(1))
	case cst.UnaryExpression:
		op, ok := syntax.AsLeaf(n.Child(0))
		if !ok {
			return 0, false
		}
		x, ok := e.eval(n.Child(1))
		if !ok {
			return 0, false
		}
		return unary(op.Token.Kind, x)
	case cst.BinaryExpression:
		op, ok := syntax.AsLeaf(n.Child(1))
		if !ok {
			return 0, false
		}
		l, ok := e.eval(n.Child(0))
		if !ok {
			return 0, false
		}
		r, ok := e.eval(n.Child(2))
		if !ok {
			return 0, false
		}
		return binary(op.Token.Kind, l, r)
	case cst.ConditionExpression:
		c, ok := e.eval(n.Child(0))
		if !ok {
			return 0, false
		}
		if c != 0 {
			return e.eval(n.Child(2))
		}
		return e.eval(n.Child(4))
	case cst.Reference:
		id, ok := cst.GetSimpleReferenceID(n)
		if !ok || e.lookup == nil {
			return 0, false
		}
		return e.lookup(id.Token.Text)
	}
	return 0, false
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func unary(op token.Kind, x int64) (int64, bool) {
	switch op {
	case token.PLUS:
		return x, true
	case token.MINUS:
		return -x, true
	case token.TILDE:
		return ^x, true
	case token.BANG:
		return boolValue(x == 0), true
	}
	return 0, false
}

func binary(op token.Kind, l, r int64) (int64, bool) {
	switch op {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case token.PERCENT:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case token.SHL:
		if r < 0 || r > 63 {
			return 0, false
		}
		return l << r, true
	case token.SHR:
		if r < 0 || r > 63 {
			return 0, false
		}
		return int64(uint64(l) >> r), true
	case token.AMP:
		return l & r, true
	case token.PIPE:
		return l | r, true
	case token.CARET:
		return l ^ r, true
	case token.EQEQ:
		return boolValue(l == r), true
	case token.NE:
		return boolValue(l != r), true
	case token.LT:
		return boolValue(l < r), true
	case token.GT:
		return boolValue(l > r), true
	case token.LE:
		return boolValue(l <= r), true
	case token.GE:
		return boolValue(l >= r), true
	case token.ANDAND:
		return boolValue(l != 0 && r != 0), true
	case token.OROR:
		return boolValue(l != 0 || r != 0), true
	}
	return 0, false
}
