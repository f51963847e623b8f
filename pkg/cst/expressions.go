package cst

import (
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// GetSimpleReferenceID returns the identifier of a reference that is a bare
// name, with no qualification, hierarchy or selects. ok is false otherwise.
func GetSimpleReferenceID(sym syntax.Symbol) (*syntax.Leaf, bool) {
	n, ok := syntax.AsNode(sym)
	if !ok || n.NodeTag() != Reference || n.NumChildren() != 1 {
		return nil, false
	}
	l, ok := syntax.AsLeaf(n.Child(0))
	if !ok || l.Token.Kind != token.IDENT {
		return nil, false
	}
	return l, true
}

// GetReferenceLastID returns the last identifier named by a reference:
// "c" for a.b.c, "create" for pkg::type_id::create.
func GetReferenceLastID(ref syntax.Symbol) (*syntax.Leaf, error) {
	n, err := syntax.ExpectNode(ref, Reference)
	if err != nil {
		return nil, err
	}
	for i := n.NumChildren() - 1; i >= 0; i-- {
		child := n.Child(i)
		switch {
		case syntax.IsNodeTag(child, HierarchyExtension):
			return syntax.ChildLeaf(child.(*syntax.Node), 1)
		case syntax.IsNodeTag(child, QualifiedId):
			ids := GetQualifiedIDs(child)
			if len(ids) == 0 {
				return nil, syntax.Malformed("identifier", "empty qualified id", "")
			}
			return ids[len(ids)-1], nil
		case syntax.IsLeafKind(child, token.IDENT):
			l, _ := syntax.AsLeaf(child)
			return l, nil
		case syntax.IsNodeTag(child, Select):
			continue
		default:
			return nil, syntax.Malformed("identifier", syntax.Describe(child), "in reference")
		}
	}
	return nil, syntax.Malformed("identifier", "empty reference", "")
}

// GetQualifiedIDs returns the identifiers of a QualifiedId, separators
// dropped. A bare identifier leaf yields itself.
func GetQualifiedIDs(sym syntax.Symbol) []*syntax.Leaf {
	if l, ok := syntax.AsLeaf(sym); ok && l.Token.Kind == token.IDENT {
		return []*syntax.Leaf{l}
	}
	n, ok := syntax.AsNode(sym)
	if !ok || n.NodeTag() != QualifiedId {
		return nil
	}
	var ids []*syntax.Leaf
	for _, child := range n.Children() {
		if l, ok := syntax.AsLeaf(child); ok && l.Token.Kind == token.IDENT {
			ids = append(ids, l)
		}
	}
	return ids
}

// GetFunctionCallCallee returns the callee of a call: a Reference or a
// system task identifier leaf.
func GetFunctionCallCallee(call syntax.Symbol) (syntax.Symbol, error) {
	n, err := syntax.ExpectNode(call, FunctionCall)
	if err != nil {
		return nil, err
	}
	if n.Child(0) == nil {
		return nil, syntax.Malformed("callee", "<nil>", "")
	}
	return n.Child(0), nil
}

// GetCallArguments returns the argument expressions of a function or macro
// call, separators dropped.
func GetCallArguments(call syntax.Symbol) ([]syntax.Symbol, error) {
	n, ok := syntax.AsNode(call)
	if !ok || (n.NodeTag() != FunctionCall && n.NodeTag() != MacroCall) {
		return nil, syntax.Malformed("call", syntax.Describe(call), "")
	}
	if n.Child(1) == nil {
		return nil, nil
	}
	args, err := syntax.ChildNode(n, 1, ArgumentList)
	if err != nil {
		return nil, err
	}
	var out []syntax.Symbol
	children := args.Children()
	for i := 1; i < len(children)-1; i++ {
		if syntax.IsLeafKind(children[i], token.COMMA) {
			continue
		}
		out = append(out, children[i])
	}
	return out, nil
}

// GetVoidCastExpression returns the expression inside void'( ... ).
func GetVoidCastExpression(cast syntax.Symbol) (syntax.Symbol, error) {
	n, err := syntax.ExpectNode(cast, VoidCast)
	if err != nil {
		return nil, err
	}
	if n.Child(3) == nil {
		return nil, syntax.Malformed("expression", "<nil>", "in void cast")
	}
	return n.Child(3), nil
}

// Unparen strips any number of enclosing parenthesis groups.
func Unparen(sym syntax.Symbol) syntax.Symbol {
	for syntax.IsNodeTag(sym, ParenGroup) {
		sym = sym.(*syntax.Node).Child(1)
	}
	return sym
}
