package cst

import (
	"github.com/leapstack-labs/svkit/pkg/matcher"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Child slots of ParamDeclaration.
const (
	paramKeywordSlot = 0
	paramTypeSlot    = 1 // ParamType, or the 'type' keyword
	paramAssignSlot  = 2 // TrailingAssign, or TypeAssignment
)

// FindAllParamDeclarations returns every parameter declaration under root,
// including those in parameter port lists.
func FindAllParamDeclarations(root syntax.Symbol) []matcher.Match {
	return matcher.FindAll(matcher.Node(ParamDeclaration), root)
}

// GetParamKeyword returns PARAMETER or LOCALPARAM. A port-list parameter
// without keyword is a parameter.
func GetParamKeyword(decl syntax.Symbol) (token.Kind, error) {
	n, err := syntax.ExpectNode(decl, ParamDeclaration)
	if err != nil {
		return token.ILLEGAL, err
	}
	kw := n.Child(paramKeywordSlot)
	if kw == nil {
		return token.PARAMETER, nil
	}
	l, ok := syntax.AsLeaf(kw)
	if !ok || (l.Token.Kind != token.PARAMETER && l.Token.Kind != token.LOCALPARAM) {
		return token.ILLEGAL, syntax.Malformed("parameter keyword", syntax.Describe(kw), "")
	}
	return l.Token.Kind, nil
}

// IsParamTypeDeclaration reports whether decl declares a type parameter
// (parameter type T = ...).
func IsParamTypeDeclaration(decl syntax.Symbol) (bool, error) {
	n, err := syntax.ExpectNode(decl, ParamDeclaration)
	if err != nil {
		return false, err
	}
	return syntax.IsLeafKind(n.Child(paramTypeSlot), token.TYPE), nil
}

// GetParamTypeSymbol returns the ParamType node of a value parameter.
func GetParamTypeSymbol(decl syntax.Symbol) (*syntax.Node, error) {
	n, err := syntax.ExpectNode(decl, ParamDeclaration)
	if err != nil {
		return nil, err
	}
	return syntax.ChildNode(n, paramTypeSlot, ParamType)
}

// GetParamTypeInfoSymbol returns the TypeInfo node of a value parameter.
func GetParamTypeInfoSymbol(decl syntax.Symbol) (*syntax.Node, error) {
	pt, err := GetParamTypeSymbol(decl)
	if err != nil {
		return nil, err
	}
	return syntax.ChildNode(pt, 0, TypeInfo)
}

// IsTypeInfoEmpty reports whether a TypeInfo node carries no type, signing or
// dimensions, as in "parameter Bar = 1".
func IsTypeInfoEmpty(info syntax.Symbol) (bool, error) {
	n, err := syntax.ExpectNode(info, TypeInfo)
	if err != nil {
		return false, err
	}
	for _, child := range n.Children() {
		if child != nil {
			return false, nil
		}
	}
	return true, nil
}

// GetParameterNameToken returns the declared name of a value parameter.
func GetParameterNameToken(decl syntax.Symbol) (token.Token, error) {
	pt, err := GetParamTypeSymbol(decl)
	if err != nil {
		return token.Token{}, err
	}
	id, err := syntax.ChildLeaf(pt, 1)
	if err != nil {
		return token.Token{}, err
	}
	return id.Token, nil
}

// GetTypeAssignmentFromParamDeclaration returns the TypeAssignment of a type
// parameter.
func GetTypeAssignmentFromParamDeclaration(decl syntax.Symbol) (*syntax.Node, error) {
	n, err := syntax.ExpectNode(decl, ParamDeclaration)
	if err != nil {
		return nil, err
	}
	return syntax.ChildNode(n, paramAssignSlot, TypeAssignment)
}

// GetIdentifierLeafFromTypeAssignment returns the declared name of a type
// assignment.
func GetIdentifierLeafFromTypeAssignment(assign syntax.Symbol) (*syntax.Leaf, error) {
	n, err := syntax.ExpectNode(assign, TypeAssignment)
	if err != nil {
		return nil, err
	}
	l, err := syntax.ChildLeaf(n, 0)
	if err != nil {
		return nil, err
	}
	if l.Token.Kind != token.IDENT {
		return nil, syntax.Malformed("identifier", syntax.Describe(l), "")
	}
	return l, nil
}

// GetSymbolIdentifierFromParamDeclaration returns the declared name of any
// parameter, value or type.
func GetSymbolIdentifierFromParamDeclaration(decl syntax.Symbol) (token.Token, error) {
	isType, err := IsParamTypeDeclaration(decl)
	if err != nil {
		return token.Token{}, err
	}
	if !isType {
		return GetParameterNameToken(decl)
	}
	assign, err := GetTypeAssignmentFromParamDeclaration(decl)
	if err != nil {
		return token.Token{}, err
	}
	id, err := GetIdentifierLeafFromTypeAssignment(assign)
	if err != nil {
		return token.Token{}, err
	}
	return id.Token, nil
}

// GetParamAssignExpression returns the default value expression of a value
// parameter, or nil when there is none.
func GetParamAssignExpression(decl syntax.Symbol) (syntax.Symbol, error) {
	n, err := syntax.ExpectNode(decl, ParamDeclaration)
	if err != nil {
		return nil, err
	}
	trailing := n.Child(paramAssignSlot)
	if trailing == nil {
		return nil, nil
	}
	t, err := syntax.ExpectNode(trailing, TrailingAssign)
	if err != nil {
		return nil, err
	}
	return t.Child(1), nil
}
