package cst

import (
	"github.com/leapstack-labs/svkit/pkg/matcher"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// FindAllFunctionDeclarations returns every function declaration under root.
func FindAllFunctionDeclarations(root syntax.Symbol) []matcher.Match {
	return matcher.FindAll(matcher.Node(FunctionDeclaration), root)
}

// GetFunctionHeader returns the header of a function declaration.
func GetFunctionHeader(decl syntax.Symbol) (*syntax.Node, error) {
	n, err := syntax.ExpectNode(decl, FunctionDeclaration)
	if err != nil {
		return nil, err
	}
	return syntax.ChildNode(n, 0, FunctionHeader)
}

// GetFunctionLifetime returns the lifetime keyword leaf (automatic or
// static), or nil when the function has none.
func GetFunctionLifetime(decl syntax.Symbol) (*syntax.Leaf, error) {
	header, err := GetFunctionHeader(decl)
	if err != nil {
		return nil, err
	}
	if header.Child(2) == nil {
		return nil, nil
	}
	return syntax.ChildLeaf(header, 2)
}

// GetFunctionID returns the function name leaf.
func GetFunctionID(decl syntax.Symbol) (*syntax.Leaf, error) {
	header, err := GetFunctionHeader(decl)
	if err != nil {
		return nil, err
	}
	id, err := syntax.ChildLeaf(header, 4)
	if err != nil {
		return nil, err
	}
	if id.Token.Kind != token.IDENT {
		return nil, syntax.Malformed("identifier", syntax.Describe(id), "function name")
	}
	return id, nil
}

// GetFunctionBody returns the statement list of a function declaration.
func GetFunctionBody(decl syntax.Symbol) (*syntax.Node, error) {
	n, err := syntax.ExpectNode(decl, FunctionDeclaration)
	if err != nil {
		return nil, err
	}
	return syntax.ChildNode(n, 1, StatementList)
}
