package cst

import (
	"github.com/leapstack-labs/svkit/pkg/matcher"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// FindAllPackageDeclarations returns every package declaration under root.
func FindAllPackageDeclarations(root syntax.Symbol) []matcher.Match {
	return matcher.FindAll(matcher.Node(PackageDeclaration), root)
}

// GetPackageNameToken returns the name of a package declaration.
func GetPackageNameToken(decl syntax.Symbol) (token.Token, error) {
	n, err := syntax.ExpectNode(decl, PackageDeclaration)
	if err != nil {
		return token.Token{}, err
	}
	id, err := syntax.ChildLeaf(n, 1)
	if err != nil {
		return token.Token{}, err
	}
	return id.Token, nil
}

// FindAllModuleDeclarations returns every module declaration under root.
func FindAllModuleDeclarations(root syntax.Symbol) []matcher.Match {
	return matcher.FindAll(matcher.Node(ModuleDeclaration), root)
}

// GetModuleNameToken returns the name of a module declaration.
func GetModuleNameToken(decl syntax.Symbol) (token.Token, error) {
	n, err := syntax.ExpectNode(decl, ModuleDeclaration)
	if err != nil {
		return token.Token{}, err
	}
	header, err := syntax.ChildNode(n, 0, ModuleHeader)
	if err != nil {
		return token.Token{}, err
	}
	id, err := syntax.ChildLeaf(header, 1)
	if err != nil {
		return token.Token{}, err
	}
	return id.Token, nil
}

// FindAllClassDeclarations returns every class declaration under root.
func FindAllClassDeclarations(root syntax.Symbol) []matcher.Match {
	return matcher.FindAll(matcher.Node(ClassDeclaration), root)
}

// GetClassNameToken returns the name of a class declaration.
func GetClassNameToken(decl syntax.Symbol) (token.Token, error) {
	n, err := syntax.ExpectNode(decl, ClassDeclaration)
	if err != nil {
		return token.Token{}, err
	}
	header, err := syntax.ChildNode(n, 0, ClassHeader)
	if err != nil {
		return token.Token{}, err
	}
	id, err := syntax.ChildLeaf(header, 2)
	if err != nil {
		return token.Token{}, err
	}
	return id.Token, nil
}
