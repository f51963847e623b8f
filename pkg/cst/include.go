package cst

import (
	"strings"

	"github.com/leapstack-labs/svkit/pkg/matcher"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// IncludeFileSlot is the child slot of the file operand in PreprocessorInclude.
const IncludeFileSlot = 1

// FindAllIncludes returns every `include directive under root.
func FindAllIncludes(root syntax.Symbol) []matcher.Match {
	return matcher.FindAll(matcher.Node(PreprocessorInclude), root)
}

// GetIncludeFileToken returns the string literal operand of an include.
// After propagation the operand is a link; it is still returned as a leaf.
func GetIncludeFileToken(include syntax.Symbol) (*syntax.Leaf, error) {
	n, err := syntax.ExpectNode(include, PreprocessorInclude)
	if err != nil {
		return nil, err
	}
	l, err := syntax.ChildLeaf(n, IncludeFileSlot)
	if err != nil {
		return nil, err
	}
	if l.Token.Kind != token.STRING {
		return nil, syntax.Malformed("leaf "+token.STRING.String(), syntax.Describe(l), "include operand")
	}
	return l, nil
}

// IncludeName returns the referenced name of an include string literal with
// the surrounding double quotes removed.
func IncludeName(tok token.Token) string {
	return Unquote(tok.Text)
}

// Unquote strips one pair of surrounding double quotes. Escapes are kept.
func Unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
