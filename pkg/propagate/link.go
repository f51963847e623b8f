package propagate

import (
	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// linker replaces the string operand of every resolved include with a link
// to the included unit. Unresolved includes are left unchanged.
type linker struct {
	syntax.BaseRewriter
	resolved map[string]syntax.UnitRef
	links    int
}

func (l *linker) VisitLeaf(slot *syntax.Slot, leaf *syntax.Leaf, ctx *syntax.Context) error {
	if !ctx.DirectParentIs(cst.PreprocessorInclude) || slot.Index() != cst.IncludeFileSlot {
		return nil
	}
	if _, linked := slot.Get().(*syntax.Link); linked || leaf.Token.Kind != token.STRING {
		return nil
	}
	ref, ok := l.resolved[cst.IncludeName(leaf.Token)]
	if !ok {
		return nil
	}
	if err := slot.Replace(syntax.NewLink(leaf.Token, ref)); err != nil {
		return err
	}
	l.links++
	return nil
}

func linkIncludes(root *syntax.Symbol, resolved map[string]syntax.UnitRef) (int, error) {
	if len(resolved) == 0 {
		return 0, nil
	}
	l := &linker{resolved: resolved}
	_, err := syntax.Rewrite(root, l)
	return l.links, err
}
