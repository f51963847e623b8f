package matcher

import "github.com/leapstack-labs/svkit/pkg/syntax"

// FindAll returns every symbol under root (root included) that satisfies m,
// in pre-order. Matches may nest.
func FindAll(m Matcher, root syntax.Symbol) []Match {
	var out []Match
	syntax.Inspect(root, func(sym syntax.Symbol, ctx *syntax.Context) bool {
		if match, ok := m.Matches(sym, ctx); ok {
			out = append(out, match)
		}
		return true
	})
	return out
}

// FindFirst returns the first match in pre-order.
func FindFirst(m Matcher, root syntax.Symbol) (Match, bool) {
	var found Match
	ok := false
	syntax.Walk(root, syntax.VisitorFuncs{
		Leaf: func(l *syntax.Leaf, ctx *syntax.Context) syntax.Action {
			return firstAction(m, l, ctx, &found, &ok)
		},
		Node: func(n *syntax.Node, ctx *syntax.Context) syntax.Action {
			return firstAction(m, n, ctx, &found, &ok)
		},
	})
	return found, ok
}

func firstAction(m Matcher, sym syntax.Symbol, ctx *syntax.Context, found *Match, ok *bool) syntax.Action {
	if match, hit := m.Matches(sym, ctx); hit {
		*found, *ok = match, true
		return syntax.Stop
	}
	return syntax.Continue
}

// Search returns every symbol under root for which pred holds, in pre-order.
func Search(root syntax.Symbol, pred func(sym syntax.Symbol, ctx *syntax.Context) bool) []Match {
	var out []Match
	syntax.Inspect(root, func(sym syntax.Symbol, ctx *syntax.Context) bool {
		if pred(sym, ctx) {
			out = append(out, Match{Context: ctx.Snapshot(), Symbol: sym})
		}
		return true
	})
	return out
}
