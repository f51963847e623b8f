package syntax

// Action tells a traversal how to proceed after a callback.
type Action uint8

// Traversal actions.
const (
	// Continue descends into the current node's children.
	Continue Action = iota
	// SkipChildren leaves the current node's subtree unvisited.
	SkipChildren
	// Stop ends the whole traversal.
	Stop
)

// Visitor receives every non-nil symbol of a tree in pre-order. Links are
// delivered to VisitLeaf.
type Visitor interface {
	VisitLeaf(leaf *Leaf, ctx *Context) Action
	VisitNode(node *Node, ctx *Context) Action
}

// VisitorFuncs adapts optional closures to Visitor. A nil field continues.
type VisitorFuncs struct {
	Leaf func(*Leaf, *Context) Action
	Node func(*Node, *Context) Action
}

// VisitLeaf implements Visitor.
func (v VisitorFuncs) VisitLeaf(l *Leaf, ctx *Context) Action {
	if v.Leaf == nil {
		return Continue
	}
	return v.Leaf(l, ctx)
}

// VisitNode implements Visitor.
func (v VisitorFuncs) VisitNode(n *Node, ctx *Context) Action {
	if v.Node == nil {
		return Continue
	}
	return v.Node(n, ctx)
}

// Walk traverses root depth-first, left to right, skipping nil slots. It
// returns Stop if a callback stopped the traversal.
func Walk(root Symbol, v Visitor) Action {
	var ctx Context
	return walk(root, v, &ctx)
}

func walk(sym Symbol, v Visitor, ctx *Context) Action {
	if IsNil(sym) {
		return Continue
	}
	switch s := sym.(type) {
	case *Leaf:
		if v.VisitLeaf(s, ctx) == Stop {
			return Stop
		}
	case *Link:
		if v.VisitLeaf(&s.Leaf, ctx) == Stop {
			return Stop
		}
	case *Node:
		switch v.VisitNode(s, ctx) {
		case Stop:
			return Stop
		case SkipChildren:
			return Continue
		}
		ctx.push(s)
		defer ctx.pop()
		for _, child := range s.children {
			if walk(child, v, ctx) == Stop {
				return Stop
			}
		}
	}
	return Continue
}

// Inspect calls fn for every non-nil symbol in pre-order. If fn returns false
// the symbol's children are skipped.
func Inspect(root Symbol, fn func(sym Symbol, ctx *Context) bool) {
	var ctx Context
	inspect(root, fn, &ctx)
}

func inspect(sym Symbol, fn func(Symbol, *Context) bool, ctx *Context) {
	if IsNil(sym) {
		return
	}
	if !fn(sym, ctx) {
		return
	}
	n, ok := sym.(*Node)
	if !ok {
		return
	}
	ctx.push(n)
	for _, child := range n.children {
		inspect(child, fn, ctx)
	}
	ctx.pop()
}
