package syntax

import "github.com/leapstack-labs/svkit/pkg/token"

// LeftmostLeaf returns the first leaf of sym in source order, or nil when the
// subtree holds no leaves.
func LeftmostLeaf(sym Symbol) *Leaf {
	if IsNil(sym) {
		return nil
	}
	if l, ok := AsLeaf(sym); ok {
		return l
	}
	n := sym.(*Node)
	for _, child := range n.children {
		if l := LeftmostLeaf(child); l != nil {
			return l
		}
	}
	return nil
}

// RightmostLeaf returns the last leaf of sym in source order.
func RightmostLeaf(sym Symbol) *Leaf {
	if IsNil(sym) {
		return nil
	}
	if l, ok := AsLeaf(sym); ok {
		return l
	}
	n := sym.(*Node)
	for i := len(n.children) - 1; i >= 0; i-- {
		if l := RightmostLeaf(n.children[i]); l != nil {
			return l
		}
	}
	return nil
}

// Span returns the source range covered by sym.
func Span(sym Symbol) (token.Span, bool) {
	first, last := LeftmostLeaf(sym), RightmostLeaf(sym)
	if first == nil {
		return token.Span{}, false
	}
	return token.Span{Start: first.Token.Pos, End: last.Token.Span().End}, true
}

// Text returns the slice of source covered by sym.
func Text(sym Symbol, source string) string {
	span, ok := Span(sym)
	if !ok || span.End.Offset > len(source) {
		return ""
	}
	return source[span.Start.Offset:span.End.Offset]
}

// Count returns the number of leaves and nodes in sym.
func Count(sym Symbol) (leaves, nodes int) {
	Inspect(sym, func(s Symbol, _ *Context) bool {
		if _, ok := s.(*Node); ok {
			nodes++
		} else {
			leaves++
		}
		return true
	})
	return leaves, nodes
}

// Clone returns a deep copy of sym. Token text is shared with the original
// source; links keep their targets.
func Clone(sym Symbol) Symbol {
	if IsNil(sym) {
		return nil
	}
	switch s := sym.(type) {
	case *Leaf:
		return &Leaf{Token: s.Token}
	case *Link:
		return &Link{Leaf: Leaf{Token: s.Token}, Target: s.Target}
	case *Node:
		children := make([]Symbol, len(s.children))
		for i, child := range s.children {
			children[i] = Clone(child)
		}
		return &Node{tag: s.tag, children: children}
	}
	return nil
}

// ExpectNode returns sym as a node with tag t.
func ExpectNode(sym Symbol, t NodeTag) (*Node, error) {
	n, ok := AsNode(sym)
	if !ok || n.tag != t {
		return nil, Malformed("node "+t.String(), Describe(sym), "")
	}
	return n, nil
}

// ExpectLeaf returns sym as a leaf holding a token of kind k.
func ExpectLeaf(sym Symbol, k token.Kind) (*Leaf, error) {
	l, ok := AsLeaf(sym)
	if !ok || l.Token.Kind != k {
		return nil, Malformed("leaf "+k.String(), Describe(sym), "")
	}
	return l, nil
}

// ChildNode returns child i of n, which must be a node with tag t.
func ChildNode(n *Node, i int, t NodeTag) (*Node, error) {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil, Malformed("node "+t.String(), "missing slot", "child %d of %s", i, Describe(n))
	}
	return ExpectNode(n.children[i], t)
}

// ChildLeaf returns child i of n as a leaf of any kind.
func ChildLeaf(n *Node, i int) (*Leaf, error) {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil, Malformed("leaf", "missing slot", "child %d of %s", i, Describe(n))
	}
	l, ok := AsLeaf(n.children[i])
	if !ok {
		return nil, Malformed("leaf", Describe(n.children[i]), "child %d of %s", i, n.tag)
	}
	return l, nil
}

// Descend follows child indices from sym. Each intermediate symbol must be a
// node with the requested slot present.
func Descend(sym Symbol, path ...int) (Symbol, error) {
	cur := sym
	for depth, i := range path {
		n, ok := AsNode(cur)
		if !ok {
			return nil, Malformed("node", Describe(cur), "at path depth %d", depth)
		}
		if i < 0 || i >= len(n.children) {
			return nil, Malformed("child slot", "out of range", "index %d of %s", i, n.tag)
		}
		cur = n.children[i]
	}
	return cur, nil
}
