package syntax

import (
	"fmt"

	"github.com/leapstack-labs/svkit/pkg/token"
)

// NodeTag identifies the grammar construct a Node represents. Values are
// assigned by the grammar package (see pkg/cst).
type NodeTag int32

// SymbolKind distinguishes leaves from interior nodes.
type SymbolKind uint8

// Symbol kinds.
const (
	KindLeaf SymbolKind = iota
	KindNode
)

func (k SymbolKind) String() string {
	if k == KindNode {
		return "node"
	}
	return "leaf"
}

// Tag is the (kind, value) pair that identifies any symbol. For leaves Value
// is the token kind; for nodes it is the NodeTag.
type Tag struct {
	Kind  SymbolKind
	Value int32
}

// LeafTag returns the tag of a leaf holding a token of kind k.
func LeafTag(k token.Kind) Tag {
	return Tag{Kind: KindLeaf, Value: int32(k)}
}

// NodeTagOf returns the tag of a node with tag t.
func NodeTagOf(t NodeTag) Tag {
	return Tag{Kind: KindNode, Value: int32(t)}
}

// Symbol is a tree element. The set of implementations is closed: *Leaf,
// *Node and *Link.
type Symbol interface {
	Tag() Tag
	symbol()
}

// UnitRef is a non-owning handle to a unit held in an external table. It is
// only meaningful while that table is alive.
type UnitRef int32

// NoUnit is the zero handle, referring to nothing.
const NoUnit UnitRef = -1

// Leaf is a symbol holding exactly one token.
type Leaf struct {
	Token token.Token
}

// NewLeaf returns a leaf holding tok.
func NewLeaf(tok token.Token) *Leaf {
	return &Leaf{Token: tok}
}

// Tag implements Symbol.
func (l *Leaf) Tag() Tag { return LeafTag(l.Token.Kind) }

func (*Leaf) symbol() {}

func (l *Leaf) String() string { return l.Token.String() }

// Link is a leaf that additionally references another unit. It is produced
// only by the propagation pass and is never traversed across: visitors see it
// as a leaf.
type Link struct {
	Leaf
	Target UnitRef
}

// NewLink returns a link carrying tok and pointing at target.
func NewLink(tok token.Token, target UnitRef) *Link {
	return &Link{Leaf: Leaf{Token: tok}, Target: target}
}

func (*Link) symbol() {}

func (l *Link) String() string {
	return fmt.Sprintf("%s -> unit %d", l.Token, l.Target)
}

// Node is an interior symbol: a tag and a fixed sequence of child slots.
type Node struct {
	tag      NodeTag
	children []Symbol
}

// NewNode builds a node from its children. The child count is fixed from
// here on; nil children are kept as placeholders.
func NewNode(tag NodeTag, children ...Symbol) *Node {
	return &Node{tag: tag, children: children}
}

// Tag implements Symbol.
func (n *Node) Tag() Tag { return NodeTagOf(n.tag) }

func (*Node) symbol() {}

// NodeTag returns the node's grammar tag.
func (n *Node) NodeTag() NodeTag { return n.tag }

// NumChildren returns the number of child slots, including nil ones.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the child in slot i, or nil when the slot is empty or out of
// range.
func (n *Node) Child(i int) Symbol {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the child slots. The slice must not be modified; use
// Rewrite to replace children.
func (n *Node) Children() []Symbol { return n.children }

// IsNil reports whether sym holds no symbol, including typed nil pointers.
func IsNil(sym Symbol) bool {
	switch s := sym.(type) {
	case nil:
		return true
	case *Leaf:
		return s == nil
	case *Node:
		return s == nil
	case *Link:
		return s == nil
	}
	return false
}

// AsLeaf returns the leaf held by sym. Links are leaves.
func AsLeaf(sym Symbol) (*Leaf, bool) {
	switch s := sym.(type) {
	case *Leaf:
		return s, s != nil
	case *Link:
		if s == nil {
			return nil, false
		}
		return &s.Leaf, true
	}
	return nil, false
}

// AsNode returns sym as a node.
func AsNode(sym Symbol) (*Node, bool) {
	n, ok := sym.(*Node)
	return n, ok && n != nil
}

// IsNodeTag reports whether sym is a node with tag t.
func IsNodeTag(sym Symbol, t NodeTag) bool {
	n, ok := AsNode(sym)
	return ok && n.tag == t
}

// IsLeafKind reports whether sym is a leaf (or link) holding a token of kind k.
func IsLeafKind(sym Symbol, k token.Kind) bool {
	l, ok := AsLeaf(sym)
	return ok && l.Token.Kind == k
}
