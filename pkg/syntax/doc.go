// Package syntax provides the concrete syntax tree shared by the parser, the
// lint engine and the propagation pass.
//
// # Tree shape
//
// A tree is built from three symbol variants:
//
//	*Leaf  one token
//	*Node  a grammar tag plus a fixed, ordered list of child slots
//	*Link  a leaf that also carries a non-owning reference to another unit
//
// Child slots may be nil; a nil slot is a positional placeholder for an
// omitted optional construct, so child indices keep a fixed meaning per tag.
// Every symbol has exactly one owner (its parent's slot or the root holder)
// and trees are never shared between owners.
//
// # Traversal
//
// Walk and Inspect perform read-only pre-order traversals with an ancestor
// Context. Rewrite performs a mutating traversal in which every callback
// receives the Slot that owns the current symbol, so a visitor can replace the
// symbol in its parent without any back-pointers in the tree.
package syntax
