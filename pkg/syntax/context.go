package syntax

import "slices"

// Context is the stack of ancestor nodes of the symbol currently being
// visited, outermost first. It is only valid during the traversal that
// supplied it; use Snapshot to keep a copy.
type Context struct {
	stack []*Node
}

func (c *Context) push(n *Node) { c.stack = append(c.stack, n) }

func (c *Context) pop() { c.stack = c.stack[:len(c.stack)-1] }

// Len returns the number of ancestors.
func (c *Context) Len() int { return len(c.stack) }

// Top returns the closest ancestor, or nil at the root.
func (c *Context) Top() *Node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// At returns the i-th ancestor counted from the root.
func (c *Context) At(i int) *Node { return c.stack[i] }

// IsInside reports whether any ancestor has tag t.
func (c *Context) IsInside(t NodeTag) bool {
	for _, n := range c.stack {
		if n.tag == t {
			return true
		}
	}
	return false
}

// IsInsideFirst reports whether the closest ancestor with any of the given
// tags has tag t. It answers questions such as "is the nearest enclosing
// scope a class rather than a module".
func (c *Context) IsInsideFirst(t NodeTag, stops ...NodeTag) bool {
	for i := len(c.stack) - 1; i >= 0; i-- {
		tag := c.stack[i].tag
		if tag == t {
			return true
		}
		if slices.Contains(stops, tag) {
			return false
		}
	}
	return false
}

// DirectParentIs reports whether the closest ancestor has tag t.
func (c *Context) DirectParentIs(t NodeTag) bool {
	top := c.Top()
	return top != nil && top.tag == t
}

// DirectParentsAre reports whether the closest ancestors, innermost first,
// have exactly the given tags.
func (c *Context) DirectParentsAre(tags ...NodeTag) bool {
	if len(tags) > len(c.stack) {
		return false
	}
	for i, t := range tags {
		if c.stack[len(c.stack)-1-i].tag != t {
			return false
		}
	}
	return true
}

// Snapshot copies the ancestor tags so they outlive the traversal.
func (c *Context) Snapshot() Snapshot {
	s := make(Snapshot, len(c.stack))
	for i, n := range c.stack {
		s[i] = n.tag
	}
	return s
}

// Snapshot is an immutable copy of a Context's ancestor tags, outermost first.
type Snapshot []NodeTag

// IsInside reports whether any recorded ancestor has tag t.
func (s Snapshot) IsInside(t NodeTag) bool {
	return slices.Contains(s, t)
}

// Parent returns the innermost recorded ancestor tag.
func (s Snapshot) Parent() (NodeTag, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}
