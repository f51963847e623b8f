package syntax

import "fmt"

// Slot is the owning position of a symbol: either a child index of a parent
// node or the root holder of a tree. Replacing through a slot is the only way
// to change a tree's shape.
type Slot struct {
	parent *Node
	index  int
	root   *Symbol
	pass   *rewritePass
}

// RootSlot returns a slot for the tree held in *root, usable outside a
// rewrite pass.
func RootSlot(root *Symbol) *Slot {
	return &Slot{root: root, index: -1}
}

// ChildSlot returns a slot for child i of parent, usable outside a rewrite
// pass.
func ChildSlot(parent *Node, i int) (*Slot, error) {
	if parent == nil || i < 0 || i >= len(parent.children) {
		return nil, Malformed("child slot", "out of range", "index %d", i)
	}
	return &Slot{parent: parent, index: i}, nil
}

// Get returns the symbol currently held by the slot.
func (s *Slot) Get() Symbol {
	if s.parent == nil {
		return *s.root
	}
	return s.parent.children[s.index]
}

// Parent returns the owning node, or nil for the root slot.
func (s *Slot) Parent() *Node { return s.parent }

// Index returns the child index within the parent, or -1 for the root slot.
func (s *Slot) Index() int { return s.index }

// Replace puts sym into the slot. The previous content is dropped. Within a
// rewrite pass a slot may be replaced at most once.
func (s *Slot) Replace(sym Symbol) error {
	if s.pass != nil {
		key := slotKey{parent: s.parent, index: s.index}
		if s.pass.replaced[key] {
			return fmt.Errorf("%w: %s", ErrSlotReplaced, s.describe())
		}
		s.pass.replaced[key] = true
		s.pass.stats.Replaced++
	}
	if s.parent == nil {
		*s.root = sym
		return nil
	}
	if s.index < 0 || s.index >= len(s.parent.children) {
		return Malformed("child slot", "out of range", "index %d of %s", s.index, s.parent.tag)
	}
	s.parent.children[s.index] = sym
	return nil
}

func (s *Slot) describe() string {
	if s.parent == nil {
		return "root"
	}
	return fmt.Sprintf("%s[%d]", s.parent.tag, s.index)
}

// Rewriter receives every non-nil symbol together with its owning slot.
//
// EnterNode runs before a node's children and may replace the node; the
// traversal then descends into whatever the slot holds. LeaveNode runs after
// the children of the node that was descended and is where bottom-up
// replacements belong.
type Rewriter interface {
	EnterNode(slot *Slot, node *Node, ctx *Context) (Action, error)
	LeaveNode(slot *Slot, node *Node, ctx *Context) error
	VisitLeaf(slot *Slot, leaf *Leaf, ctx *Context) error
}

// BaseRewriter implements Rewriter with no-ops; embed it and override what is
// needed.
type BaseRewriter struct{}

// EnterNode implements Rewriter.
func (BaseRewriter) EnterNode(*Slot, *Node, *Context) (Action, error) { return Continue, nil }

// LeaveNode implements Rewriter.
func (BaseRewriter) LeaveNode(*Slot, *Node, *Context) error { return nil }

// VisitLeaf implements Rewriter.
func (BaseRewriter) VisitLeaf(*Slot, *Leaf, *Context) error { return nil }

// RewriteStats summarizes a rewrite pass.
type RewriteStats struct {
	Visited  int
	Replaced int
}

type slotKey struct {
	parent *Node
	index  int
}

type rewritePass struct {
	r        Rewriter
	ctx      Context
	replaced map[slotKey]bool
	stats    RewriteStats
	stopped  bool
}

// Rewrite runs r over the tree held in *root. The first error returned by a
// callback aborts the pass.
func Rewrite(root *Symbol, r Rewriter) (RewriteStats, error) {
	p := &rewritePass{r: r, replaced: make(map[slotKey]bool)}
	err := p.visit(&Slot{root: root, index: -1, pass: p})
	return p.stats, err
}

func (p *rewritePass) visit(slot *Slot) error {
	sym := slot.Get()
	if IsNil(sym) {
		return nil
	}
	p.stats.Visited++
	switch s := sym.(type) {
	case *Leaf:
		return p.r.VisitLeaf(slot, s, &p.ctx)
	case *Link:
		return p.r.VisitLeaf(slot, &s.Leaf, &p.ctx)
	case *Node:
		act, err := p.r.EnterNode(slot, s, &p.ctx)
		if err != nil {
			return err
		}
		if act == Stop {
			p.stopped = true
			return nil
		}
		if act == SkipChildren {
			return nil
		}
		cur, ok := slot.Get().(*Node)
		if !ok || cur == nil {
			return nil
		}
		p.ctx.push(cur)
		for i := range cur.children {
			if err := p.visit(&Slot{parent: cur, index: i, pass: p}); err != nil {
				p.ctx.pop()
				return err
			}
			if p.stopped {
				p.ctx.pop()
				return nil
			}
		}
		p.ctx.pop()
		return p.r.LeaveNode(slot, cur, &p.ctx)
	}
	return nil
}
