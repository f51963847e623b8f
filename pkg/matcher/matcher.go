// Package matcher finds symbols in a syntax tree by tag and exposes named
// captures reachable from each match by a fixed structural path.
//
//	m := matcher.Node(cst.ParamDeclaration).
//		Capture("type", matcher.Path{matcher.First(cst.ParamType)})
//	for _, match := range matcher.FindAll(m, tree) {
//		typ, err := match.CaptureNode("type")
//		...
//	}
package matcher

import (
	"fmt"

	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Step is one hop of a capture path.
type Step struct {
	index int
	tag   syntax.NodeTag
	leaf  token.Kind
	mode  stepMode
}

type stepMode uint8

const (
	stepChild stepMode = iota
	stepFirstNode
	stepFirstLeaf
)

// Child selects the child in slot i.
func Child(i int) Step { return Step{index: i, mode: stepChild} }

// First selects the first child that is a node with tag t.
func First(t syntax.NodeTag) Step { return Step{tag: t, mode: stepFirstNode} }

// FirstLeaf selects the first child that is a leaf of kind k.
func FirstLeaf(k token.Kind) Step { return Step{leaf: k, mode: stepFirstLeaf} }

func (s Step) String() string {
	switch s.mode {
	case stepFirstNode:
		return "first(" + s.tag.String() + ")"
	case stepFirstLeaf:
		return "first(" + s.leaf.String() + ")"
	}
	return fmt.Sprintf("[%d]", s.index)
}

// Path is a sequence of steps from a match root.
type Path []Step

// Resolve follows p from sym.
func (p Path) Resolve(sym syntax.Symbol) (syntax.Symbol, error) {
	cur := sym
	for _, step := range p {
		n, ok := syntax.AsNode(cur)
		if !ok {
			return nil, syntax.Malformed("node", syntax.Describe(cur), "at step %s", step)
		}
		next, err := step.apply(n)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if syntax.IsNil(cur) {
		return nil, syntax.Malformed("symbol", "<nil>", "at end of path %v", p)
	}
	return cur, nil
}

func (s Step) apply(n *syntax.Node) (syntax.Symbol, error) {
	switch s.mode {
	case stepChild:
		if s.index < 0 || s.index >= n.NumChildren() {
			return nil, syntax.Malformed("child slot", "out of range", "index %d of %s", s.index, n.NodeTag())
		}
		return n.Child(s.index), nil
	case stepFirstNode:
		for _, child := range n.Children() {
			if syntax.IsNodeTag(child, s.tag) {
				return child, nil
			}
		}
		return nil, syntax.Malformed("node "+s.tag.String(), "no such child", "under %s", n.NodeTag())
	case stepFirstLeaf:
		for _, child := range n.Children() {
			if syntax.IsLeafKind(child, s.leaf) {
				return child, nil
			}
		}
		return nil, syntax.Malformed("leaf "+s.leaf.String(), "no such child", "under %s", n.NodeTag())
	}
	return nil, fmt.Errorf("unknown step mode %d", s.mode)
}

type capture struct {
	name string
	path Path
}

// Matcher is a predicate over symbols plus capture definitions. Matchers are
// immutable; builder methods return modified copies.
type Matcher struct {
	tag      syntax.Tag
	where    []func(syntax.Symbol) bool
	captures []capture
}

// Node matches nodes with tag t.
func Node(t syntax.NodeTag) Matcher {
	return Matcher{tag: syntax.NodeTagOf(t)}
}

// Leaf matches leaves (including links) holding a token of kind k.
func Leaf(k token.Kind) Matcher {
	return Matcher{tag: syntax.LeafTag(k)}
}

// Where adds a predicate that must also hold.
func (m Matcher) Where(pred func(syntax.Symbol) bool) Matcher {
	m.where = append(m.where[:len(m.where):len(m.where)], pred)
	return m
}

// Capture names the symbol reached from the match root by path.
func (m Matcher) Capture(name string, path Path) Matcher {
	m.captures = append(m.captures[:len(m.captures):len(m.captures)], capture{name: name, path: path})
	return m
}

// Matches reports whether sym satisfies the matcher. ctx may be nil.
func (m Matcher) Matches(sym syntax.Symbol, ctx *syntax.Context) (Match, bool) {
	if syntax.IsNil(sym) || sym.Tag() != m.tag {
		return Match{}, false
	}
	for _, pred := range m.where {
		if !pred(sym) {
			return Match{}, false
		}
	}
	var snap syntax.Snapshot
	if ctx != nil {
		snap = ctx.Snapshot()
	}
	return Match{Context: snap, Symbol: sym, captures: m.captures}, true
}

// Match is one result of a search. Captures are resolved on demand.
type Match struct {
	Context  syntax.Snapshot
	Symbol   syntax.Symbol
	captures []capture
}

// Capture resolves the named capture.
func (m Match) Capture(name string) (syntax.Symbol, error) {
	for _, c := range m.captures {
		if c.name == name {
			sym, err := c.path.Resolve(m.Symbol)
			if err != nil {
				return nil, fmt.Errorf("capture %q: %w", name, err)
			}
			return sym, nil
		}
	}
	return nil, fmt.Errorf("unknown capture %q", name)
}

// CaptureLeaf resolves the named capture and requires a leaf.
func (m Match) CaptureLeaf(name string) (*syntax.Leaf, error) {
	sym, err := m.Capture(name)
	if err != nil {
		return nil, err
	}
	l, ok := syntax.AsLeaf(sym)
	if !ok {
		return nil, fmt.Errorf("capture %q: %w", name, syntax.Malformed("leaf", syntax.Describe(sym), ""))
	}
	return l, nil
}

// CaptureNode resolves the named capture and requires a node.
func (m Match) CaptureNode(name string) (*syntax.Node, error) {
	sym, err := m.Capture(name)
	if err != nil {
		return nil, err
	}
	n, ok := syntax.AsNode(sym)
	if !ok {
		return nil, fmt.Errorf("capture %q: %w", name, syntax.Malformed("node", syntax.Describe(sym), ""))
	}
	return n, nil
}

// Captures resolves every capture into a map.
func (m Match) Captures() (map[string]syntax.Symbol, error) {
	out := make(map[string]syntax.Symbol, len(m.captures))
	for _, c := range m.captures {
		sym, err := m.Capture(c.name)
		if err != nil {
			return nil, err
		}
		out[c.name] = sym
	}
	return out, nil
}
