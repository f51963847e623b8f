package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svkit/pkg/token"
)

type leafReplacer struct {
	BaseRewriter
	kind token.Kind
}

func (r leafReplacer) VisitLeaf(slot *Slot, l *Leaf, _ *Context) error {
	if l.Token.Kind != r.kind {
		return nil
	}
	return slot.Replace(NewLink(l.Token, 7))
}

func TestRewrite_ReplacesLeafInOwningSlot(t *testing.T) {
	var root Symbol = sampleTree()
	stats, err := Rewrite(&root, leafReplacer{kind: token.IDENT})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Replaced)

	pair := root.(*Node).Child(0).(*Node)
	link, ok := pair.Child(0).(*Link)
	require.True(t, ok)
	assert.Equal(t, UnitRef(7), link.Target)
	assert.Equal(t, "a", link.Token.Text)
	assert.Nil(t, pair.Child(1))
	assert.Equal(t, 3, pair.NumChildren())
}

// collapser replaces every Pair with its leftmost leaf, bottom-up.
type collapser struct {
	BaseRewriter
	left []string
}

func (c *collapser) LeaveNode(slot *Slot, n *Node, _ *Context) error {
	if n.NodeTag() != tagPair {
		return nil
	}
	c.left = append(c.left, LeftmostLeaf(n).Token.Text)
	return slot.Replace(LeftmostLeaf(n))
}

func TestRewrite_BottomUpReplacement(t *testing.T) {
	var root Symbol = NewNode(tagList, NewNode(tagPair, NewNode(tagPair, leaf(token.IDENT, "x", 0), nil), leaf(token.IDENT, "y", 2)))
	c := &collapser{}
	_, err := Rewrite(&root, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x"}, c.left)
	l, ok := root.(*Node).Child(0).(*Leaf)
	require.True(t, ok)
	assert.Equal(t, "x", l.Token.Text)
}

type rootReplacer struct{ BaseRewriter }

func (rootReplacer) EnterNode(slot *Slot, n *Node, _ *Context) (Action, error) {
	if slot.Parent() != nil {
		return Continue, nil
	}
	return Continue, slot.Replace(NewNode(tagExpr, leaf(token.NUMBER, "1", 0)))
}

func TestRewrite_DescendsIntoCurrentContent(t *testing.T) {
	var root Symbol = sampleTree()
	var visited []string
	r := &recordingRewriter{rootReplacer: rootReplacer{}, seen: &visited}
	_, err := Rewrite(&root, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, visited)
	assert.Equal(t, tagExpr, root.(*Node).NodeTag())
}

type recordingRewriter struct {
	rootReplacer
	seen *[]string
}

func (r *recordingRewriter) VisitLeaf(_ *Slot, l *Leaf, _ *Context) error {
	*r.seen = append(*r.seen, l.Token.Text)
	return nil
}

type doubleReplacer struct{ BaseRewriter }

func (doubleReplacer) EnterNode(slot *Slot, n *Node, _ *Context) (Action, error) {
	if n.NodeTag() != tagPair {
		return Continue, nil
	}
	return Continue, slot.Replace(NewNode(tagPair, nil))
}

func (doubleReplacer) LeaveNode(slot *Slot, n *Node, _ *Context) error {
	if n.NodeTag() != tagPair {
		return nil
	}
	return slot.Replace(nil)
}

func TestRewrite_SecondReplacementFails(t *testing.T) {
	var root Symbol = sampleTree()
	_, err := Rewrite(&root, doubleReplacer{})
	assert.True(t, errors.Is(err, ErrSlotReplaced))
}

type failing struct{ BaseRewriter }

func (failing) VisitLeaf(*Slot, *Leaf, *Context) error { return errors.New("boom") }

func TestRewrite_PropagatesErrors(t *testing.T) {
	var root Symbol = sampleTree()
	_, err := Rewrite(&root, failing{})
	assert.EqualError(t, err, "boom")
}

func TestSlot_OutsidePass(t *testing.T) {
	tree := sampleTree()
	slot, err := ChildSlot(tree, 1)
	require.NoError(t, err)
	require.NoError(t, slot.Replace(nil))
	require.NoError(t, slot.Replace(leaf(token.IDENT, "z", 4)))
	assert.Equal(t, "z", tree.Child(1).(*Leaf).Token.Text)

	_, err = ChildSlot(tree, 5)
	assert.ErrorIs(t, err, ErrMalformedTree)

	var root Symbol = tree
	require.NoError(t, RootSlot(&root).Replace(nil))
	assert.Nil(t, root)
}

// tally replaces number leaves with links and collapses Expr subtrees into
// a single leaf, counting the symbols each replacement removes and adds.
type tally struct {
	BaseRewriter
	removed, added int
}

func size(sym Symbol) int {
	leaves, nodes := Count(sym)
	return leaves + nodes
}

func (r *tally) VisitLeaf(slot *Slot, l *Leaf, _ *Context) error {
	if l.Token.Kind != token.NUMBER {
		return nil
	}
	return r.replace(slot, NewLink(l.Token, 1))
}

func (r *tally) LeaveNode(slot *Slot, n *Node, _ *Context) error {
	if n.NodeTag() != tagExpr {
		return nil
	}
	return r.replace(slot, leaf(token.IDENT, "folded", 0))
}

func (r *tally) replace(slot *Slot, with Symbol) error {
	r.removed += size(slot.Get())
	r.added += size(with)
	return slot.Replace(with)
}

func TestRewrite_SlotIntegrity(t *testing.T) {
	var root Symbol = NewNode(tagList,
		NewNode(tagPair, leaf(token.IDENT, "a", 0), NewNode(tagExpr, leaf(token.NUMBER, "1", 1), leaf(token.NUMBER, "2", 2)), leaf(token.IDENT, "b", 3)),
		NewNode(tagPair, leaf(token.IDENT, "c", 4), nil, leaf(token.NUMBER, "3", 5)),
		NewNode(tagExpr, leaf(token.IDENT, "d", 6), NewNode(tagPair, leaf(token.IDENT, "e", 7), leaf(token.NUMBER, "4", 8))),
		leaf(token.IDENT, "f", 9),
	)
	before := size(root)
	require.Equal(t, 16, before)

	r := &tally{}
	stats, err := Rewrite(&root, r)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Replaced)
	assert.Equal(t, before-r.removed+r.added, size(root))
	assert.Equal(t, 10, size(root))

	var plain []string
	links := 0
	Inspect(root, func(sym Symbol, _ *Context) bool {
		switch s := sym.(type) {
		case *Link:
			links++
		case *Leaf:
			plain = append(plain, s.Token.Text)
		}
		return true
	})
	assert.Equal(t, []string{"a", "folded", "b", "c", "folded", "f"}, plain, "untargeted leaves stay reachable in order")
	assert.Equal(t, 1, links, "only the link outside a collapsed subtree survives")
}
