package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svkit/pkg/token"
)

const (
	tagList NodeTag = iota + 1000
	tagPair
	tagExpr
)

func init() {
	RegisterNodeNames(map[NodeTag]string{tagList: "List", tagPair: "Pair", tagExpr: "Expr"})
}

func leaf(kind token.Kind, text string, offset int) *Leaf {
	return NewLeaf(token.Token{Kind: kind, Text: text, Pos: token.Position{Line: 1, Column: offset + 1, Offset: offset}})
}

// List(Pair(a, nil, b), c)
func sampleTree() *Node {
	return NewNode(tagList,
		NewNode(tagPair, leaf(token.IDENT, "a", 0), nil, leaf(token.IDENT, "b", 2)),
		leaf(token.NUMBER, "3", 4),
	)
}

func TestWalk_PreOrderSkipsNilSlots(t *testing.T) {
	var seen []string
	Walk(sampleTree(), VisitorFuncs{
		Leaf: func(l *Leaf, _ *Context) Action {
			seen = append(seen, l.Token.Text)
			return Continue
		},
		Node: func(n *Node, _ *Context) Action {
			seen = append(seen, n.NodeTag().String())
			return Continue
		},
	})
	assert.Equal(t, []string{"List", "Pair", "a", "b", "3"}, seen)
}

func TestWalk_ContextTracksAncestors(t *testing.T) {
	var snaps []Snapshot
	Walk(sampleTree(), VisitorFuncs{Leaf: func(l *Leaf, ctx *Context) Action {
		snaps = append(snaps, ctx.Snapshot())
		if l.Token.Text == "a" {
			assert.True(t, ctx.DirectParentIs(tagPair))
			assert.True(t, ctx.DirectParentsAre(tagPair, tagList))
			assert.True(t, ctx.IsInside(tagList))
			assert.False(t, ctx.IsInside(tagExpr))
		}
		return Continue
	}})
	require.Len(t, snaps, 3)
	assert.Equal(t, Snapshot{tagList, tagPair}, snaps[0])
	assert.Equal(t, Snapshot{tagList}, snaps[2])
}

func TestContext_IsInsideFirst(t *testing.T) {
	// Expr(Pair(List(x)))
	tree := NewNode(tagExpr, NewNode(tagPair, NewNode(tagList, leaf(token.IDENT, "x", 0))))
	var checked bool
	Inspect(tree, func(sym Symbol, ctx *Context) bool {
		if _, ok := sym.(*Leaf); !ok {
			return true
		}
		checked = true
		assert.True(t, ctx.IsInsideFirst(tagPair, tagExpr), "Pair is nearer than Expr")
		assert.False(t, ctx.IsInsideFirst(tagExpr, tagPair), "Pair stops the search")
		assert.True(t, ctx.IsInsideFirst(tagExpr), "no stops searches to the root")
		assert.False(t, ctx.IsInsideFirst(tagPair, tagList), "List is nearest")
		return true
	})
	assert.True(t, checked)
}

func TestWalk_StopAndSkip(t *testing.T) {
	var seen []string
	act := Walk(sampleTree(), VisitorFuncs{Leaf: func(l *Leaf, _ *Context) Action {
		seen = append(seen, l.Token.Text)
		if l.Token.Text == "a" {
			return Stop
		}
		return Continue
	}})
	assert.Equal(t, Stop, act)
	assert.Equal(t, []string{"a"}, seen)

	seen = nil
	Walk(sampleTree(), VisitorFuncs{
		Node: func(n *Node, _ *Context) Action {
			if n.NodeTag() == tagPair {
				return SkipChildren
			}
			return Continue
		},
		Leaf: func(l *Leaf, _ *Context) Action {
			seen = append(seen, l.Token.Text)
			return Continue
		},
	})
	assert.Equal(t, []string{"3"}, seen)
}

func TestWalk_LinkIsVisitedAsLeaf(t *testing.T) {
	root := NewNode(tagList, NewLink(token.Token{Kind: token.STRING, Text: `"x"`}, 4))
	var texts []string
	Walk(root, VisitorFuncs{Leaf: func(l *Leaf, _ *Context) Action {
		texts = append(texts, l.Token.Text)
		return Continue
	}})
	assert.Equal(t, []string{`"x"`}, texts)
}

func TestLeftmostRightmostLeaf(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, "a", LeftmostLeaf(tree).Token.Text)
	assert.Equal(t, "3", RightmostLeaf(tree).Token.Text)
	assert.Nil(t, LeftmostLeaf(NewNode(tagList, nil, nil)))
	assert.Equal(t, "a b 3", Text(tree, "a b 3"))
}

func TestCountAndClone(t *testing.T) {
	tree := sampleTree()
	leaves, nodes := Count(tree)
	assert.Equal(t, 3, leaves)
	assert.Equal(t, 2, nodes)

	clone := Clone(tree).(*Node)
	assert.Equal(t, Sprint(tree), Sprint(clone))
	assert.NotSame(t, tree.Child(0), clone.Child(0))
	assert.Nil(t, clone.Child(0).(*Node).Child(1))
}

func TestDescendAndExpect(t *testing.T) {
	tree := sampleTree()

	sym, err := Descend(tree, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", sym.(*Leaf).Token.Text)

	_, err = Descend(tree, 0, 7)
	assert.True(t, errors.Is(err, ErrMalformedTree))

	_, err = Descend(tree, 1, 0)
	var mt *MalformedTreeError
	require.ErrorAs(t, err, &mt)

	_, err = ExpectNode(tree.Child(1), tagPair)
	assert.ErrorIs(t, err, ErrMalformedTree)

	l, err := ExpectLeaf(tree.Child(1), token.NUMBER)
	require.NoError(t, err)
	assert.Equal(t, "3", l.Token.Text)

	_, err = ChildLeaf(tree, 0)
	assert.ErrorIs(t, err, ErrMalformedTree)
}

func TestFprint(t *testing.T) {
	out := Sprint(NewNode(tagPair, leaf(token.IDENT, "a", 0), nil))
	assert.Contains(t, out, "Node @Pair (2 children)")
	assert.Contains(t, out, "  <nil>")
}
