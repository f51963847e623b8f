package propagate

import (
	"github.com/leapstack-labs/svkit/pkg/syntax"
)

// Result summarizes one unit after the batch ran.
type Result struct {
	Ref        syntax.UnitRef
	Name       string
	Failed     bool
	Err        error
	Resolved   map[string]syntax.UnitRef
	Unresolved []string
	Transitive []string
	IncludedBy []string
	Tree       syntax.Symbol
}

// Results returns one result per unit in insertion order.
func (b *Batch) Results() []Result {
	results := make([]Result, len(b.units))
	for i, u := range b.units {
		results[i] = Result{
			Ref:        syntax.UnitRef(i),
			Name:       u.Name(),
			Failed:     u.Failed(),
			Err:        u.Err(),
			Resolved:   u.Resolved(),
			Unresolved: u.Unresolved(),
			Transitive: b.Transitive(u.Name()),
			IncludedBy: b.IncludedBy(u.Name()),
			Tree:       u.Tree(),
		}
	}
	return results
}

// Export is the serializable form of a batch.
type Export struct {
	RunID  string       `json:"run_id" yaml:"run_id" msgpack:"run_id"`
	Units  []ExportUnit `json:"units" yaml:"units" msgpack:"units"`
	Cycles [][]string   `json:"cycles,omitempty" yaml:"cycles,omitempty" msgpack:"cycles,omitempty"`
}

// ExportUnit is the serializable form of a unit.
type ExportUnit struct {
	Name       string            `json:"name" yaml:"name" msgpack:"name"`
	Failed     bool              `json:"failed,omitempty" yaml:"failed,omitempty" msgpack:"failed,omitempty"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty"`
	Resolved   map[string]string `json:"resolved,omitempty" yaml:"resolved,omitempty" msgpack:"resolved,omitempty"`
	Unresolved []string          `json:"unresolved,omitempty" yaml:"unresolved,omitempty" msgpack:"unresolved,omitempty"`
	Transitive []string          `json:"transitive,omitempty" yaml:"transitive,omitempty" msgpack:"transitive,omitempty"`
	Tree       *ExportNode       `json:"tree,omitempty" yaml:"tree,omitempty" msgpack:"tree,omitempty"`
}

// ExportNode is a tree symbol. Kind is "node", "leaf" or "link"; nil
// entries in Children stand for empty slots.
type ExportNode struct {
	Kind     string        `json:"kind" yaml:"kind" msgpack:"kind"`
	Tag      string        `json:"tag" yaml:"tag" msgpack:"tag"`
	Text     string        `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Line     int           `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Column   int           `json:"column,omitempty" yaml:"column,omitempty" msgpack:"column,omitempty"`
	Target   string        `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
	Children []*ExportNode `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

// Export converts the batch to its serializable form.
func (b *Batch) Export() Export {
	out := Export{RunID: b.runID, Cycles: b.cycles}
	for _, r := range b.Results() {
		eu := ExportUnit{
			Name:       r.Name,
			Failed:     r.Failed,
			Unresolved: r.Unresolved,
			Transitive: r.Transitive,
			Tree:       b.exportSymbol(r.Tree),
		}
		if r.Err != nil {
			eu.Error = r.Err.Error()
		}
		if len(r.Resolved) > 0 {
			eu.Resolved = make(map[string]string, len(r.Resolved))
			for name, ref := range r.Resolved {
				eu.Resolved[name] = b.units[ref].Name()
			}
		}
		out.Units = append(out.Units, eu)
	}
	return out
}

func (b *Batch) exportSymbol(sym syntax.Symbol) *ExportNode {
	switch s := sym.(type) {
	case *syntax.Node:
		if s == nil {
			return nil
		}
		n := &ExportNode{Kind: "node", Tag: s.NodeTag().String()}
		n.Children = make([]*ExportNode, s.NumChildren())
		for i, child := range s.Children() {
			n.Children[i] = b.exportSymbol(child)
		}
		return n
	case *syntax.Link:
		if s == nil {
			return nil
		}
		n := exportLeaf(&s.Leaf)
		n.Kind = "link"
		if u, ok := b.Unit(s.Target); ok {
			n.Target = u.Name()
		}
		return n
	case *syntax.Leaf:
		if s == nil {
			return nil
		}
		return exportLeaf(s)
	}
	return nil
}

func exportLeaf(l *syntax.Leaf) *ExportNode {
	return &ExportNode{
		Kind:   "leaf",
		Tag:    l.Token.Kind.String(),
		Text:   l.Token.Text,
		Line:   l.Token.Pos.Line,
		Column: l.Token.Pos.Column,
	}
}
