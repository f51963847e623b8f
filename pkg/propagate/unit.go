package propagate

import (
	"sort"

	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/parser"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Unit is one source file's parse state and include bookkeeping.
type Unit struct {
	name        string
	source      string
	tree        syntax.Symbol
	diagnostics []parser.Diagnostic
	err         error

	deps       []string
	depsCached bool

	resolved   map[string]syntax.UnitRef
	unresolved []string
}

// NewUnit returns an empty unit identified by name.
func NewUnit(name string) *Unit {
	return &Unit{name: name, resolved: make(map[string]syntax.UnitRef)}
}

// Name returns the unit's identity.
func (u *Unit) Name() string { return u.name }

// Source returns the text last parsed.
func (u *Unit) Source() string { return u.source }

// Tree returns the unit's tree, or nil when the unit is empty or failed.
func (u *Unit) Tree() syntax.Symbol { return u.tree }

// Diagnostics returns non-fatal parse findings.
func (u *Unit) Diagnostics() []parser.Diagnostic { return u.diagnostics }

// Err returns the parse error, if any.
func (u *Unit) Err() error { return u.err }

// Failed reports whether the last parse failed.
func (u *Unit) Failed() bool { return u.err != nil }

// Parse parses source and replaces the unit's tree. Empty source is a
// successful no-op that leaves the unit untouched.
func (u *Unit) Parse(source string) error {
	if source == "" {
		return nil
	}
	u.source = source
	u.tree = nil
	u.diagnostics = nil
	u.deps, u.depsCached = nil, false

	res, err := parser.Parse(source, u.name)
	u.err = err
	if err != nil {
		return err
	}
	u.tree = res.Tree
	u.diagnostics = res.Diagnostics
	return nil
}

// Dependencies returns the sorted, distinct names included by the unit,
// with quotes stripped. The result is computed on first use and cached
// until the next Parse.
func (u *Unit) Dependencies() []string {
	if u.depsCached {
		return u.deps
	}
	seen := make(map[string]bool)
	syntax.Inspect(u.tree, func(sym syntax.Symbol, _ *syntax.Context) bool {
		n, ok := sym.(*syntax.Node)
		if !ok || n.NodeTag() != cst.PreprocessorInclude {
			return true
		}
		if l, ok := syntax.AsLeaf(n.Child(cst.IncludeFileSlot)); ok && l.Token.Kind == token.STRING {
			seen[cst.IncludeName(l.Token)] = true
		}
		return false
	})
	deps := make([]string, 0, len(seen))
	for name := range seen {
		deps = append(deps, name)
	}
	sort.Strings(deps)
	u.deps, u.depsCached = deps, true
	return deps
}

// Resolved returns a copy of the include names that matched another unit.
func (u *Unit) Resolved() map[string]syntax.UnitRef {
	out := make(map[string]syntax.UnitRef, len(u.resolved))
	for k, v := range u.resolved {
		out[k] = v
	}
	return out
}

// Unresolved returns the include names that matched no other unit.
func (u *Unit) Unresolved() []string {
	return append([]string(nil), u.unresolved...)
}
