package propagate

import (
	"strings"

	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// scopedName is a parameter name qualified by the path of module, package
// and class declarations enclosing it, such as "module top/class c". The
// compilation unit scope is "".
type scopedName struct {
	scope string
	name  string
}

type paramKey struct {
	unit syntax.UnitRef
	scopedName
}

type paramDecl struct {
	expr syntax.Symbol
	// opaque parameters shadow outer names but never fold.
	opaque bool
}

// paramResolver evaluates value parameters of frozen trees. A name resolves
// in the scope it is read from, then each enclosing scope out to the unit,
// then in the compilation unit scope of the included units, breadth first.
// Each included unit is searched once per lookup, so include cycles
// terminate. Parameters whose definitions depend on themselves do not
// evaluate.
type paramResolver struct {
	scope  Scope
	decls  map[syntax.UnitRef]map[scopedName]paramDecl
	values map[paramKey]int64
	failed map[paramKey]bool
	active map[paramKey]bool
	err    error
}

func newParamResolver(scope Scope) *paramResolver {
	return &paramResolver{
		scope:  scope,
		decls:  make(map[syntax.UnitRef]map[scopedName]paramDecl),
		values: make(map[paramKey]int64),
		failed: make(map[paramKey]bool),
		active: make(map[paramKey]bool),
	}
}

// evaluator returns an evaluator reading names from scope of the unit being
// folded.
func (r *paramResolver) evaluator(scope string) evaluator {
	self := r.scope.Self()
	return evaluator{lookup: func(name string) (int64, bool) {
		return r.lookupFrom(self, scope, name)
	}}
}

func (r *paramResolver) lookupFrom(unit syntax.UnitRef, scope, name string) (int64, bool) {
	decls := r.declarations(unit)
	for s := scope; ; s = enclosingScope(s) {
		key := scopedName{scope: s, name: name}
		if d, ok := decls[key]; ok {
			return r.value(paramKey{unit: unit, scopedName: key}, d)
		}
		if s == "" {
			break
		}
	}

	visited := map[syntax.UnitRef]bool{unit: true}
	queue := append([]syntax.UnitRef(nil), r.scope.Includes(unit)...)
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if visited[ref] {
			continue
		}
		visited[ref] = true
		key := scopedName{name: name}
		if d, ok := r.declarations(ref)[key]; ok {
			return r.value(paramKey{unit: ref, scopedName: key}, d)
		}
		queue = append(queue, r.scope.Includes(ref)...)
	}
	return 0, false
}

func (r *paramResolver) value(key paramKey, d paramDecl) (int64, bool) {
	if d.opaque {
		return 0, false
	}
	if v, ok := r.values[key]; ok {
		return v, true
	}
	if r.failed[key] || r.active[key] {
		return 0, false
	}
	r.active[key] = true
	ev := evaluator{lookup: func(name string) (int64, bool) {
		return r.lookupFrom(key.unit, key.scope, name)
	}}
	v, ok := ev.eval(d.expr)
	delete(r.active, key)
	if !ok {
		r.failed[key] = true
		return 0, false
	}
	r.values[key] = v
	return v, true
}

// declarations indexes the value parameters of ref by scope and name. The
// first declaration of a name in a scope wins.
func (r *paramResolver) declarations(ref syntax.UnitRef) map[scopedName]paramDecl {
	if decls, ok := r.decls[ref]; ok {
		return decls
	}
	decls := make(map[scopedName]paramDecl)
	r.decls[ref] = decls
	syntax.Inspect(r.scope.Frozen(ref), func(sym syntax.Symbol, ctx *syntax.Context) bool {
		if !syntax.IsNodeTag(sym, cst.ParamDeclaration) {
			return true
		}
		key, d, ok, err := paramDeclaration(sym, ctx)
		if err != nil {
			r.fail(err)
			return false
		}
		if _, seen := decls[key]; ok && !seen {
			decls[key] = d
		}
		return false
	})
	return decls
}

func paramDeclaration(decl syntax.Symbol, ctx *syntax.Context) (scopedName, paramDecl, bool, error) {
	isType, err := cst.IsParamTypeDeclaration(decl)
	if err != nil || isType {
		return scopedName{}, paramDecl{}, false, err
	}
	name, err := cst.GetParameterNameToken(decl)
	if err != nil {
		return scopedName{}, paramDecl{}, false, err
	}
	expr, err := cst.GetParamAssignExpression(decl)
	if err != nil {
		return scopedName{}, paramDecl{}, false, err
	}
	kw, err := cst.GetParamKeyword(decl)
	if err != nil {
		return scopedName{}, paramDecl{}, false, err
	}
	scope, err := scopeOf(ctx)
	if err != nil {
		return scopedName{}, paramDecl{}, false, err
	}
	d := paramDecl{
		expr:   expr,
		opaque: expr == nil || (kw == token.PARAMETER && inOverridableScope(ctx)),
	}
	return scopedName{scope: scope, name: name.Text}, d, true, nil
}

// inOverridableScope reports whether the nearest enclosing scope is a module
// or class, whose parameters may be overridden on instantiation.
func inOverridableScope(ctx *syntax.Context) bool {
	return ctx.IsInsideFirst(cst.ModuleDeclaration, cst.PackageDeclaration, cst.ClassDeclaration) ||
		ctx.IsInsideFirst(cst.ClassDeclaration, cst.PackageDeclaration, cst.ModuleDeclaration)
}

// scopeOf names the scope path of the ancestors in ctx.
func scopeOf(ctx *syntax.Context) (string, error) {
	var parts []string
	for i := range ctx.Len() {
		n := ctx.At(i)
		var (
			kind string
			name token.Token
			err  error
		)
		switch n.NodeTag() {
		case cst.ModuleDeclaration:
			kind = "module"
			name, err = cst.GetModuleNameToken(n)
		case cst.PackageDeclaration:
			kind = "package"
			name, err = cst.GetPackageNameToken(n)
		case cst.ClassDeclaration:
			kind = "class"
			name, err = cst.GetClassNameToken(n)
		default:
			continue
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, kind+" "+name.Text)
	}
	return strings.Join(parts, "/"), nil
}

func enclosingScope(scope string) string {
	if i := strings.LastIndexByte(scope, '/'); i >= 0 {
		return scope[:i]
	}
	return ""
}

func (r *paramResolver) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
