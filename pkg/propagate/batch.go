package propagate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"

	"fortio.org/safecast"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/svkit/internal/dag"
	"github.com/leapstack-labs/svkit/pkg/syntax"
)

var (
	// ErrPhaseOrder is returned when a phase is run before its predecessor.
	ErrPhaseOrder = errors.New("propagation phase out of order")
	// ErrDuplicateUnit is returned when two units share a name.
	ErrDuplicateUnit = errors.New("duplicate unit")
)

type phase int

const (
	phaseCollect phase = iota
	phaseParsed
	phaseResolved
	phasePropagated
)

func (p phase) String() string {
	switch p {
	case phaseCollect:
		return "collect"
	case phaseParsed:
		return "parsed"
	case phaseResolved:
		return "resolved"
	case phasePropagated:
		return "propagated"
	default:
		return "unknown"
	}
}

// Batch owns a set of units. UnitRef handles index its unit table and are
// only meaningful for the batch that issued them.
type Batch struct {
	units   []*Unit
	pending []string
	index   map[string]syntax.UnitRef

	frozen []syntax.Symbol
	graph  *dag.Graph
	cycles [][]string
	phase  phase

	runID   string
	logger  *slog.Logger
	jobs    int
	prelude string
	folders []Folder
}

// Option configures a Batch.
type Option func(*Batch)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Batch) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithJobs bounds the number of units processed concurrently.
func WithJobs(n int) Option {
	return func(b *Batch) {
		if n > 0 {
			b.jobs = n
		}
	}
}

// WithDefines prepends a guarded block of `define directives to every
// non-empty unit source added afterwards.
func WithDefines(defines map[string]string) Option {
	return func(b *Batch) {
		b.prelude = Prelude(defines)
	}
}

// WithFolders replaces the folders run after linking. The default is a
// single ConstantFolder.
func WithFolders(folders ...Folder) Option {
	return func(b *Batch) {
		b.folders = folders
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(b *Batch) {
		if id != "" {
			b.runID = id
		}
	}
}

// NewBatch returns an empty batch.
func NewBatch(opts ...Option) *Batch {
	b := &Batch{
		index:   make(map[string]syntax.UnitRef),
		runID:   uuid.NewString(),
		logger:  slog.New(slog.DiscardHandler),
		jobs:    runtime.GOMAXPROCS(0),
		folders: []Folder{ConstantFolder{}},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("run_id", b.runID)
	return b
}

// Prelude renders macro definitions as a guarded `define block, in name
// order. An empty map renders nothing.
func Prelude(defines map[string]string) string {
	if len(defines) == 0 {
		return ""
	}
	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("`ifndef MACRO_GENERATED\n`define MACRO_GENERATED\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "`define %s %s\n", name, defines[name])
	}
	sb.WriteString("`endif\n\n")
	return sb.String()
}

// ParseDefine splits NAME=VALUE. A missing '=' yields an empty value.
func ParseDefine(s string) (name, value string) {
	name, value, _ = strings.Cut(s, "=")
	return name, value
}

// RunID identifies this batch in logs and exports.
func (b *Batch) RunID() string { return b.runID }

// Len returns the number of units.
func (b *Batch) Len() int { return len(b.units) }

// Add registers a unit to be parsed by ParseAll.
func (b *Batch) Add(name, source string) (syntax.UnitRef, error) {
	if b.phase != phaseCollect {
		return syntax.NoUnit, fmt.Errorf("%w: add %s after %s", ErrPhaseOrder, name, b.phase)
	}
	if _, exists := b.index[name]; exists {
		return syntax.NoUnit, fmt.Errorf("%w: %s", ErrDuplicateUnit, name)
	}
	n, err := safecast.Conv[int32](len(b.units))
	if err != nil {
		return syntax.NoUnit, fmt.Errorf("too many units: %w", err)
	}
	ref := syntax.UnitRef(n)
	if source != "" {
		source = b.prelude + source
	}
	b.units = append(b.units, NewUnit(name))
	b.pending = append(b.pending, source)
	b.index[name] = ref
	return ref, nil
}

// Unit returns the unit for ref.
func (b *Batch) Unit(ref syntax.UnitRef) (*Unit, bool) {
	if ref < 0 || int(ref) >= len(b.units) {
		return nil, false
	}
	return b.units[ref], true
}

// Lookup returns the handle of the unit named name.
func (b *Batch) Lookup(name string) (syntax.UnitRef, bool) {
	ref, ok := b.index[name]
	return ref, ok
}

// Units returns the units in insertion order.
func (b *Batch) Units() []*Unit {
	return append([]*Unit(nil), b.units...)
}

// Cycles returns the include cycles found by Resolve.
func (b *Batch) Cycles() [][]string { return b.cycles }

// Frozen returns the tree of ref as it was at the end of Resolve. It is nil
// for failed or empty units and before Resolve.
func (b *Batch) Frozen(ref syntax.UnitRef) syntax.Symbol {
	if ref < 0 || int(ref) >= len(b.frozen) {
		return nil
	}
	return b.frozen[ref]
}

func (b *Batch) expect(want phase, op string) error {
	if b.phase != want {
		return fmt.Errorf("%w: %s requires phase %s, batch is %s", ErrPhaseOrder, op, want, b.phase)
	}
	return nil
}

// ParseAll parses every unit concurrently. Parse failures are recorded on
// the units and never abort the batch; only cancellation does.
func (b *Batch) ParseAll(ctx context.Context) error {
	if err := b.expect(phaseCollect, "parse"); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)
	for i, u := range b.units {
		source := b.pending[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := u.Parse(source); err != nil {
				b.logger.Warn("parse failed", "unit", u.Name(), "error", err)
				return nil
			}
			b.logger.Debug("parsed unit", "unit", u.Name(), "diagnostics", len(u.Diagnostics()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.pending = nil
	b.phase = phaseParsed
	return nil
}

// Resolve matches include names against unit names, builds the include
// graph and freezes every tree. Failed units are not sources of links but
// remain valid targets.
func (b *Batch) Resolve() error {
	if err := b.expect(phaseParsed, "resolve"); err != nil {
		return err
	}
	b.graph = dag.NewGraph()
	for i, u := range b.units {
		b.graph.AddNode(u.Name(), syntax.UnitRef(i))
	}

	for _, u := range b.units {
		u.resolved = make(map[string]syntax.UnitRef)
		u.unresolved = nil
		if u.Failed() {
			continue
		}
		for _, name := range u.Dependencies() {
			ref, ok := b.index[name]
			if !ok || name == u.Name() {
				u.unresolved = append(u.unresolved, name)
				b.logger.Warn("unresolved include", "unit", u.Name(), "include", name)
				continue
			}
			u.resolved[name] = ref
			if err := b.graph.AddEdge(name, u.Name()); err != nil {
				return fmt.Errorf("include graph: %w", err)
			}
		}
	}

	b.logger.Debug("include graph", "units", b.graph.NodeCount(), "edges", b.graph.EdgeCount())
	b.cycles = b.graph.Cycles()
	for _, cycle := range b.cycles {
		b.logger.Warn("include cycle", "units", cycle)
	}

	b.frozen = make([]syntax.Symbol, len(b.units))
	for i, u := range b.units {
		if u.Tree() != nil {
			b.frozen[i] = syntax.Clone(u.Tree())
		}
	}
	b.phase = phaseResolved
	return nil
}

// Transitive returns every unit name reachable from name through resolved
// includes.
func (b *Batch) Transitive(name string) []string {
	if b.graph == nil {
		return nil
	}
	return b.graph.GetUpstreamNodes(name)
}

// includes returns the units ref directly includes, ordered by name.
func (b *Batch) includes(ref syntax.UnitRef) []syntax.UnitRef {
	u, ok := b.Unit(ref)
	if !ok || b.graph == nil {
		return nil
	}
	names := append([]string(nil), b.graph.GetParents(u.Name())...)
	sort.Strings(names)
	refs := make([]syntax.UnitRef, 0, len(names))
	for _, name := range names {
		if node, ok := b.graph.GetNode(name); ok {
			refs = append(refs, node.Data.(syntax.UnitRef))
		}
	}
	return refs
}

// IncludedBy returns every unit that includes name, directly or
// transitively.
func (b *Batch) IncludedBy(name string) []string {
	if b.graph == nil {
		return nil
	}
	var out []string
	for _, id := range b.graph.GetAffectedNodes([]string{name}) {
		if id != name {
			out = append(out, id)
		}
	}
	return out
}

// Propagate links and folds every parsed unit concurrently. Errors from one
// unit do not stop the others; they are joined and returned.
func (b *Batch) Propagate(ctx context.Context) error {
	if err := b.expect(phaseResolved, "propagate"); err != nil {
		return err
	}
	errs := make([]error, len(b.units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)
	for i, u := range b.units {
		if u.Failed() || u.Tree() == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b.propagateUnit(syntax.UnitRef(i), u); err != nil {
				errs[i] = fmt.Errorf("propagate %s: %w", u.Name(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.phase = phasePropagated
	return errors.Join(errs...)
}

func (b *Batch) propagateUnit(ref syntax.UnitRef, u *Unit) error {
	links, err := linkIncludes(&u.tree, u.resolved)
	if err != nil {
		return err
	}
	scope := &batchScope{batch: b, self: ref}
	for _, f := range b.folders {
		stats, err := f.Fold(&u.tree, scope)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name(), err)
		}
		b.logger.Debug("folded unit", "unit", u.Name(), "folder", f.Name(), "replaced", stats.Replaced)
	}
	b.logger.Debug("propagated unit", "unit", u.Name(), "links", links)
	return nil
}

// Run executes ParseAll, Resolve and Propagate.
func (b *Batch) Run(ctx context.Context) error {
	if err := b.ParseAll(ctx); err != nil {
		return err
	}
	if err := b.Resolve(); err != nil {
		return err
	}
	return b.Propagate(ctx)
}
