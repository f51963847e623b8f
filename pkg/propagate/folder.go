package propagate

import (
	"github.com/leapstack-labs/svkit/pkg/syntax"
)

// Folder is a bottom-up rewrite run on each unit after its includes are
// linked.
type Folder interface {
	Name() string
	Fold(root *syntax.Symbol, scope Scope) (syntax.RewriteStats, error)
}

// Scope gives a folder read access to the batch as it was at the end of
// Resolve.
type Scope interface {
	// Self is the unit being folded.
	Self() syntax.UnitRef
	// Frozen returns the frozen tree of ref, or nil when it has none.
	Frozen(ref syntax.UnitRef) syntax.Symbol
	// Includes returns the units ref includes, ordered by include name.
	Includes(ref syntax.UnitRef) []syntax.UnitRef
}

type batchScope struct {
	batch *Batch
	self  syntax.UnitRef
}

func (s *batchScope) Self() syntax.UnitRef { return s.self }

func (s *batchScope) Frozen(ref syntax.UnitRef) syntax.Symbol { return s.batch.Frozen(ref) }

func (s *batchScope) Includes(ref syntax.UnitRef) []syntax.UnitRef {
	return s.batch.includes(ref)
}
