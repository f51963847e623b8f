// Package propagate links a batch of SystemVerilog units through their
// `include directives and folds constant expressions across them.
//
// A Batch runs in three phases separated by barriers:
//
//  1. ParseAll parses every unit concurrently. A unit that fails to parse is
//     recorded as failed; the batch carries on.
//  2. Resolve matches each unit's include names against the names of the
//     other units, records unresolved names, builds the include graph and
//     freezes a copy of every tree.
//  3. Propagate rewrites each unit concurrently: include operands that
//     resolved become links to the included unit, then the configured
//     folders run bottom-up. Folders read other units only through the
//     frozen copies, so no unit observes another unit mid-rewrite.
//
// Run performs all three phases. Calling a phase out of order returns
// ErrPhaseOrder.
package propagate
