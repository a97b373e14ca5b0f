// Package passes implements the optimization pipeline of the compiler
// middle-end.
//
// Four passes operate on the DAG form of a circuit:
//
//   - CommutationPass reorders commuting gates to expose pairs for the
//     passes that follow.
//   - CancellationPass removes adjacent inverse pairs (H·H, X·X, S·Sdg, …).
//   - RotationMergePass folds adjacent same-axis rotations into one gate.
//   - IdentityEliminationPass deletes rotations equivalent to the identity.
//
// The Manager runs passes in registration order and aggregates per-pass
// statistics. Passes do not iterate the whole pipeline to a fixed point;
// any internal convergence (rotation merging, for example) is the pass's
// own responsibility.
//
//	m := passes.Default()
//	optimized, err := m.RunCircuit(circuit)
//	stats := m.Statistics()
package passes
