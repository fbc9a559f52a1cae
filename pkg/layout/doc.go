// Package layout is the force-directed 3D layout engine for molecular
// graphs.
//
// # Overview
//
// The engine converts a bond graph plus arbitrary - possibly all-zero,
// collinear or coplanar - initial atom positions into a relaxed,
// non-degenerate 3D arrangement with chemically plausible bond lengths and
// open bond angles. It is a pure value transformation: no I/O, no shared
// state, no concurrency inside a call.
//
// # Algorithm
//
// Each Layout call runs five steps:
//
//  1. Degeneracy detection: inputs with more than two atoms whose z-range is
//     below a threshold are classified flat/linear.
//  2. Symmetry breaking: flat inputs are scrambled onto a sphere using a
//     golden-angle equal-area parameterization; everything else receives a
//     micro-jitter to avoid coincident points.
//  3. Force accumulation: pairwise inverse-square repulsion, Hookean springs
//     per bond (rest length by bond order) and a weak centering gravity.
//  4. Integration with simulated annealing: damped unit-mass velocity
//     updates, clamped to a geometrically cooling temperature ceiling, until
//     the system freezes or an iteration cap is hit.
//  5. Finalization: the structure is recentered on its centroid and simulation
//     state is discarded.
//
// # Tuning
//
// All constants live in [Config]; [DefaultConfig] is the one canonical,
// documented set, and [LoadConfig] reads TOML overrides. Repulsion sized
// against spring stiffness is what produces VSEPR-like wide angles - tune
// the ratios, not individual values.
//
// # Determinism
//
// The only randomness is the micro-jitter. Pass [WithSeed] for reproducible
// output; without it the engine uses the process-global generator, which is
// safe for concurrent Layout calls on separate molecules.
package layout
