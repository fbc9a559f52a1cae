package layout

import (
	"math"
	"math/rand/v2"

	"github.com/molviz/molforge/pkg/mol"
)

// goldenAngle is the constant azimuthal increment (≈137.5°) used for the
// spherical scramble. Successive multiples of it distribute points on a
// sphere with minimal clustering, avoiding the axis-aligned artifacts of
// naive trigonometric grids.
const goldenAngle = 2.399963229728653

// Option configures an [Engine].
type Option func(*Engine)

// WithConfig replaces the default force-field configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithSeed makes the engine's randomness reproducible. The seed only affects
// the micro-jitter applied to non-degenerate inputs; the spherical scramble
// is deterministic by construction.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// Engine relaxes molecular graphs into non-degenerate 3D arrangements.
// It holds no per-molecule state: every [Engine.Layout] call runs a fresh
// simulation, so a single Engine may be shared across goroutines as long as
// it was built with the default (global) random source. Engines created with
// [WithSeed] own an unsynchronized generator and must not be shared.
type Engine struct {
	cfg Config
	rng *rand.Rand
}

// New creates an engine with the default force field.
func New(opts ...Option) *Engine {
	e := &Engine{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's force-field configuration.
func (e *Engine) Config() Config { return e.cfg }

// node is the ephemeral simulation state of one atom. Nodes exist only for
// the duration of a single Layout call.
type node struct {
	x, y, z    float64
	vx, vy, vz float64
	fx, fy, fz float64
}

// spring is a simulated bond: two node indices and a target rest length.
type spring struct {
	a, b int
	rest float64
}

// Layout repositions the atoms of m into a relaxed, non-degenerate 3D
// arrangement and returns the result as a new molecule. The input molecule
// is never mutated. Atom identities, elements and the bond set pass through
// unchanged.
//
// The width and height hints exist only for interface compatibility with 2D
// layout callers and are ignored.
//
// Flat or collinear inputs (z-range below the configured threshold with more
// than two atoms) are scrambled onto a sphere before integration; starting an
// N-body relaxation from an exactly planar state is a stable equilibrium of
// the force field, so the third dimension has to be opened explicitly. All
// other inputs receive a micro-jitter to break exact coincidences.
//
// Layout never fails on malformed data: bonds referencing unknown atoms are
// excluded from the simulation, zero-length separations are epsilon-floored,
// and an empty molecule is returned as-is.
func (e *Engine) Layout(m *mol.Molecule, width, height float64) *mol.Molecule {
	_, _ = width, height

	out := m.Clone()
	atoms := out.Atoms()
	if len(atoms) == 0 {
		return out
	}

	nodes := make([]node, len(atoms))
	index := make(map[string]int, len(atoms))
	for i, a := range atoms {
		nodes[i] = node{x: a.X, y: a.Y, z: a.Z}
		index[a.ID] = i
	}

	if len(atoms) > 2 && zRange(nodes) < e.cfg.FlatThreshold {
		e.scramble(nodes)
	} else {
		e.jitter(nodes)
	}

	springs := e.springs(out, index)
	e.simulate(nodes, springs)
	recenter(nodes)

	for i, a := range atoms {
		a.X, a.Y, a.Z = nodes[i].x, nodes[i].y, nodes[i].z
	}
	return out
}

// zRange returns max(z) - min(z) across all nodes.
func zRange(nodes []node) float64 {
	lo, hi := nodes[0].z, nodes[0].z
	for _, n := range nodes[1:] {
		lo = math.Min(lo, n.z)
		hi = math.Max(hi, n.z)
	}
	return hi - lo
}

// scramble places every node on a sphere of the configured radius using an
// equal-area parameterization: the polar coordinate spans +1..-1 linearly by
// ordinal index while the azimuth advances by the golden angle. Every atom
// ends at a distinct, non-coplanar point regardless of bond topology.
func (e *Engine) scramble(nodes []node) {
	n := len(nodes)
	r := e.cfg.ScrambleRadius
	for i := range nodes {
		ys := 1 - float64(i)/float64(n-1)*2
		rxy := math.Sqrt(1 - ys*ys)
		theta := float64(i) * goldenAngle
		nodes[i].x = math.Cos(theta) * rxy * r
		nodes[i].y = ys * r
		nodes[i].z = math.Sin(theta) * rxy * r
	}
}

// jitter perturbs each coordinate by a small uniform offset so that no two
// atoms coincide exactly, which would zero out the separating axis.
func (e *Engine) jitter(nodes []node) {
	for i := range nodes {
		nodes[i].x += e.rand()
		nodes[i].y += e.rand()
		nodes[i].z += e.rand()
	}
}

// rand returns a uniform offset in [-Jitter, +Jitter).
func (e *Engine) rand() float64 {
	if e.rng != nil {
		return (e.rng.Float64()*2 - 1) * e.cfg.Jitter
	}
	return (rand.Float64()*2 - 1) * e.cfg.Jitter
}

// springs converts the molecule's bonds into simulated springs, silently
// dropping bonds whose endpoints are not both present. Malformed upstream
// data degrades the topology to fewer constraints, never to a failure.
func (e *Engine) springs(m *mol.Molecule, index map[string]int) []spring {
	bonds := m.Bonds()
	springs := make([]spring, 0, len(bonds))
	for _, b := range bonds {
		a, okA := index[b.From]
		c, okC := index[b.To]
		if !okA || !okC {
			continue
		}
		springs = append(springs, spring{a: a, b: c, rest: e.cfg.RestLength(b.Order)})
	}
	return springs
}

// simulate runs the annealed force integration until the system freezes or
// the iteration cap is reached.
//
// The velocity clamp caps total per-atom travel at temp/(1-Cooling). For
// inputs wider than the default budget covers, the starting temperature is
// raised to the bounding-box diagonal times (1-Cooling), so every atom can
// cross the whole structure before the system freezes. Compact inputs keep
// the configured InitialTemp.
func (e *Engine) simulate(nodes []node, springs []spring) {
	cfg := e.cfg
	temp := cfg.InitialTemp
	if t := diagonal(nodes) * (1 - cfg.Cooling); t > temp {
		temp = t
	}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		for i := range nodes {
			nodes[i].fx, nodes[i].fy, nodes[i].fz = 0, 0, 0
		}

		// Pairwise inverse-square repulsion, each unordered pair touched
		// exactly once with equal and opposite contributions.
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				dx := nodes[i].x - nodes[j].x
				dy := nodes[i].y - nodes[j].y
				dz := nodes[i].z - nodes[j].z
				d2 := math.Max(dx*dx+dy*dy+dz*dz, cfg.Epsilon)
				d := math.Sqrt(d2)
				f := cfg.Repulsion / d2
				fx, fy, fz := f*dx/d, f*dy/d, f*dz/d
				nodes[i].fx += fx
				nodes[i].fy += fy
				nodes[i].fz += fz
				nodes[j].fx -= fx
				nodes[j].fy -= fy
				nodes[j].fz -= fz
			}
		}

		// Hookean bond attraction toward the per-order rest length.
		for _, s := range springs {
			dx := nodes[s.b].x - nodes[s.a].x
			dy := nodes[s.b].y - nodes[s.a].y
			dz := nodes[s.b].z - nodes[s.a].z
			d := math.Sqrt(math.Max(dx*dx+dy*dy+dz*dz, cfg.Epsilon))
			f := cfg.Spring * (d - s.rest)
			fx, fy, fz := f*dx/d, f*dy/d, f*dz/d
			nodes[s.a].fx += fx
			nodes[s.a].fy += fy
			nodes[s.a].fz += fz
			nodes[s.b].fx -= fx
			nodes[s.b].fy -= fy
			nodes[s.b].fz -= fz
		}

		// Weak centering gravity bounds drift of disconnected fragments.
		for i := range nodes {
			nodes[i].fx -= cfg.Gravity * nodes[i].x
			nodes[i].fy -= cfg.Gravity * nodes[i].y
			nodes[i].fz -= cfg.Gravity * nodes[i].z
		}

		// Damped unit-mass integration with the velocity magnitude clamped
		// to the current annealing temperature.
		maxV2 := 0.0
		for i := range nodes {
			n := &nodes[i]
			n.vx = (n.vx + n.fx) * cfg.Damping
			n.vy = (n.vy + n.fy) * cfg.Damping
			n.vz = (n.vz + n.fz) * cfg.Damping

			v2 := n.vx*n.vx + n.vy*n.vy + n.vz*n.vz
			if v2 > temp*temp {
				scale := temp / math.Sqrt(v2)
				n.vx *= scale
				n.vy *= scale
				n.vz *= scale
				v2 = temp * temp
			}
			maxV2 = math.Max(maxV2, v2)

			n.x += n.vx
			n.y += n.vy
			n.z += n.vz
		}

		temp *= cfg.Cooling
		if temp < cfg.TempFloor && maxV2 < cfg.VelocityFloor {
			break
		}
	}
}

// diagonal returns the length of the bounding-box diagonal across all nodes.
func diagonal(nodes []node) float64 {
	min := node{x: nodes[0].x, y: nodes[0].y, z: nodes[0].z}
	max := min
	for _, n := range nodes[1:] {
		min.x = math.Min(min.x, n.x)
		min.y = math.Min(min.y, n.y)
		min.z = math.Min(min.z, n.z)
		max.x = math.Max(max.x, n.x)
		max.y = math.Max(max.y, n.y)
		max.z = math.Max(max.z, n.z)
	}
	dx, dy, dz := max.x-min.x, max.y-min.y, max.z-min.z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// recenter shifts the structure so its centroid sits at the origin.
func recenter(nodes []node) {
	var cx, cy, cz float64
	for _, n := range nodes {
		cx += n.x
		cy += n.y
		cz += n.z
	}
	inv := 1 / float64(len(nodes))
	cx, cy, cz = cx*inv, cy*inv, cz*inv
	for i := range nodes {
		nodes[i].x -= cx
		nodes[i].y -= cy
		nodes[i].z -= cz
	}
}
