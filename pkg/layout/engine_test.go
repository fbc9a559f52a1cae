package layout

import (
	"math"
	"testing"

	"github.com/molviz/molforge/pkg/mol"
)

func dist(a, b *mol.Atom) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func outZRange(m *mol.Molecule) float64 {
	atoms := m.Atoms()
	lo, hi := atoms[0].Z, atoms[0].Z
	for _, a := range atoms[1:] {
		lo = math.Min(lo, a.Z)
		hi = math.Max(hi, a.Z)
	}
	return hi - lo
}

// methane builds a flat CH4 graph: five atoms, four single bonds, z=0 for all.
func methane() *mol.Molecule {
	m := mol.New("methane")
	_ = m.AddAtom(mol.Atom{ID: "c", Element: "C"})
	for i, id := range []string{"h1", "h2", "h3", "h4"} {
		_ = m.AddAtom(mol.Atom{ID: id, Element: "H", X: float64(i), Y: float64(-i)})
		_ = m.AddBond(mol.Bond{From: "c", To: id, Order: mol.OrderSingle})
	}
	return m
}

func TestEmptyMolecule(t *testing.T) {
	e := New(WithSeed(1))
	out := e.Layout(mol.New("empty"), 800, 600)
	if out.AtomCount() != 0 || out.BondCount() != 0 {
		t.Error("empty molecule should pass through as a no-op")
	}
}

func TestSingleAtom(t *testing.T) {
	m := mol.New("lone")
	_ = m.AddAtom(mol.Atom{ID: "he", Element: "He", X: 42, Y: -7, Z: 3})

	out := New(WithSeed(1)).Layout(m, 800, 600)
	a, ok := out.Atom("he")
	if !ok {
		t.Fatal("atom lost during layout")
	}
	for _, v := range []float64{a.X, a.Y, a.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite coordinate: %+v", a)
		}
	}
	// Recentered on the centroid, a single atom ends at the origin.
	if math.Abs(a.X) > 1e-9 || math.Abs(a.Y) > 1e-9 || math.Abs(a.Z) > 1e-9 {
		t.Errorf("single atom not recentered: %+v", a)
	}
}

func TestAtomAndBondInvariance(t *testing.T) {
	m := methane()
	out := New(WithSeed(1)).Layout(m, 800, 600)

	if out.AtomCount() != m.AtomCount() {
		t.Fatalf("atom count changed: %d -> %d", m.AtomCount(), out.AtomCount())
	}
	for _, in := range m.Atoms() {
		got, ok := out.Atom(in.ID)
		if !ok {
			t.Fatalf("atom %s missing from output", in.ID)
		}
		if got.Element != in.Element {
			t.Errorf("atom %s element changed: %s -> %s", in.ID, in.Element, got.Element)
		}
	}

	inBonds, outBonds := m.Bonds(), out.Bonds()
	if len(outBonds) != len(inBonds) {
		t.Fatalf("bond count changed: %d -> %d", len(inBonds), len(outBonds))
	}
	for i, b := range inBonds {
		if outBonds[i] != b {
			t.Errorf("bond %d changed: %+v -> %+v", i, b, outBonds[i])
		}
	}

	// Input positions must be untouched.
	c, _ := m.Atom("h2")
	if c.X != 2 || c.Y != -2 || c.Z != 0 {
		t.Errorf("input molecule mutated: %+v", c)
	}
}

func TestNonDegeneracy(t *testing.T) {
	// Flat input with more than two atoms must leave the plane by more than
	// the degeneracy threshold.
	out := New(WithSeed(1)).Layout(methane(), 800, 600)
	if zr := outZRange(out); zr <= DefaultConfig().FlatThreshold {
		t.Errorf("z-range = %v, want > %v", zr, DefaultConfig().FlatThreshold)
	}
}

func TestSingleBondLengthFromCoincidentStart(t *testing.T) {
	m := mol.New("pair")
	_ = m.AddAtom(mol.Atom{ID: "a", Element: "C"})
	_ = m.AddAtom(mol.Atom{ID: "b", Element: "C"})
	_ = m.AddBond(mol.Bond{From: "a", To: "b", Order: mol.OrderSingle})

	out := New(WithSeed(1)).Layout(m, 800, 600)
	a, _ := out.Atom("a")
	b, _ := out.Atom("b")
	d := dist(a, b)
	if math.Abs(d-DefaultConfig().RestSingle) > 0.4 {
		t.Errorf("bond length = %v, want about %v", d, DefaultConfig().RestSingle)
	}
}

func TestSingleBondLengthFromFarStart(t *testing.T) {
	// 1000 units apart: far beyond the default annealing budget, so this
	// only converges because the starting temperature scales with extent.
	m := mol.New("pair")
	_ = m.AddAtom(mol.Atom{ID: "a", Element: "C", X: -500})
	_ = m.AddAtom(mol.Atom{ID: "b", Element: "C", X: 500})
	_ = m.AddBond(mol.Bond{From: "a", To: "b", Order: mol.OrderSingle})

	out := New(WithSeed(1)).Layout(m, 800, 600)
	a, _ := out.Atom("a")
	b, _ := out.Atom("b")
	d := dist(a, b)
	if math.Abs(d-DefaultConfig().RestSingle) > 0.4 {
		t.Errorf("bond length = %v, want about %v", d, DefaultConfig().RestSingle)
	}
}

func TestWaterTriangle(t *testing.T) {
	m := mol.New("water")
	_ = m.AddAtom(mol.Atom{ID: "o", Element: "O"})
	_ = m.AddAtom(mol.Atom{ID: "h1", Element: "H", X: 3})
	_ = m.AddAtom(mol.Atom{ID: "h2", Element: "H", Y: 3})
	_ = m.AddBond(mol.Bond{From: "o", To: "h1", Order: mol.OrderSingle})
	_ = m.AddBond(mol.Bond{From: "o", To: "h2", Order: mol.OrderSingle})

	out := New(WithSeed(1)).Layout(m, 800, 600)
	o, _ := out.Atom("o")
	h1, _ := out.Atom("h1")
	h2, _ := out.Atom("h2")

	rest := DefaultConfig().RestSingle
	if d := dist(o, h1); math.Abs(d-rest) > 0.4 {
		t.Errorf("o-h1 = %v, want about %v", d, rest)
	}
	if d := dist(o, h2); math.Abs(d-rest) > 0.4 {
		t.Errorf("o-h2 = %v, want about %v", d, rest)
	}
	if zr := outZRange(out); zr <= 0.01 {
		t.Errorf("water stayed flat: z-range = %v", zr)
	}
}

func TestTripleBondPair(t *testing.T) {
	m := mol.New("dinitrogen")
	_ = m.AddAtom(mol.Atom{ID: "n1", Element: "N"})
	_ = m.AddAtom(mol.Atom{ID: "n2", Element: "N", X: 1000})
	_ = m.AddBond(mol.Bond{From: "n1", To: "n2", Order: mol.OrderTriple})

	out := New(WithSeed(1)).Layout(m, 800, 600)
	a, _ := out.Atom("n1")
	b, _ := out.Atom("n2")
	d := dist(a, b)

	cfg := DefaultConfig()
	if math.Abs(d-cfg.RestTriple) > 0.5 {
		t.Errorf("triple bond length = %v, want about %v", d, cfg.RestTriple)
	}
	if d >= cfg.RestSingle {
		t.Errorf("triple bond (%v) not shorter than single rest length (%v)", d, cfg.RestSingle)
	}
}

func TestDisconnectedAtomStaysBounded(t *testing.T) {
	m := mol.New("mix")
	_ = m.AddAtom(mol.Atom{ID: "n1", Element: "N", X: 1, Z: 2})
	_ = m.AddAtom(mol.Atom{ID: "n2", Element: "N", X: 3, Z: -2})
	_ = m.AddAtom(mol.Atom{ID: "ar", Element: "Ar", X: 10, Y: 5, Z: 7})
	_ = m.AddBond(mol.Bond{From: "n1", To: "n2", Order: mol.OrderTriple})

	out := New(WithSeed(1)).Layout(m, 800, 600)
	ar, _ := out.Atom("ar")
	r := math.Sqrt(ar.X*ar.X + ar.Y*ar.Y + ar.Z*ar.Z)
	if math.IsNaN(r) || r > 50 {
		t.Errorf("disconnected atom drifted to radius %v", r)
	}

	// The bonded pair still converges despite the bystander.
	a, _ := out.Atom("n1")
	b, _ := out.Atom("n2")
	if d := dist(a, b); math.Abs(d-DefaultConfig().RestTriple) > 0.6 {
		t.Errorf("pair distance = %v, want about %v", d, DefaultConfig().RestTriple)
	}
}

func TestConvergenceNearEquilibrium(t *testing.T) {
	// A structure already near force balance must move less than one started
	// from a degenerate state.
	e := New(WithSeed(1))
	in := methane()

	first := e.Layout(in, 800, 600)
	second := e.Layout(first, 800, 600)

	if meanDisplacement(in, first) <= meanDisplacement(first, second) {
		t.Errorf("relaxed input moved more (%v) than degenerate input (%v)",
			meanDisplacement(first, second), meanDisplacement(in, first))
	}
}

func meanDisplacement(before, after *mol.Molecule) float64 {
	var sum float64
	for _, a := range before.Atoms() {
		b, _ := after.Atom(a.ID)
		sum += dist(a, b)
	}
	return sum / float64(before.AtomCount())
}

func TestCentroidAtOrigin(t *testing.T) {
	out := New(WithSeed(1)).Layout(methane(), 800, 600)

	var cx, cy, cz float64
	for _, a := range out.Atoms() {
		cx += a.X
		cy += a.Y
		cz += a.Z
	}
	n := float64(out.AtomCount())
	if math.Abs(cx/n) > 1e-6 || math.Abs(cy/n) > 1e-6 || math.Abs(cz/n) > 1e-6 {
		t.Errorf("centroid not at origin: (%v, %v, %v)", cx/n, cy/n, cz/n)
	}
}

func TestSeedDeterminism(t *testing.T) {
	m := mol.New("pair")
	_ = m.AddAtom(mol.Atom{ID: "a", Element: "C", X: 1, Z: 5})
	_ = m.AddAtom(mol.Atom{ID: "b", Element: "C", X: 2, Z: -5})
	_ = m.AddBond(mol.Bond{From: "a", To: "b", Order: mol.OrderSingle})

	out1 := New(WithSeed(7)).Layout(m, 800, 600)
	out2 := New(WithSeed(7)).Layout(m, 800, 600)

	for _, a1 := range out1.Atoms() {
		a2, _ := out2.Atom(a1.ID)
		if *a1 != *a2 {
			t.Errorf("same seed diverged: %+v vs %+v", a1, a2)
		}
	}
}

func TestDiagonal(t *testing.T) {
	nodes := []node{{x: -500}, {x: 500}}
	if d := diagonal(nodes); math.Abs(d-1000) > 1e-9 {
		t.Errorf("diagonal = %v, want 1000", d)
	}

	box := []node{{x: 1, y: 2, z: 3}, {x: 4, y: 6, z: 3}}
	if d := diagonal(box); math.Abs(d-5) > 1e-9 {
		t.Errorf("diagonal = %v, want 5", d)
	}

	single := []node{{x: 7, y: -2, z: 9}}
	if d := diagonal(single); d != 0 {
		t.Errorf("diagonal of one node = %v, want 0", d)
	}
}

func TestScrambleDistinctPoints(t *testing.T) {
	e := New()
	nodes := make([]node, 8)
	e.scramble(nodes)

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			dx := nodes[i].x - nodes[j].x
			dy := nodes[i].y - nodes[j].y
			dz := nodes[i].z - nodes[j].z
			if dx*dx+dy*dy+dz*dz < 1e-6 {
				t.Errorf("scramble produced coincident points %d and %d", i, j)
			}
		}
	}

	// Every point sits on the scramble sphere.
	r := e.cfg.ScrambleRadius
	for i, n := range nodes {
		got := math.Sqrt(n.x*n.x + n.y*n.y + n.z*n.z)
		if math.Abs(got-r) > 1e-9 {
			t.Errorf("point %d at radius %v, want %v", i, got, r)
		}
	}
}
