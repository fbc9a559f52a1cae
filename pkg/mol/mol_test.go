package mol

import (
	"errors"
	"testing"
)

func TestAddAtom(t *testing.T) {
	m := New("test")

	if err := m.AddAtom(Atom{ID: "c1", Element: "C"}); err != nil {
		t.Fatalf("AddAtom error: %v", err)
	}
	if err := m.AddAtom(Atom{ID: "", Element: "C"}); !errors.Is(err, ErrInvalidAtomID) {
		t.Errorf("empty ID: got %v, want ErrInvalidAtomID", err)
	}
	if err := m.AddAtom(Atom{ID: "c1", Element: "N"}); !errors.Is(err, ErrDuplicateAtomID) {
		t.Errorf("duplicate ID: got %v, want ErrDuplicateAtomID", err)
	}
	if m.AtomCount() != 1 {
		t.Errorf("AtomCount = %d, want 1", m.AtomCount())
	}
}

func TestAddBond(t *testing.T) {
	m := New("test")
	_ = m.AddAtom(Atom{ID: "c1", Element: "C"})
	_ = m.AddAtom(Atom{ID: "c2", Element: "C"})

	tests := []struct {
		name    string
		bond    Bond
		wantErr error
	}{
		{"valid single", Bond{From: "c1", To: "c2", Order: 1}, nil},
		{"unknown from", Bond{From: "x", To: "c2", Order: 1}, ErrUnknownAtom},
		{"unknown to", Bond{From: "c1", To: "x", Order: 1}, ErrUnknownAtom},
		{"zero order", Bond{From: "c1", To: "c2", Order: 0}, ErrInvalidBondOrder},
		{"order too high", Bond{From: "c1", To: "c2", Order: 4}, ErrInvalidBondOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.AddBond(tt.bond)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddBond = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	m := New("methane")
	_ = m.AddAtom(Atom{ID: "c", Element: "C"})
	for _, id := range []string{"h1", "h2", "h3", "h4"} {
		_ = m.AddAtom(Atom{ID: id, Element: "H"})
		_ = m.AddBond(Bond{From: "c", To: id, Order: 1})
	}

	if got := m.Degree("c"); got != 4 {
		t.Errorf("Degree(c) = %d, want 4", got)
	}
	if got := m.Degree("h1"); got != 1 {
		t.Errorf("Degree(h1) = %d, want 1", got)
	}
	if got := m.Neighbors("h2"); len(got) != 1 || got[0] != "c" {
		t.Errorf("Neighbors(h2) = %v, want [c]", got)
	}
	if got := m.Degree("missing"); got != 0 {
		t.Errorf("Degree(missing) = %d, want 0", got)
	}
}

func TestBondOther(t *testing.T) {
	b := Bond{From: "a", To: "b", Order: 2}

	if other, ok := b.Other("a"); !ok || other != "b" {
		t.Errorf("Other(a) = %q, %v", other, ok)
	}
	if other, ok := b.Other("b"); !ok || other != "a" {
		t.Errorf("Other(b) = %q, %v", other, ok)
	}
	if _, ok := b.Other("c"); ok {
		t.Error("Other(c) should report false")
	}
}

func TestClone(t *testing.T) {
	m := New("ethine")
	_ = m.AddAtom(Atom{ID: "c1", Element: "C", X: 1})
	_ = m.AddAtom(Atom{ID: "c2", Element: "C", X: 2})
	_ = m.AddBond(Bond{From: "c1", To: "c2", Order: 3})

	c := m.Clone()
	c.SetPosition("c1", 99, 0, 0)

	orig, _ := m.Atom("c1")
	if orig.X != 1 {
		t.Errorf("clone mutation leaked into original: X = %v", orig.X)
	}
	if c.BondCount() != 1 || c.AtomCount() != 2 || c.Name != "ethine" {
		t.Error("clone lost structure")
	}
}

func TestSetPositionUnknownAtom(t *testing.T) {
	m := New("test")
	_ = m.AddAtom(Atom{ID: "a", Element: "H"})

	// Must not panic or create phantom atoms.
	m.SetPosition("nope", 1, 2, 3)
	if m.AtomCount() != 1 {
		t.Errorf("AtomCount = %d, want 1", m.AtomCount())
	}
}
