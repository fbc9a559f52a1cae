package mol

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidAtomID is returned by [Molecule.AddAtom] when the atom ID is
	// empty. All atoms must have non-empty identifiers.
	ErrInvalidAtomID = errors.New("atom ID must not be empty")

	// ErrDuplicateAtomID is returned by [Molecule.AddAtom] when an atom with
	// the same ID already exists. Atom IDs must be unique within a molecule.
	ErrDuplicateAtomID = errors.New("duplicate atom ID")

	// ErrUnknownAtom is returned by [Molecule.AddBond] when either endpoint
	// does not exist in the molecule.
	ErrUnknownAtom = errors.New("unknown atom")

	// ErrInvalidBondOrder is returned by [Molecule.AddBond] when the bond
	// order is outside the supported range (1, 2 or 3).
	ErrInvalidBondOrder = errors.New("bond order must be 1, 2 or 3")
)

// Bond orders supported by the graph. Order determines the target rest length
// of the bond during layout, not its visual multiplicity.
const (
	OrderSingle = 1
	OrderDouble = 2
	OrderTriple = 3
)

// Atom is a vertex in the molecular graph. The ID is an opaque, stable
// identifier; Element is an opaque label (layout never interprets it).
// Position coordinates may be zero, collinear or coplanar on input - the
// layout engine classifies and repairs degenerate geometries itself.
//
// The zero value is not usable - ID must be set before adding to a Molecule.
type Atom struct {
	ID      string  `json:"id"`
	Element string  `json:"element"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
}

// Bond is an unordered connection between two atoms. From/To carry no
// directional meaning; the names follow the serialization format.
type Bond struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Order int    `json:"order"`
}

// Other returns the bond endpoint opposite to id, and true if id is one of
// the endpoints.
func (b Bond) Other(id string) (string, bool) {
	switch id {
	case b.From:
		return b.To, true
	case b.To:
		return b.From, true
	}
	return "", false
}

// Molecule is a molecular graph: an ordered collection of atoms and a
// collection of bonds. Atom order does not affect graph semantics, only the
// determinism of the layout engine's symmetry-breaking scramble.
//
// The zero value is not usable - use New to create a valid instance.
// Molecule is not safe for concurrent mutation without external
// synchronization; concurrent reads are fine.
type Molecule struct {
	// Name is a free-form label (e.g. from an SDF header line). It is carried
	// through layout and serialization unchanged.
	Name string

	atoms   []*Atom
	byID    map[string]*Atom
	bonds   []Bond
	adjac   map[string][]string
	byOrder map[string][]Bond
}

// New creates an empty molecule.
func New(name string) *Molecule {
	return &Molecule{
		Name:    name,
		byID:    make(map[string]*Atom),
		adjac:   make(map[string][]string),
		byOrder: make(map[string][]Bond),
	}
}

// AddAtom adds an atom to the molecule, preserving insertion order.
// Returns ErrInvalidAtomID for an empty ID or ErrDuplicateAtomID if an atom
// with the same ID already exists.
func (m *Molecule) AddAtom(a Atom) error {
	if a.ID == "" {
		return ErrInvalidAtomID
	}
	if _, exists := m.byID[a.ID]; exists {
		return ErrDuplicateAtomID
	}
	atom := &a
	m.atoms = append(m.atoms, atom)
	m.byID[atom.ID] = atom
	return nil
}

// AddBond adds a bond between two existing atoms.
// Returns ErrUnknownAtom if either endpoint is missing, or
// ErrInvalidBondOrder for orders outside 1-3. Multiple bonds between the
// same pair are allowed (the layout engine simply applies both springs).
func (m *Molecule) AddBond(b Bond) error {
	if _, ok := m.byID[b.From]; !ok {
		return ErrUnknownAtom
	}
	if _, ok := m.byID[b.To]; !ok {
		return ErrUnknownAtom
	}
	if b.Order < OrderSingle || b.Order > OrderTriple {
		return ErrInvalidBondOrder
	}
	m.bonds = append(m.bonds, b)
	m.adjac[b.From] = append(m.adjac[b.From], b.To)
	m.adjac[b.To] = append(m.adjac[b.To], b.From)
	m.byOrder[b.From] = append(m.byOrder[b.From], b)
	m.byOrder[b.To] = append(m.byOrder[b.To], b)
	return nil
}

// Atom returns the atom with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual atom, so position updates
// affect the molecule.
func (m *Molecule) Atom(id string) (*Atom, bool) {
	a, ok := m.byID[id]
	return a, ok
}

// Atoms returns the atoms in insertion order.
// The slice contains pointers to the actual atom structs.
func (m *Molecule) Atoms() []*Atom { return m.atoms }

// Bonds returns a copy of all bonds in insertion order.
func (m *Molecule) Bonds() []Bond { return slices.Clone(m.bonds) }

// AtomCount returns the number of atoms.
func (m *Molecule) AtomCount() int { return len(m.atoms) }

// BondCount returns the number of bonds.
func (m *Molecule) BondCount() int { return len(m.bonds) }

// Neighbors returns the IDs of atoms bonded to the given atom.
// Returns nil if the atom has no bonds or doesn't exist. The returned slice
// should be treated as a read-only view.
func (m *Molecule) Neighbors(id string) []string { return m.adjac[id] }

// BondsOf returns the bonds incident to the given atom.
// Returns nil if the atom has no bonds or doesn't exist.
func (m *Molecule) BondsOf(id string) []Bond { return m.byOrder[id] }

// Degree returns the number of bonds incident to the atom.
// Returns 0 if the atom doesn't exist.
func (m *Molecule) Degree(id string) int { return len(m.adjac[id]) }

// Clone returns a deep copy of the molecule. Atom structs are copied, so
// mutating the clone's positions never affects the original.
func (m *Molecule) Clone() *Molecule {
	out := New(m.Name)
	for _, a := range m.atoms {
		_ = out.AddAtom(*a)
	}
	for _, b := range m.bonds {
		_ = out.AddBond(b)
	}
	return out
}

// SetPosition updates the coordinates of the atom with the given ID.
// Unknown IDs are ignored.
func (m *Molecule) SetPosition(id string, x, y, z float64) {
	if a, ok := m.byID[id]; ok {
		a.X, a.Y, a.Z = x, y, z
	}
}
