// Package mol defines the molecular graph consumed and produced by the
// layout engine.
//
// # Overview
//
// A [Molecule] is an ordered collection of atoms plus a collection of bonds.
// Atoms carry an opaque stable ID, an element symbol and a 3D position; bonds
// are unordered atom pairs with an integer order (1-3). The graph makes no
// chemical judgements: it does not check valence, aromaticity or formula
// plausibility. Garbage in, laid-out garbage out.
//
// # Identity and positions
//
// Atom IDs are unique within a molecule and treated as opaque beyond
// equality. Positions are plain float64 triples with no range constraints -
// all-zero, collinear and coplanar inputs are valid and are exactly what
// the layout engine's degeneracy classification exists for.
//
// # Example
//
//	m := mol.New("water")
//	_ = m.AddAtom(mol.Atom{ID: "o1", Element: "O"})
//	_ = m.AddAtom(mol.Atom{ID: "h1", Element: "H"})
//	_ = m.AddAtom(mol.Atom{ID: "h2", Element: "H"})
//	_ = m.AddBond(mol.Bond{From: "o1", To: "h1", Order: mol.OrderSingle})
//	_ = m.AddBond(mol.Bond{From: "o1", To: "h2", Order: mol.OrderSingle})
package mol
