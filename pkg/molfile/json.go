package molfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/molviz/molforge/pkg/mol"
)

// =============================================================================
// JSON Serialization API
// =============================================================================

// Document is the canonical JSON serialization of a molecule.
type Document struct {
	Name  string     `json:"name,omitempty"`
	Atoms []mol.Atom `json:"atoms"`
	Bonds []mol.Bond `json:"bonds"`
}

// MarshalJSON converts a molecule to indented JSON bytes.
func MarshalJSON(m *mol.Molecule) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes a molecule as JSON to w.
func WriteJSON(m *mol.Molecule, w io.Writer) error {
	doc := FromMolecule(m)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSONFile writes a molecule to a JSON file.
// The file is created with 0644 permissions.
func WriteJSONFile(m *mol.Molecule, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}

// ReadJSON decodes a JSON molecule from r.
func ReadJSON(r io.Reader) (*mol.Molecule, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToMolecule(doc)
}

// ReadJSONFile reads a JSON file and returns the decoded molecule.
func ReadJSONFile(path string) (*mol.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// =============================================================================
// Document ↔ Molecule Conversion
// =============================================================================

// FromMolecule converts a molecule to its serialization form.
// Atoms keep their insertion order for stable output.
func FromMolecule(m *mol.Molecule) Document {
	doc := Document{
		Name:  m.Name,
		Atoms: make([]mol.Atom, 0, m.AtomCount()),
		Bonds: m.Bonds(),
	}
	for _, a := range m.Atoms() {
		doc.Atoms = append(doc.Atoms, *a)
	}
	return doc
}

// ToMolecule converts a Document to a molecule.
// Duplicate or empty atom IDs are errors; bonds referencing unknown atoms or
// carrying an out-of-range order are skipped silently, so that malformed
// upstream data degrades to fewer constraints instead of losing the molecule.
func ToMolecule(doc Document) (*mol.Molecule, error) {
	m := mol.New(doc.Name)
	for _, a := range doc.Atoms {
		if err := m.AddAtom(a); err != nil {
			return nil, fmt.Errorf("add atom %q: %w", a.ID, err)
		}
	}
	for _, b := range doc.Bonds {
		_ = m.AddBond(b) // dangling or malformed bonds degrade silently
	}
	return m, nil
}
