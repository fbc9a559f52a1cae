package molfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/molviz/molforge/pkg/mol"
)

// ReadXYZ parses an XYZ coordinate file: an atom count line, a comment line
// (used as the molecule name), then one "element x y z" line per atom.
//
// XYZ carries no atom identities, so each atom gets a fresh UUID. It also
// carries no bonds - the result is exactly the kind of bond-less,
// possibly-degenerate input the layout engine tolerates.
func ReadXYZ(r io.Reader) (*mol.Molecule, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, fmt.Errorf("xyz: missing atom count line")
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("xyz: parse atom count: %w", err)
	}

	name := ""
	if scanner.Scan() {
		name = strings.TrimSpace(scanner.Text())
	}

	m := mol.New(name)
	for i := 0; i < count && scanner.Scan(); i++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("xyz: line %d: want element and 3 coordinates, got %d fields", i+3, len(fields))
		}
		x, errX := strconv.ParseFloat(fields[1], 64)
		y, errY := strconv.ParseFloat(fields[2], 64)
		z, errZ := strconv.ParseFloat(fields[3], 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil, fmt.Errorf("xyz: line %d: unparseable coordinates", i+3)
		}
		if err := m.AddAtom(mol.Atom{
			ID:      uuid.NewString(),
			Element: fields[0],
			X:       x,
			Y:       y,
			Z:       z,
		}); err != nil {
			return nil, fmt.Errorf("xyz: line %d: %w", i+3, err)
		}
	}

	if m.AtomCount() < count {
		return nil, fmt.Errorf("xyz: expected %d atoms, file ends after %d", count, m.AtomCount())
	}
	return m, scanner.Err()
}

// ReadXYZFile reads an XYZ file from disk.
func ReadXYZFile(path string) (*mol.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadXYZ(f)
}

// WriteXYZ writes a molecule in XYZ format. Bonds are not representable in
// XYZ and are omitted.
func WriteXYZ(m *mol.Molecule, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", m.AtomCount(), m.Name)
	for _, a := range m.Atoms() {
		fmt.Fprintf(bw, "%-3s %12.6f %12.6f %12.6f\n", a.Element, a.X, a.Y, a.Z)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write xyz: %w", err)
	}
	return nil
}

// WriteXYZFile writes a molecule to an XYZ file at path.
func WriteXYZFile(m *mol.Molecule, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteXYZ(m, f)
}
