package molfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/molviz/molforge/pkg/mol"
)

// recordSeparator terminates one record in a multi-molecule SD file.
const recordSeparator = "$$$$"

// ReadSDF parses the first molecule of an SDF stream (MOL V2000).
func ReadSDF(r io.Reader) (*mol.Molecule, error) {
	mols, err := ReadSDFAll(r)
	if err != nil {
		return nil, err
	}
	if len(mols) == 0 {
		return nil, fmt.Errorf("sdf: no molecules in input")
	}
	return mols[0], nil
}

// ReadSDFAll parses every record of an SD file. Records are separated by
// "$$$$" lines; a file without separators is a single record.
//
// Atom IDs are synthesized as "a1".."aN" from the 1-based connection-table
// index, which is also how the bond block references atoms. Bonds pointing
// outside the atom block and bonds with orders other than 1-3 are skipped;
// the layout engine treats them as missing constraints anyway.
func ReadSDFAll(r io.Reader) ([]*mol.Molecule, error) {
	scanner := bufio.NewScanner(r)
	var (
		mols   []*mol.Molecule
		record []string
	)

	flush := func() error {
		if isBlank(record) {
			record = nil
			return nil
		}
		m, err := parseMolBlock(record)
		if err != nil {
			return err
		}
		mols = append(mols, m)
		record = nil
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == recordSeparator {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		record = append(record, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sdf: read: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return mols, nil
}

// ReadSDFFile reads an SD file from disk and returns all of its records.
func ReadSDFFile(path string) ([]*mol.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSDFAll(f)
}

// parseMolBlock parses one MOL V2000 connection table.
// Layout: name line, program line, comment line, counts line, atom block,
// bond block, properties until "M  END".
func parseMolBlock(lines []string) (*mol.Molecule, error) {
	if len(lines) < 4 {
		return nil, fmt.Errorf("sdf: truncated mol block (%d lines)", len(lines))
	}

	name := strings.TrimSpace(lines[0])
	counts := lines[3]
	if len(counts) < 6 {
		return nil, fmt.Errorf("sdf: counts line too short: %q", counts)
	}
	atomCount, err := strconv.Atoi(strings.TrimSpace(counts[0:3]))
	if err != nil {
		return nil, fmt.Errorf("sdf: parse atom count: %w", err)
	}
	bondCount, err := strconv.Atoi(strings.TrimSpace(counts[3:6]))
	if err != nil {
		return nil, fmt.Errorf("sdf: parse bond count: %w", err)
	}
	if len(lines) < 4+atomCount+bondCount {
		return nil, fmt.Errorf("sdf: block has %d lines, counts promise %d atoms and %d bonds",
			len(lines), atomCount, bondCount)
	}

	m := mol.New(name)
	for i := 0; i < atomCount; i++ {
		fields := strings.Fields(lines[4+i])
		if len(fields) < 4 {
			return nil, fmt.Errorf("sdf: atom line %d: want x y z element", i+1)
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		z, errZ := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil, fmt.Errorf("sdf: atom line %d: unparseable coordinates", i+1)
		}
		if err := m.AddAtom(mol.Atom{
			ID:      atomID(i + 1),
			Element: fields[3],
			X:       x,
			Y:       y,
			Z:       z,
		}); err != nil {
			return nil, fmt.Errorf("sdf: atom line %d: %w", i+1, err)
		}
	}

	for i := 0; i < bondCount; i++ {
		line := lines[4+atomCount+i]
		from, to, order, ok := parseBondLine(line)
		if !ok {
			continue
		}
		_ = m.AddBond(mol.Bond{From: atomID(from), To: atomID(to), Order: order})
	}

	return m, nil
}

// parseBondLine reads the fixed-width V2000 bond columns (3+3+3), falling
// back to whitespace splitting for hand-written files.
func parseBondLine(line string) (from, to, order int, ok bool) {
	var f, t, o string
	if len(line) >= 9 {
		f, t, o = line[0:3], line[3:6], line[6:9]
	} else {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return 0, 0, 0, false
		}
		f, t, o = fields[0], fields[1], fields[2]
	}

	from, errF := strconv.Atoi(strings.TrimSpace(f))
	to, errT := strconv.Atoi(strings.TrimSpace(t))
	order, errO := strconv.Atoi(strings.TrimSpace(o))
	if errF != nil || errT != nil || errO != nil {
		return 0, 0, 0, false
	}
	return from, to, order, true
}

func atomID(index int) string { return "a" + strconv.Itoa(index) }

func isBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// WriteSDF writes a molecule as a single-record SD file (MOL V2000).
// Atom order follows insertion order; bond indices are rebuilt from it.
func WriteSDF(m *mol.Molecule, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n  molforge\n\n", m.Name)
	fmt.Fprintf(bw, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", m.AtomCount(), m.BondCount())

	index := make(map[string]int, m.AtomCount())
	for i, a := range m.Atoms() {
		index[a.ID] = i + 1
		fmt.Fprintf(bw, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n",
			a.X, a.Y, a.Z, a.Element)
	}
	for _, b := range m.Bonds() {
		fmt.Fprintf(bw, "%3d%3d%3d  0\n", index[b.From], index[b.To], b.Order)
	}

	fmt.Fprintf(bw, "M  END\n%s\n", recordSeparator)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write sdf: %w", err)
	}
	return nil
}

// WriteSDFFile writes a molecule to an SD file at path.
func WriteSDFFile(m *mol.Molecule, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSDF(m, f)
}
