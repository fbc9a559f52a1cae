package pipeline

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/molviz/molforge/pkg/errors"
	"github.com/molviz/molforge/pkg/mol"
	"github.com/molviz/molforge/pkg/molfile"
	"github.com/molviz/molforge/pkg/observability"
)

// Parse reads a molecule from the configured input.
//
// The input format is taken from opts.Format, falling back to the file
// extension of opts.Input. For SD files carrying several records,
// opts.Record selects which molecule to return.
func Parse(ctx context.Context, opts Options) (*mol.Molecule, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.Format, opts.Input)

	m, err := parse(opts)

	atoms := 0
	if m != nil {
		atoms = m.AtomCount()
	}
	observability.Pipeline().OnParseComplete(ctx, opts.Format, opts.Input, atoms, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if opts.Name != "" {
		m.Name = opts.Name
	}
	return m, nil
}

func parse(opts Options) (*mol.Molecule, error) {
	content := opts.Content
	if content == "" {
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", opts.Input)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input %s", opts.Input)
		}
		content = string(data)
	}

	r := strings.NewReader(content)
	switch opts.Format {
	case FormatJSON:
		m, err := molfile.ReadJSON(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMolecule, err, "parse JSON molecule")
		}
		return m, nil

	case FormatXYZ:
		m, err := molfile.ReadXYZ(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMolecule, err, "parse XYZ molecule")
		}
		return m, nil

	case FormatSDF:
		mols, err := molfile.ReadSDFAll(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMolecule, err, "parse SD file")
		}
		if len(mols) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidMolecule, "SD file contains no molecules")
		}
		if opts.Record >= len(mols) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"record %d out of range (file has %d molecules)", opts.Record, len(mols))
		}
		return mols[opts.Record], nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format: %q", opts.Format)
	}
}
