package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/molviz/molforge/pkg/errors"
	"github.com/molviz/molforge/pkg/mol"
	"github.com/molviz/molforge/pkg/molfile"
	"github.com/molviz/molforge/pkg/observability"
	"github.com/molviz/molforge/pkg/render/bondgraph"
)

// Export generates output artifacts for a laid-out molecule in the
// requested formats.
func Export(ctx context.Context, m *mol.Molecule, opts Options) (map[string][]byte, error) {
	opts.SetExportDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		data, err = exportFormat(m, format, opts)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInternal, err, "export %s", format)
			break
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func exportFormat(m *mol.Molecule, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return molfile.MarshalJSON(m)

	case FormatXYZ:
		var buf bytes.Buffer
		if err := molfile.WriteXYZ(m, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatSDF:
		var buf bytes.Buffer
		if err := molfile.WriteSDF(m, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatDOT:
		dot := bondgraph.ToDOT(m, bondgraph.Options{Detailed: opts.Detailed})
		return []byte(dot), nil

	case FormatSVG:
		dot := bondgraph.ToDOT(m, bondgraph.Options{Detailed: opts.Detailed})
		return bondgraph.RenderSVG(dot)

	case FormatPNG:
		dot := bondgraph.ToDOT(m, bondgraph.Options{Detailed: opts.Detailed})
		return bondgraph.RenderPNG(dot, 2.0)

	case FormatPDF:
		dot := bondgraph.ToDOT(m, bondgraph.Options{Detailed: opts.Detailed})
		return bondgraph.RenderPDF(dot)

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
