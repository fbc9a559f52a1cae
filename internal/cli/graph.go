package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molviz/molforge/pkg/errors"
	"github.com/molviz/molforge/pkg/pipeline"
)

// graphFormats is the set of formats the graph command can produce.
var graphFormats = map[string]bool{
	pipeline.FormatDOT: true,
	pipeline.FormatSVG: true,
	pipeline.FormatPNG: true,
	pipeline.FormatPDF: true,
}

// graphCommand creates the graph command for rendering bond topology.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "graph [molecule.{json,xyz,sdf}]",
		Short: "Render a molecule's bond graph",
		Long: `Render a molecule's bond graph.

The graph command parses a molecule file and renders its bond topology as a
Graphviz diagram. Atoms become CPK-colored nodes and bonds become edges, with
double and triple bonds drawn as parallel strokes. Output formats are dot,
svg, png, and pdf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(formatsStr, pipeline.FormatSVG)
			for _, f := range opts.Formats {
				if !graphFormats[f] {
					return errors.New(errors.ErrCodeInvalidFormat,
						"invalid graph format: %s (must be 'dot', 'svg', 'png', or 'pdf')", f)
				}
			}
			return c.runGraph(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show atom IDs and coordinates in node labels")
	cmd.Flags().StringVar(&opts.Name, "name", "", "override the molecule name")
	cmd.Flags().IntVar(&opts.Record, "record", 0, "record index for multi-record SD files (0-based)")

	return cmd
}

// runGraph parses the input molecule and renders its bond graph.
func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, output string) error {
	ctx = withLogger(ctx, c.Logger)
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	m, err := pipeline.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", opts.Input, err)
	}
	logger.Debugf("Parsed %s: %d atoms, %d bonds", opts.Input, m.AtomCount(), m.BondCount())

	artifacts, err := pipeline.Export(ctx, m, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	p.done(fmt.Sprintf("Rendered bond graph for %s", m.Name))

	paths, err := writeArtifacts(artifacts, opts.Formats, output, opts.Input)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Graph rendered")
	for _, path := range paths {
		printFile(path)
	}
	printStats(m.AtomCount(), m.BondCount(), false)

	return nil
}
