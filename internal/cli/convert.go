package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molviz/molforge/pkg/pipeline"
)

// convertCommand creates the convert command for molecule format conversion.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "convert [molecule.{json,xyz,sdf}]",
		Short: "Convert a molecule between file formats",
		Long: `Convert a molecule between file formats.

The convert command parses a molecule file and writes it back in one or more
other formats without running the layout engine. Atom positions are carried
over unchanged; converting to xyz drops bond information by nature of the
format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(formatsStr, pipeline.FormatJSON)
			for _, f := range opts.Formats {
				if err := pipeline.ValidateInputFormat(f); err != nil {
					return err
				}
			}
			return c.runConvert(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), xyz, sdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "override the molecule name")
	cmd.Flags().IntVar(&opts.Record, "record", 0, "record index for multi-record SD files (0-based)")

	return cmd
}

// runConvert parses the input molecule and exports it in the requested formats.
func (c *CLI) runConvert(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger

	m, err := pipeline.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", opts.Input, err)
	}
	c.Logger.Debugf("Parsed %s: %d atoms, %d bonds", opts.Input, m.AtomCount(), m.BondCount())

	artifacts, err := pipeline.Export(ctx, m, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, output, opts.Input)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Converted %s", m.Name)
	for _, p := range paths {
		printFile(p)
	}
	printStats(m.AtomCount(), m.BondCount(), false)

	return nil
}
