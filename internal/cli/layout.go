package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molviz/molforge/pkg/pipeline"
)

// layoutCommand creates the layout command for computing molecular layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{
		Width:  pipeline.DefaultWidth,
		Height: pipeline.DefaultHeight,
		Seed:   pipeline.DefaultSeed,
	}

	cmd := &cobra.Command{
		Use:   "layout [molecule.{json,xyz,sdf}]",
		Short: "Compute a 3D layout for a molecule",
		Long: `Compute a 3D layout for a molecule.

The layout command parses a molecule file, runs the force-directed layout
engine (N-body repulsion, bond springs, annealed integration), and exports
the laid-out molecule in one or more formats.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(formatsStr, pipeline.FormatJSON)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), xyz, sdf, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	// Parse flags
	cmd.Flags().StringVar(&opts.Name, "name", "", "override the molecule name")
	cmd.Flags().IntVar(&opts.Record, "record", 0, "record index for multi-record SD files (0-based)")

	// Layout flags
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "force-field TOML config file")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed for reproducible layouts")

	// Export flags
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "detailed labels in dot/svg output")

	return cmd
}

// runLayout executes the full parse-layout-export pipeline and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, opts.Input)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.AtomCount, result.Stats.BondCount, result.CacheInfo.LayoutHit)
	if len(paths) == 1 && pipeline.ValidInputFormats[opts.Formats[0]] {
		printNewline()
		printNextStep("Render", "molforge graph "+paths[0]+" -f svg")
	}

	return nil
}
