package pipeline

import (
	"context"
	"time"

	"github.com/molviz/molforge/pkg/layout"
	"github.com/molviz/molforge/pkg/mol"
	"github.com/molviz/molforge/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout runs the force-directed engine on a molecule.
// The input molecule is never mutated; the returned molecule carries the
// computed positions.
func ComputeLayout(ctx context.Context, m *mol.Molecule, opts Options) (*mol.Molecule, error) {
	opts.SetLayoutDefaults()

	cfg, err := opts.ResolveConfig()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, m.Name, m.AtomCount())

	engine := layout.New(layout.WithConfig(cfg), layout.WithSeed(opts.Seed))
	laid := engine.Layout(m, opts.Width, opts.Height)

	observability.Pipeline().OnLayoutComplete(ctx, m.Name, time.Since(start), nil)
	return laid, nil
}
