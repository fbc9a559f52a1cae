package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/molviz/molforge/pkg/cache"
	"github.com/molviz/molforge/pkg/errors"
	"github.com/molviz/molforge/pkg/mol"
	"github.com/molviz/molforge/pkg/molfile"
	"github.com/molviz/molforge/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	m, err := Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.AtomCount = m.AtomCount()
	result.Stats.BondCount = m.BondCount()

	// Compute molecule hash for cache keys and API responses
	if molData, err := molfile.MarshalJSON(m); err == nil {
		result.MolHash = cache.Hash(molData)
	}

	r.Logger.Info("parsed molecule",
		"name", m.Name,
		"atoms", m.AtomCount(),
		"bonds", m.BondCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	laid, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, m, result.MolHash, opts)
	if err != nil {
		return nil, err
	}
	result.Molecule = laid
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"atoms", laid.AtomCount(),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, laid, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported outputs",
		"formats", strings.Join(opts.Formats, ","),
		"duration", result.Stats.ExportTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo runs the layout stage with caching and returns
// cache hit info. The molHash parameter is the content hash of the input
// molecule; pass an empty string to skip caching.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, m *mol.Molecule, molHash string, opts Options) (*mol.Molecule, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	configHash, err := opts.ConfigHash()
	if err != nil {
		return nil, false, err
	}

	var cacheKey string
	if molHash != "" {
		cacheKey = r.Keyer.LayoutKey(molHash, opts.LayoutKeyOpts(configHash))

		// Try cache first (unless refresh requested)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				if cached, err := molfile.ReadJSON(strings.NewReader(string(data))); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return cached, true, nil
				}
				// If deserialization fails, fall through to recompute
			}
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	laid, err := ComputeLayout(ctx, m, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if cacheKey != "" {
		if data, err := molfile.MarshalJSON(laid); err == nil {
			_ = cache.RetryWithBackoff(ctx, func() error {
				return r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			})
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return laid, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, m *mol.Molecule, opts Options) (*mol.Molecule, error) {
	laid, _, err := r.ComputeLayoutWithCacheInfo(ctx, m, "", opts)
	return laid, err
}

// ExportWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, m *mol.Molecule, opts Options) (map[string][]byte, bool, error) {
	opts.SetExportDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the laid-out molecule
	laidData, err := molfile.MarshalJSON(m)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize molecule for cache key")
	}
	laidHash := cache.Hash(laidData)

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(laidHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Export all formats
	exported, err := Export(ctx, m, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range exported {
		cacheKey := r.Keyer.ArtifactKey(laidHash, opts.ArtifactKeyOpts(format))
		_ = cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		})
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return exported, false, nil
}

// Export is a convenience wrapper that discards the cache hit info.
func (r *Runner) Export(ctx context.Context, m *mol.Molecule, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
