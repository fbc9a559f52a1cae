// Package pipeline provides the core layout pipeline for Molforge.
//
// This package implements the complete parse → layout → export pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read a molecule from a file or raw content (JSON, XYZ, SDF)
//  2. Layout: Compute 3D positions with the force-directed engine
//  3. Export: Generate output in various formats (JSON, XYZ, SDF, DOT, SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "caffeine.sdf",
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Parse only
//	m, err := pipeline.Parse(ctx, opts)
//
//	// Layout with existing molecule
//	laid, err := runner.ComputeLayout(ctx, m, opts)
//
//	// Export with existing layout
//	artifacts, err := runner.Export(ctx, laid, opts)
package pipeline

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/molviz/molforge/pkg/cache"
	"github.com/molviz/molforge/pkg/errors"
	"github.com/molviz/molforge/pkg/layout"
	"github.com/molviz/molforge/pkg/mol"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWidth is the default frame width passed to the layout engine.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height passed to the layout engine.
	DefaultHeight = 600.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Input format constants.
const (
	FormatJSON = "json"
	FormatXYZ  = "xyz"
	FormatSDF  = "sdf"
)

// Output-only format constants.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidInputFormats is the set of supported molecule input formats.
var ValidInputFormats = map[string]bool{
	FormatJSON: true,
	FormatXYZ:  true,
	FormatSDF:  true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatXYZ:  true,
	FormatSDF:  true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Input   string `json:"input,omitempty"`   // Path to the input file
	Content string `json:"content,omitempty"` // Raw file content (used instead of Input)
	Format  string `json:"format,omitempty"`  // Input format; inferred from Input's extension when empty
	Name    string `json:"name,omitempty"`    // Override for the molecule name
	Record  int    `json:"record,omitempty"`  // SD file record index (0-based)

	// Layout options
	ConfigPath string  `json:"config_path,omitempty"` // Force-field TOML file; defaults apply when empty
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Detailed labels in DOT/SVG output

	// Refresh bypasses cached layout and artifact results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Config *layout.Config `json:"-"` // Explicit engine config; overrides ConfigPath

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Molecule is the laid-out molecule.
	Molecule *mol.Molecule

	// MolHash is the content hash of the input molecule.
	MolHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AtomCount  int
	BondCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout result came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, xyz, sdf, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateInputFormat checks that an input format is valid.
func ValidateInputFormat(format string) error {
	if !ValidInputFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid input format: %q (must be one of: json, xyz, sdf)", format)
	}
	return nil
}

// DetectFormat infers the input format from a file extension.
// Returns an empty string when the extension is unknown.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".xyz":
		return FormatXYZ
	case ".sdf", ".sd", ".mol":
		return FormatSDF
	default:
		return ""
	}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetExportDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Input == "" && o.Content == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file or content is required")
	}
	if o.Format == "" {
		o.Format = DetectFormat(o.Input)
	}
	if err := ValidateInputFormat(o.Format); err != nil {
		return err
	}
	if o.Record < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "record index cannot be negative")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ResolveConfig returns the engine configuration for this run.
// Precedence: explicit Config, then ConfigPath, then defaults.
func (o *Options) ResolveConfig() (layout.Config, error) {
	if o.Config != nil {
		return *o.Config, o.Config.Validate()
	}
	if o.ConfigPath != "" {
		cfg, err := layout.LoadConfig(o.ConfigPath)
		if err != nil {
			return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err,
				"load force-field config %s", o.ConfigPath)
		}
		return cfg, nil
	}
	return layout.DefaultConfig(), nil
}

// ConfigHash returns the content hash of the resolved engine configuration.
func (o *Options) ConfigHash() (string, error) {
	cfg, err := o.ResolveConfig()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(configHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ConfigHash: configHash,
		Seed:       o.Seed,
		Width:      o.Width,
		Height:     o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact export.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
