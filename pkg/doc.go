// Package pkg provides the core libraries for Molforge molecular layout.
//
// # Overview
//
// Molforge computes force-directed 3D layouts for molecules: atoms repel
// each other, bonds act as springs with order-dependent rest lengths, and an
// annealed integrator settles the system into a readable conformation. The
// pkg directory is organized into five main areas:
//
//  1. [mol] - Molecule domain model (atoms, bonds, adjacency)
//  2. [molfile] - File formats (JSON, XYZ, SD)
//  3. [layout] - Force-directed layout engine and force-field configuration
//  4. [render] - Bond graph rendering via Graphviz
//  5. [pipeline] - Orchestration (parse → layout → export)
//
// # Architecture
//
// The typical data flow through Molforge:
//
//	JSON/XYZ/SD input
//	         ↓
//	    [molfile] package (parse into a molecule)
//	         ↓
//	    [mol] package (graph structure + positions)
//	         ↓
//	    [layout] package (force-directed 3D layout)
//	         ↓
//	    [render/bondgraph] package (DOT/SVG/PNG/PDF) or [molfile] (JSON/XYZ/SD)
//
// # Quick Start
//
// Parse a molecule, lay it out, and render the bond graph:
//
//	import (
//	    "github.com/molviz/molforge/pkg/layout"
//	    "github.com/molviz/molforge/pkg/molfile"
//	    "github.com/molviz/molforge/pkg/render/bondgraph"
//	)
//
//	// 1. Parse
//	m, _ := molfile.ReadJSONFile("water.json")
//
//	// 2. Compute layout
//	engine := layout.New(layout.WithSeed(42))
//	laid, _ := engine.Layout(m, 800, 600)
//
//	// 3. Render to SVG
//	dot := bondgraph.ToDOT(laid, bondgraph.Options{})
//	svg, _ := bondgraph.RenderSVG(dot)
//
// # Main Packages
//
// [mol] - Molecule graph with insertion-ordered atoms, typed bonds
// (single, double, triple), and adjacency queries.
//
// [molfile] - Readers and writers for the JSON document format, XYZ
// coordinate files, and multi-record SD files.
//
// [layout] - The force-directed engine. Forces are inverse-square repulsion,
// Hookean bond springs, and a weak centering pull; integration is velocity
// clamped to a geometrically cooling temperature. Force-field parameters
// load from TOML.
//
// [render/bondgraph] - CPK-colored bond graph diagrams using Graphviz.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// [pipeline] - Complete layout pipeline (parse → layout → export) used by
// CLI and API. Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed result cache with file and Redis backends.
//
// [errors] - Coded errors mapped to HTTP statuses by the API layer.
//
// [observability] - Pluggable hooks for pipeline, cache, and server events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example        # Examples only
//
// [mol]: https://pkg.go.dev/github.com/molviz/molforge/pkg/mol
// [molfile]: https://pkg.go.dev/github.com/molviz/molforge/pkg/molfile
// [layout]: https://pkg.go.dev/github.com/molviz/molforge/pkg/layout
// [render]: https://pkg.go.dev/github.com/molviz/molforge/pkg/render
// [render/bondgraph]: https://pkg.go.dev/github.com/molviz/molforge/pkg/render/bondgraph
// [pipeline]: https://pkg.go.dev/github.com/molviz/molforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/molviz/molforge/pkg/cache
// [errors]: https://pkg.go.dev/github.com/molviz/molforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/molviz/molforge/pkg/observability
package pkg
