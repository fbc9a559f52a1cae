// Package render provides output rendering for laid-out molecules.
//
// # Overview
//
// This package contains the rendering helpers that turn molecules into
// visual artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Bond topology diagrams (in [bondgraph] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := bondgraph.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Bond Topology Diagrams
//
// The [bondgraph] subpackage renders a molecule's bond topology as an
// undirected graph using Graphviz. Atoms appear as circles connected by
// edges whose thickness reflects the bond order.
//
//	dot := bondgraph.ToDOT(m, bondgraph.Options{})
//	svg, err := bondgraph.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [bondgraph]: github.com/molviz/molforge/pkg/render/bondgraph
package render
