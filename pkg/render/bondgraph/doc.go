// Package bondgraph renders molecules as 2D bond topology diagrams.
//
// # Overview
//
// This package produces undirected graph visualizations using Graphviz,
// where atoms appear as circles connected by bond edges. It complements the
// 3D layout pipeline: the diagram shows connectivity rather than geometry,
// which is useful for checking a parsed molecule before running a layout.
//
// # Usage
//
// Convert a molecule to DOT format, then render to SVG:
//
//	dot := bondgraph.ToDOT(m, bondgraph.Options{Detailed: false})
//	svg, err := bondgraph.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := bondgraph.RenderPDF(dot)
//	png, err := bondgraph.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the atom ID and coordinates
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses the neato engine with circular nodes filled in
// conventional CPK element colors. Double and triple bonds are drawn as
// parallel edge strokes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package bondgraph
