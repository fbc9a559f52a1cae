package bondgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/molviz/molforge/pkg/mol"
	"github.com/molviz/molforge/pkg/render"
)

// Options configures bond graph rendering.
type Options struct {
	// Detailed includes atom IDs and 3D coordinates in node labels.
	// When false, only the element symbol is shown.
	Detailed bool
}

// cpkColors maps common elements to their conventional CPK fill colors.
// Elements not listed fall back to white.
var cpkColors = map[string]string{
	"H":  "#ffffff",
	"C":  "#909090",
	"N":  "#3050f8",
	"O":  "#ff0d0d",
	"F":  "#90e050",
	"Cl": "#1ff01f",
	"Br": "#a62929",
	"I":  "#940094",
	"S":  "#ffff30",
	"P":  "#ff8000",
}

// ToDOT converts a molecule's bond topology to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
//
// Atoms are drawn as circles filled with their CPK color; double and triple
// bonds are drawn as parallel edge strokes.
func ToDOT(m *mol.Molecule, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=18, margin=\"0.05,0.05\"];\n")
	buf.WriteString("\n")

	for _, a := range m.Atoms() {
		label := fmtLabel(a, opts.Detailed)
		attrs := fmtAttrs(a, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", a.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, b := range m.Bonds() {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", b.From, b.To, edgeStyle(b.Order))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(a *mol.Atom, detailed bool) string {
	if !detailed {
		return a.Element
	}
	return fmt.Sprintf("%s\n%s\n(%.2f, %.2f, %.2f)", a.Element, a.ID, a.X, a.Y, a.Z)
}

func fmtAttrs(a *mol.Atom, label string) []string {
	fill, ok := cpkColors[a.Element]
	if !ok {
		fill = "#ffffff"
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", fill),
	}
}

// edgeStyle renders bond multiplicity as parallel Graphviz edge strokes.
func edgeStyle(order int) string {
	switch order {
	case mol.OrderDouble:
		return `color="black:black", penwidth=1.2`
	case mol.OrderTriple:
		return `color="black:black:black", penwidth=1.2`
	default:
		return "penwidth=1.5"
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
