package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/render"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/styles"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
)

// Edge pen widths, in points.
const (
	minPenWidth = 1.0
	maxPenWidth = 12.0
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each node's category and throughput to its label.
	Detailed bool
	// Colors fills nodes by category. Nil leaves them white.
	Colors styles.ColorPolicy
}

// ToDOT converts d to Graphviz DOT source. Edge pen widths are scaled so the
// largest link gets the widest pen.
func ToDOT(d sankey.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#00000080\", fontsize=10];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	in, out := throughput(d)
	for _, n := range d.Nodes {
		label := fmtLabel(n, max(in[n.Name], out[n.Name]), opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if opts.Colors != nil {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", opts.Colors.Color(n.Category)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	var peak float64
	for _, l := range d.Links {
		peak = max(peak, l.Value)
	}

	buf.WriteString("\n")
	for _, l := range d.Links {
		fmt.Fprintf(&buf, "  %q -> %q [penwidth=%s, label=%q];\n",
			l.Source, l.Target, strconv.FormatFloat(penWidth(l.Value, peak), 'f', 2, 64), styles.FormatValue(l.Value))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func throughput(d sankey.Diagram) (in, out map[string]float64) {
	in = make(map[string]float64, len(d.Nodes))
	out = make(map[string]float64, len(d.Nodes))
	for _, l := range d.Links {
		out[l.Source] += l.Value
		in[l.Target] += l.Value
	}
	return in, out
}

func penWidth(v, peak float64) float64 {
	if peak <= 0 {
		return minPenWidth
	}
	return minPenWidth + (maxPenWidth-minPenWidth)*v/peak
}

func fmtLabel(n sankey.Node, value float64, detailed bool) string {
	title := n.DisplayTitle()
	if !detailed {
		return title
	}
	parts := []string{title}
	if n.Category != "" {
		parts = append(parts, "category: "+n.Category)
	}
	parts = append(parts, "value: "+styles.FormatValue(value))
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based root element with one
// whose viewBox starts at the origin and whose size is in pixels.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
