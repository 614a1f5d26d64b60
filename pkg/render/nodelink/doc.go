// Package nodelink renders a flow diagram as a Graphviz node-link graph.
//
// # Overview
//
// The node-link view draws the same nodes and links as the Sankey view, but
// as boxes joined by arrows, laid out left to right by Graphviz. Arrow
// thickness still follows link value, so the view is a quick cross-check of
// an adapted dataset.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Options
//
//   - Detailed: node labels add the category and throughput
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering (no Graphviz installation needed). PDF and PNG go through
// rsvg-convert.
package nodelink
