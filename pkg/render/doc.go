// Package render holds the output stages shared by every diagram view.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG to other formats with the external
// rsvg-convert tool (from librsvg). Both the Sankey sinks and the node-link
// view go through them.
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Views
//
//   - [sankey]: the Sankey diagram (styles, scene, sinks)
//   - [nodelink]: a Graphviz node-link view of the same diagram
//
// [sankey]: github.com/jmuviz/sankeyflow/pkg/render/sankey
// [nodelink]: github.com/jmuviz/sankeyflow/pkg/render/nodelink
package render
