// Package sink writes Sankey scenes and positioned diagrams to output formats.
//
//   - [RenderSVG]: standalone SVG document
//   - [RenderHTML]: HTML page with the SVG inside a named container element
//   - [RenderJSON]: positioned geometry, for external tools
//   - [RenderPDF], [RenderPNG]: converted from the SVG (requires rsvg-convert)
//
// Sinks only serialize. Geometry, colors and labels are decided when the
// scene is built.
package sink
