// Package sankey renders a positioned Sankey diagram.
//
// Rendering happens in three steps, each in its own subpackage:
//
//   - [styles]: color policy and text formatting
//   - [scene]: turns a [layout.Positioned] diagram into a flat list of shapes
//   - [sink]: writes a scene as SVG, an HTML page, PDF or PNG, and the
//     positioned diagram as JSON
//
// A scene is plain data. Sinks only format it; they make no layout or color
// decisions of their own.
//
//	p, _ := layout.Compute(d, layout.DefaultPolicy(928, 600))
//	s := scene.Build(p, scene.Options{Width: 928, Height: 600})
//	svg := sink.RenderSVG(s)
//
// [styles]: github.com/jmuviz/sankeyflow/pkg/render/sankey/styles
// [scene]: github.com/jmuviz/sankeyflow/pkg/render/sankey/scene
// [sink]: github.com/jmuviz/sankeyflow/pkg/render/sankey/sink
// [layout.Positioned]: github.com/jmuviz/sankeyflow/pkg/sankey/layout.Positioned
package sankey
