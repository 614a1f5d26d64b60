// Package pkg holds the sankeyflow libraries.
//
// # Overview
//
// Sankeyflow turns JSON flow datasets into Sankey diagrams. The packages
// follow the data through the pipeline:
//
//	JSON documents
//	     ↓
//	[dataset] (decode and adapt into a diagram)
//	     ↓
//	[sankey] (nodes, links, validation)
//	     ↓
//	[sankey/layout] (columns, node rectangles, link geometry)
//	     ↓
//	[render/sankey/scene] (shapes, colors, labels)
//	     ↓
//	[render/sankey/sink] (SVG, HTML, JSON, PDF, PNG)
//
// [pipeline] runs these stages with validated options; [config] loads the
// same options from a TOML or YAML file. [render/nodelink] draws the plain
// graph through Graphviz. [errors] defines the coded errors every stage
// returns and [observability] the hooks every stage reports to.
//
// # Quick Start
//
//	doc, _ := dataset.LoadJMU("data/jmu.json")
//	d := dataset.StudentCosts(doc, dataset.Options{})
//	if err := d.Validate(); err != nil {
//	    return err
//	}
//	p, _ := layout.Compute(d, layout.DefaultPolicy(928, 600))
//	s := scene.Build(p, scene.Options{Width: 928, Height: 600})
//	svg := sink.RenderSVG(s)
package pkg
