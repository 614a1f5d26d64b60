package pipeline

import (
	"context"
	"fmt"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/render/nodelink"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/scene"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/sink"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

// Render generates output artifacts in the requested formats. p may be nil
// for the node-link view.
func Render(ctx context.Context, d sankey.Diagram, p *layout.Positioned, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, d, opts)
	}
	if p == nil {
		return nil, sferrors.New(sferrors.ErrCodeInternal, "sankey render needs a layout")
	}
	return renderSankey(p, opts)
}

// renderSankey builds the scene once and hands it to every sink.
func renderSankey(p *layout.Positioned, opts Options) (map[string][]byte, error) {
	s := scene.Build(p, opts.SceneOptions())
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s)
		case FormatHTML:
			data, err = sink.RenderHTML(s, sink.HTMLOptions{Title: opts.Title, ContainerID: opts.ContainerID})
		case FormatJSON:
			data, err = sink.RenderJSON(p)
		case FormatPDF:
			data, err = sink.RenderPDF(s)
		case FormatPNG:
			data, err = sink.RenderPNG(s)
		default:
			return nil, sferrors.New(sferrors.ErrCodeInvalidFormat, "unsupported sankey format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates node-link outputs directly from the diagram.
func renderNodelink(ctx context.Context, d sankey.Diagram, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed, Colors: opts.ColorPolicy()})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, 2.0)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, sferrors.New(sferrors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
