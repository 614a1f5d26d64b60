// Package scene turns a positioned Sankey diagram into drawable shapes.
//
// [Build] is pure: the same diagram and options always produce the same
// scene, including colors and gradient ids. Sinks in the sink package
// serialize a scene without further decisions.
package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jmuviz/sankeyflow/pkg/render/sankey/styles"
	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

// AutoPrefix asks [Build] to derive the gradient id prefix from the diagram
// content, so several diagrams can share one document.
const AutoPrefix = "auto"

// Label geometry.
const (
	LabelOffset = 6
	LabelDY     = "0.35em"
)

// Options control how a scene is built.
type Options struct {
	Width, Height float64            // Canvas size
	Colors        styles.ColorPolicy // Node fills; nil selects a fresh category10 scale
	LinkColor     styles.LinkColor
	IDPrefix      string // Prepended to gradient ids; AutoPrefix derives one
}

// Scene is a flat, ordered list of shapes.
type Scene struct {
	Width, Height float64
	Nodes         []Rect
	Links         []Path
	NodeLabels    []Text
	LinkLabels    []Text
}

// Rect is a node rectangle.
type Rect struct {
	Name       string
	X, Y, W, H float64
	Fill       string
	Title      string // Tooltip
}

// Gradient is a horizontal two-stop linear gradient in user space.
type Gradient struct {
	ID       string
	X1, X2   float64
	From, To string
}

// Path is a link ribbon drawn as a thick stroked curve.
type Path struct {
	D        string
	Stroke   string
	Width    float64
	Title    string    // Tooltip
	Gradient *Gradient // Set when Stroke references a gradient
}

// Text is a label anchored at (X, Y).
type Text struct {
	X, Y   float64
	Anchor string // "start" or "end"
	Text   string
}

// Build lays out the shapes for p.
func Build(p *layout.Positioned, opts Options) Scene {
	colors := opts.Colors
	if colors == nil {
		colors = styles.NewOrdinal(styles.Category10)
	}
	prefix := opts.IDPrefix
	if prefix == AutoPrefix {
		prefix = ContentPrefix(p)
	}

	// Walk nodes first so color assignment follows node order only.
	for _, n := range p.Nodes {
		colors.Color(n.Category)
	}

	s := Scene{
		Width:      opts.Width,
		Height:     opts.Height,
		Nodes:      make([]Rect, 0, len(p.Nodes)),
		Links:      make([]Path, 0, len(p.Links)),
		NodeLabels: make([]Text, 0, len(p.Nodes)),
		LinkLabels: make([]Text, 0, len(p.Links)),
	}

	for _, n := range p.Nodes {
		s.Nodes = append(s.Nodes, Rect{
			Name:  n.Name,
			X:     n.X0,
			Y:     n.Y0,
			W:     n.X1 - n.X0,
			H:     n.Y1 - n.Y0,
			Fill:  colors.Color(n.Category),
			Title: n.Name + "\n" + styles.FormatValue(n.Value),
		})
		x, anchor := NodeLabelPosition(n, opts.Width)
		s.NodeLabels = append(s.NodeLabels, Text{
			X:      x,
			Y:      (n.Y0 + n.Y1) / 2,
			Anchor: anchor,
			Text:   n.DisplayTitle(),
		})
	}

	for _, l := range p.Links {
		src, dst := colors.Color(l.Source.Category), colors.Color(l.Target.Category)
		path := Path{
			D:     HorizontalLink(l),
			Width: max(1, l.Width),
			Title: fmt.Sprintf("%s → %s\n%s", l.Source.DisplayTitle(), l.Target.DisplayTitle(), styles.FormatValue(l.Value)),
		}
		if opts.LinkColor.Gradient() {
			g := &Gradient{
				ID:   fmt.Sprintf("%slink-%d", prefix, l.Index),
				X1:   l.Source.X1,
				X2:   l.Target.X0,
				From: src,
				To:   dst,
			}
			path.Gradient = g
			path.Stroke = "url(#" + g.ID + ")"
		} else {
			path.Stroke = opts.LinkColor.Stroke(src, dst)
		}
		s.Links = append(s.Links, path)

		x, anchor := LinkLabelPosition(l, opts.Width)
		s.LinkLabels = append(s.LinkLabels, Text{
			X:      x,
			Y:      (l.Y0 + l.Y1) / 2,
			Anchor: anchor,
			Text:   fmt.Sprintf("%s → %s → %s", l.Source.DisplayTitle(), styles.FormatRaw(l.Value), l.Target.DisplayTitle()),
		})
	}
	return s
}

// NodeLabelPosition places a node label beside the rectangle, facing the
// centre of the canvas.
func NodeLabelPosition(n *layout.Node, width float64) (x float64, anchor string) {
	if n.X0 < width/2 {
		return n.X1 + LabelOffset, "start"
	}
	return n.X0 - LabelOffset, "end"
}

// LinkLabelPosition places a link label at the link's horizontal midpoint,
// facing the centre of the canvas.
func LinkLabelPosition(l *layout.Link, width float64) (x float64, anchor string) {
	mid := (l.Source.X1 + l.Target.X0) / 2
	if mid < width/2 {
		return mid + LabelOffset, "start"
	}
	return mid - LabelOffset, "end"
}

// HorizontalLink returns the SVG path of a link's centre line: a cubic
// curve leaving the source horizontally and entering the target horizontally.
func HorizontalLink(l *layout.Link) string {
	x0, x1 := l.Source.X1, l.Target.X0
	mx := (x0 + x1) / 2
	c := styles.FormatCoord
	return fmt.Sprintf("M%s,%sC%s,%s,%s,%s,%s,%s",
		c(x0), c(l.Y0), c(mx), c(l.Y0), c(mx), c(l.Y1), c(x1), c(l.Y1))
}

// ContentPrefix derives a gradient id prefix from the diagram's node and
// link identities. Equal diagrams get equal prefixes.
func ContentPrefix(p *layout.Positioned) string {
	var sb strings.Builder
	for _, n := range p.Nodes {
		fmt.Fprintf(&sb, "n:%s\x00", n.Name)
	}
	for _, l := range p.Links {
		fmt.Fprintf(&sb, "l:%s\x00%s\x00%s\x00", l.Source.Name, l.Target.Name, styles.FormatRaw(l.Value))
	}
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(sb.String()))
	return "sankey-" + strings.SplitN(id.String(), "-", 2)[0] + "-"
}
