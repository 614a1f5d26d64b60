package sink

import (
	"bytes"
	"fmt"

	"github.com/jmuviz/sankeyflow/pkg/render/sankey/scene"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/styles"
)

const svgStyle = "max-width: 100%; height: auto; font: 10px sans-serif;"

// RenderSVG writes s as an SVG document.
func RenderSVG(s scene.Scene) []byte {
	var buf bytes.Buffer
	w, h := num(s.Width), num(s.Height)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" style="%s">`+"\n",
		w, h, w, h, svgStyle)

	renderNodes(&buf, s.Nodes)
	renderLinks(&buf, s.Links)
	renderLabels(&buf, s.NodeLabels)
	renderLabels(&buf, s.LinkLabels)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNodes(buf *bytes.Buffer, rects []scene.Rect) {
	buf.WriteString(`  <g stroke="#000">` + "\n")
	for _, r := range rects {
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" height="%s" width="%s" fill="%s"><title>%s</title></rect>`+"\n",
			num(r.X), num(r.Y), num(r.H), num(r.W), styles.EscapeXML(r.Fill), styles.EscapeXML(r.Title))
	}
	buf.WriteString("  </g>\n")
}

func renderLinks(buf *bytes.Buffer, paths []scene.Path) {
	buf.WriteString(`  <g fill="none" stroke-opacity="0.5">` + "\n")
	for _, p := range paths {
		buf.WriteString(`    <g style="mix-blend-mode: multiply;">` + "\n")
		if g := p.Gradient; g != nil {
			fmt.Fprintf(buf, `      <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" x2="%s">`+"\n",
				styles.EscapeXML(g.ID), num(g.X1), num(g.X2))
			fmt.Fprintf(buf, `        <stop offset="0%%" stop-color="%s"/>`+"\n", styles.EscapeXML(g.From))
			fmt.Fprintf(buf, `        <stop offset="100%%" stop-color="%s"/>`+"\n", styles.EscapeXML(g.To))
			buf.WriteString("      </linearGradient>\n")
		}
		fmt.Fprintf(buf, `      <path d="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			p.D, styles.EscapeXML(p.Stroke), num(p.Width))
		fmt.Fprintf(buf, "      <title>%s</title>\n", styles.EscapeXML(p.Title))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderLabels(buf *bytes.Buffer, labels []scene.Text) {
	buf.WriteString("  <g>\n")
	for _, t := range labels {
		fmt.Fprintf(buf, `    <text x="%s" y="%s" dy="%s" text-anchor="%s">%s</text>`+"\n",
			num(t.X), num(t.Y), scene.LabelDY, t.Anchor, styles.EscapeXML(t.Text))
	}
	buf.WriteString("  </g>\n")
}

func num(v float64) string { return styles.FormatCoord(v) }
