package sink

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/scene"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/styles"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

func testDiagram() sankey.Diagram {
	return sankey.Diagram{
		Nodes: []sankey.Node{
			{Name: "JMU Student", Category: "student"},
			{Name: "Fall", Category: "semester"},
			{Name: "Spring", Category: "semester"},
			{Name: "Tuition", Title: "Tuition (Fall)", Category: "cost"},
			{Name: "Housing", Title: "Housing & Meals (Spring)", Category: "cost"},
		},
		Links: []sankey.Link{
			{Source: "JMU Student", Target: "Fall", Value: 1},
			{Source: "JMU Student", Target: "Spring", Value: 1},
			{Source: "Fall", Target: "Tuition", Value: 5000},
			{Source: "Spring", Target: "Housing", Value: 6000},
		},
	}
}

func testPositioned(t *testing.T) *layout.Positioned {
	t.Helper()
	p, err := layout.Compute(testDiagram(), layout.DefaultPolicy(928, 600))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return p
}

func testScene(t *testing.T, mode styles.LinkColor) scene.Scene {
	t.Helper()
	return scene.Build(testPositioned(t), scene.Options{Width: 928, Height: 600, LinkColor: mode})
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene(t, "")))

	wants := []string{
		`width="928" height="600" viewBox="0 0 928 600"`,
		`style="max-width: 100%; height: auto; font: 10px sans-serif;"`,
		`<g stroke="#000">`,
		`<g fill="none" stroke-opacity="0.5">`,
		`<g style="mix-blend-mode: multiply;">`,
		`<linearGradient id="link-0" gradientUnits="userSpaceOnUse"`,
		`<stop offset="0%" stop-color="#1f77b4"/>`,
		`<stop offset="100%" stop-color="#ff7f0e"/>`,
		`stroke="url(#link-3)"`,
		`dy="0.35em"`,
		`Housing &amp; Meals (Spring)`,
		`Fall → 5000 → Tuition (Fall)`,
		"<title>Spring → Housing &amp; Meals (Spring)&#xA;6,000</title>",
	}
	for _, w := range wants {
		if !strings.Contains(svg, w) {
			t.Errorf("SVG missing %q", w)
		}
	}
	if got := strings.Count(svg, "<rect "); got != 5 {
		t.Errorf("%d rects, want 5", got)
	}
	if got := strings.Count(svg, "<path "); got != 4 {
		t.Errorf("%d paths, want 4", got)
	}
	if got := strings.Count(svg, "<text "); got != 9 {
		t.Errorf("%d labels, want 9", got)
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG(testScene(t, ""))
	d := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVGFlatLinks(t *testing.T) {
	svg := string(RenderSVG(testScene(t, "#abcdef")))
	if strings.Contains(svg, "linearGradient") {
		t.Error("flat link color still emits gradients")
	}
	if got := strings.Count(svg, `stroke="#abcdef"`); got != 4 {
		t.Errorf("%d flat strokes, want 4", got)
	}
}

func TestRenderSVGMinimumStroke(t *testing.T) {
	s := scene.Scene{Width: 100, Height: 100, Links: []scene.Path{{D: "M0,0C1,0,1,0,2,0", Stroke: "#000", Width: 1}}}
	if svg := string(RenderSVG(s)); !strings.Contains(svg, `stroke-width="1"`) {
		t.Errorf("SVG = %s", svg)
	}
}

func TestRenderHTML(t *testing.T) {
	s := testScene(t, "")

	page, err := RenderHTML(s, HTMLOptions{})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, `<div id="my_dataviz">`) {
		t.Error("page missing default container")
	}
	if !strings.Contains(html, "<title>Sankey Diagram</title>") {
		t.Error("page missing default title")
	}
	div := strings.Index(html, `<div id="my_dataviz">`)
	svg := strings.Index(html, "<svg ")
	if svg < div {
		t.Error("svg is not inside the container")
	}

	page, err = RenderHTML(s, HTMLOptions{Title: "Costs <2024>", ContainerID: "chart"})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html = string(page)
	if !strings.Contains(html, `<div id="chart">`) || !strings.Contains(html, "Costs &lt;2024&gt;") {
		t.Errorf("custom options not applied:\n%s", html)
	}

	_, err = RenderHTML(s, HTMLOptions{ContainerID: `x" onload="alert(1)`})
	if !sferrors.Is(err, sferrors.ErrCodeInvalidInput) {
		t.Errorf("bad container id error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testPositioned(t))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out.Nodes) != 5 || len(out.Links) != 4 {
		t.Fatalf("got %d nodes, %d links", len(out.Nodes), len(out.Links))
	}
	if out.Columns != 3 {
		t.Errorf("columns = %d, want 3", out.Columns)
	}
	if n := out.Nodes[0]; n.Name != "JMU Student" || n.Title != "JMU Student" || n.Layer != 0 {
		t.Errorf("first node = %+v", n)
	}
	if l := out.Links[2]; l.Source != "Fall" || l.Target != "Tuition" || l.Value != 5000 {
		t.Errorf("third link = %+v", l)
	}
	for _, n := range out.Nodes {
		if n.Y1 < n.Y0 || n.X1 <= n.X0 {
			t.Errorf("node %s has an empty box: %+v", n.Name, n)
		}
	}
}
