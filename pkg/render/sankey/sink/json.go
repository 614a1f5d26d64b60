package sink

import (
	"encoding/json"

	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

type jsonOutput struct {
	Extent  layout.Extent `json:"extent"`
	Columns int           `json:"columns"`
	Padding float64       `json:"padding"`
	Nodes   []jsonNode    `json:"nodes"`
	Links   []jsonLink    `json:"links"`
}

type jsonNode struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value"`
	Depth    int     `json:"depth"`
	Height   int     `json:"height"`
	Layer    int     `json:"layer"`
	X0       float64 `json:"x0"`
	X1       float64 `json:"x1"`
	Y0       float64 `json:"y0"`
	Y1       float64 `json:"y1"`
}

type jsonLink struct {
	Index  int     `json:"index"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
	Width  float64 `json:"width"`
	Y0     float64 `json:"y0"`
	Y1     float64 `json:"y1"`
}

// RenderJSON exports the positioned diagram. Links refer to nodes by name.
func RenderJSON(p *layout.Positioned) ([]byte, error) {
	out := jsonOutput{
		Extent:  p.Extent,
		Columns: p.Columns,
		Padding: p.Padding,
		Nodes:   make([]jsonNode, 0, len(p.Nodes)),
		Links:   make([]jsonLink, 0, len(p.Links)),
	}
	for _, n := range p.Nodes {
		out.Nodes = append(out.Nodes, jsonNode{
			Index:    n.Index,
			Name:     n.Name,
			Title:    n.DisplayTitle(),
			Category: n.Category,
			Value:    n.Value,
			Depth:    n.Depth,
			Height:   n.Height,
			Layer:    n.Layer,
			X0:       n.X0,
			X1:       n.X1,
			Y0:       n.Y0,
			Y1:       n.Y1,
		})
	}
	for _, l := range p.Links {
		out.Links = append(out.Links, jsonLink{
			Index:  l.Index,
			Source: l.Source.Name,
			Target: l.Target.Name,
			Value:  l.Value,
			Width:  l.Width,
			Y0:     l.Y0,
			Y1:     l.Y1,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
