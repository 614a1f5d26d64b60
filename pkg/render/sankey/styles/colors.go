package styles

import (
	"fmt"
	"slices"
)

// Palettes.
var (
	Category10 = []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}
	Tableau10 = []string{
		"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
		"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
	}
)

var palettes = map[string][]string{
	"category10": Category10,
	"tableau10":  Tableau10,
}

// PaletteNames lists the built-in palettes.
func PaletteNames() []string {
	return []string{"category10", "tableau10"}
}

// Palette returns a copy of the named built-in palette. The empty name
// selects category10.
func Palette(name string) ([]string, error) {
	if name == "" {
		name = "category10"
	}
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	return slices.Clone(p), nil
}

// ColorPolicy maps a node category to a fill color.
type ColorPolicy interface {
	Color(category string) string
}

// Ordinal assigns palette colors to categories in first-request order,
// cycling when the palette runs out.
type Ordinal struct {
	palette []string
	index   map[string]int
}

// NewOrdinal returns an ordinal scale over palette. An empty palette falls
// back to [Category10].
func NewOrdinal(palette []string) *Ordinal {
	if len(palette) == 0 {
		palette = Category10
	}
	return &Ordinal{palette: slices.Clone(palette), index: make(map[string]int)}
}

// Color returns the color for category, assigning the next one if needed.
func (o *Ordinal) Color(category string) string {
	i, ok := o.index[category]
	if !ok {
		i = len(o.index)
		o.index[category] = i
	}
	return o.palette[i%len(o.palette)]
}

// Domain returns the categories seen so far, in assignment order.
func (o *Ordinal) Domain() []string {
	out := make([]string, len(o.index))
	for c, i := range o.index {
		out[i] = c
	}
	return out
}
