package sankey

import (
	"errors"
	"math"
	"slices"
	"testing"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
)

func sample() Diagram {
	return Diagram{
		Nodes: []Node{
			{Name: "a", Category: "x"},
			{Name: "b", Title: "Bee", Category: "y"},
			{Name: "c", Category: "x"},
		},
		Links: []Link{
			{Source: "a", Target: "b", Value: 2},
			{Source: "b", Target: "c", Value: 1},
		},
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := (Node{Name: "n"}).DisplayTitle(); got != "n" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "n")
	}
	if got := (Node{Name: "n", Title: "Title"}).DisplayTitle(); got != "Title" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "Title")
	}
}

func TestClone(t *testing.T) {
	d := sample()
	c := d.Clone()

	c.Nodes[0].Name = "changed"
	c.Links[0].Value = 99

	if d.Nodes[0].Name != "a" {
		t.Error("Clone() shares node storage with the original")
	}
	if d.Links[0].Value != 2 {
		t.Error("Clone() shares link storage with the original")
	}
}

func TestNodeLookup(t *testing.T) {
	d := sample()
	n, ok := d.Node("b")
	if !ok || n.Title != "Bee" {
		t.Errorf("Node(b) = %+v, %v", n, ok)
	}
	if _, ok := d.Node("missing"); ok {
		t.Error("Node(missing) found a node")
	}
}

func TestCategories(t *testing.T) {
	got := sample().Categories()
	want := []string{"x", "y"}
	if !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Diagram)
		want   error
		kind   string
		index  int
	}{
		{"valid", func(*Diagram) {}, nil, "", 0},
		{"empty name", func(d *Diagram) { d.Nodes[1].Name = "" }, ErrEmptyName, "node", 1},
		{"duplicate name", func(d *Diagram) { d.Nodes[2].Name = "a" }, ErrDuplicateName, "node", 2},
		{"unknown source", func(d *Diagram) { d.Links[1].Source = "zz" }, ErrUnknownSource, "link", 1},
		{"unknown target", func(d *Diagram) { d.Links[0].Target = "zz" }, ErrUnknownTarget, "link", 0},
		{"negative value", func(d *Diagram) { d.Links[0].Value = -1 }, ErrInvalidValue, "link", 0},
		{"NaN value", func(d *Diagram) { d.Links[1].Value = math.NaN() }, ErrInvalidValue, "link", 1},
		{"infinite value", func(d *Diagram) { d.Links[1].Value = math.Inf(1) }, ErrInvalidValue, "link", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sample()
			tt.mutate(&d)
			err := d.Validate()

			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			if !sferrors.Is(err, sferrors.ErrCodeDiagramConstruction) {
				t.Errorf("code = %v, want %v", sferrors.GetCode(err), sferrors.ErrCodeDiagramConstruction)
			}
			var ce *sferrors.ConstructionError
			if !errors.As(err, &ce) {
				t.Fatal("missing ConstructionError")
			}
			if ce.Kind != tt.kind || ce.Index != tt.index {
				t.Errorf("record = %s %d, want %s %d", ce.Kind, ce.Index, tt.kind, tt.index)
			}
		})
	}
}

func TestValidateZeroValue(t *testing.T) {
	d := sample()
	d.Links[0].Value = 0
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() with zero value = %v, want nil", err)
	}
}
