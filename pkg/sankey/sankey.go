package sankey

import (
	"errors"
	"math"
	"slices"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
)

var (
	// ErrEmptyName is reported when a node has no name.
	ErrEmptyName = errors.New("node name must not be empty")

	// ErrDuplicateName is reported when two nodes share a name.
	ErrDuplicateName = errors.New("duplicate node name")

	// ErrUnknownSource is reported when a link's source names no node.
	ErrUnknownSource = errors.New("unknown source node")

	// ErrUnknownTarget is reported when a link's target names no node.
	ErrUnknownTarget = errors.New("unknown target node")

	// ErrInvalidValue is reported when a link value is negative, NaN or infinite.
	ErrInvalidValue = errors.New("link value must be a finite, non-negative number")
)

// Node is a vertex of the flow diagram.
type Node struct {
	Name     string `json:"name"`               // Unique identity; links refer to it
	Title    string `json:"title,omitempty"`    // Display text (defaults to Name)
	Category string `json:"category,omitempty"` // Color key
}

// DisplayTitle returns the title if set, otherwise the name.
func (n Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.Name
}

// Link is a directed, weighted flow between two named nodes.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Diagram is the node/link pair consumed by the layout step.
type Diagram struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// NodeCount returns the number of nodes.
func (d Diagram) NodeCount() int { return len(d.Nodes) }

// LinkCount returns the number of links.
func (d Diagram) LinkCount() int { return len(d.Links) }

// Clone returns a copy that shares no backing arrays with d.
func (d Diagram) Clone() Diagram {
	return Diagram{
		Nodes: slices.Clone(d.Nodes),
		Links: slices.Clone(d.Links),
	}
}

// Node returns the first node named name.
func (d Diagram) Node(name string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Categories returns the distinct node categories in first-seen order.
func (d Diagram) Categories() []string {
	seen := make(map[string]bool, len(d.Nodes))
	var out []string
	for _, n := range d.Nodes {
		if !seen[n.Category] {
			seen[n.Category] = true
			out = append(out, n.Category)
		}
	}
	return out
}

// Validate checks that node names are non-empty and unique, that every link
// resolves both endpoints, and that link values are finite and non-negative.
// The returned error carries the DIAGRAM_CONSTRUCTION code and a
// [sferrors.ConstructionError] naming the first offending record.
func (d Diagram) Validate() error {
	names := make(map[string]struct{}, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Name == "" {
			return sferrors.Construction("node", i, n.Name, ErrEmptyName)
		}
		if _, dup := names[n.Name]; dup {
			return sferrors.Construction("node", i, n.Name, ErrDuplicateName)
		}
		names[n.Name] = struct{}{}
	}

	for i, l := range d.Links {
		label := l.Source + " → " + l.Target
		if _, ok := names[l.Source]; !ok {
			return sferrors.Construction("link", i, label, ErrUnknownSource)
		}
		if _, ok := names[l.Target]; !ok {
			return sferrors.Construction("link", i, label, ErrUnknownTarget)
		}
		if l.Value < 0 || math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
			return sferrors.Construction("link", i, label, ErrInvalidValue)
		}
	}
	return nil
}
