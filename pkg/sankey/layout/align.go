package layout

import (
	"fmt"
	"strings"
)

// Align selects the column each node is placed in.
type Align int

const (
	// Justify places a node at its depth, except sinks which go to the last column.
	Justify Align = iota
	// Left places every node at its depth.
	Left
	// Right places every node by its distance to a sink, counted from the last column.
	Right
	// Center places sources one column before their nearest target.
	Center
)

var alignNames = map[Align]string{
	Justify: "justify",
	Left:    "left",
	Right:   "right",
	Center:  "center",
}

// String returns the lower-case name of the rule.
func (a Align) String() string {
	if s, ok := alignNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Align(%d)", int(a))
}

// ParseAlign parses a rule name. The empty string selects [Justify].
func ParseAlign(s string) (Align, error) {
	if s == "" {
		return Justify, nil
	}
	for a, name := range alignNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return Justify, fmt.Errorf("unknown node alignment %q (must be justify, left, right or center)", s)
}

// column returns the unclamped column for n among columns columns.
func (a Align) column(n *Node, columns int) int {
	switch a {
	case Left:
		return n.Depth
	case Right:
		return columns - 1 - n.Height
	case Center:
		if len(n.TargetLinks) > 0 {
			return n.Depth
		}
		if len(n.SourceLinks) > 0 {
			nearest := n.SourceLinks[0].Target.Depth
			for _, l := range n.SourceLinks[1:] {
				nearest = min(nearest, l.Target.Depth)
			}
			return nearest - 1
		}
		return 0
	default:
		if len(n.SourceLinks) > 0 {
			return n.Depth
		}
		return columns - 1
	}
}
