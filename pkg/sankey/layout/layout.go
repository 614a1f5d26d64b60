package layout

import (
	"cmp"
	"errors"
	"math"
	"slices"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
)

var (
	// ErrMissingNode is reported when a link names a node that does not exist.
	ErrMissingNode = errors.New("missing node")

	// ErrCircularLink is reported when the links contain a cycle.
	ErrCircularLink = errors.New("circular link")

	// ErrDegenerateExtent is reported when the extent has no drawable area.
	ErrDegenerateExtent = errors.New("extent has no drawable area")

	// ErrInvalidPolicy is reported for negative node widths, paddings or iterations.
	ErrInvalidPolicy = errors.New("invalid layout policy")

	// ErrNoFlow is reported when no column carries any value, so no vertical
	// scale can be derived.
	ErrNoFlow = errors.New("diagram carries no flow")
)

const collisionEpsilon = 1e-6

// Extent is the drawable rectangle, in canvas coordinates.
type Extent struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns X1-X0.
func (e Extent) Width() float64 { return e.X1 - e.X0 }

// Height returns Y1-Y0.
func (e Extent) Height() float64 { return e.Y1 - e.Y0 }

// Policy holds the layout parameters.
type Policy struct {
	NodeWidth   float64 // Rectangle width of every node
	NodePadding float64 // Requested vertical gap between nodes of one column
	Align       Align
	Extent      Extent
	Iterations  int // Relaxation sweeps
}

// DefaultPolicy returns the policy used for a width×height canvas: 15px wide
// nodes, 10px padding, justified columns and a 1px/5px margin.
func DefaultPolicy(width, height float64) Policy {
	return Policy{
		NodeWidth:   15,
		NodePadding: 10,
		Align:       Justify,
		Extent:      Extent{X0: 1, Y0: 5, X1: width - 1, Y1: height - 5},
		Iterations:  6,
	}
}

// Node is a positioned diagram node.
type Node struct {
	sankey.Node

	Index  int
	Value  float64
	Depth  int
	Height int
	Layer  int
	X0, X1 float64
	Y0, Y1 float64

	SourceLinks []*Link // Outgoing
	TargetLinks []*Link // Incoming
}

// Link is a positioned diagram link. Y0 and Y1 are the heights of the link's
// centre line at the source and target ends.
type Link struct {
	Index  int
	Source *Node
	Target *Node
	Value  float64
	Width  float64
	Y0, Y1 float64
}

// Positioned is the output of [Compute].
type Positioned struct {
	Nodes   []*Node
	Links   []*Link
	Extent  Extent
	Columns int
	Padding float64 // Effective padding after clamping to the extent
}

// Node returns the positioned node named name, or nil.
func (p *Positioned) Node(name string) *Node {
	for _, n := range p.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Compute lays out d under policy p. d is not modified.
func Compute(d sankey.Diagram, p Policy) (*Positioned, error) {
	if !(p.Extent.Width() > 0) || !(p.Extent.Height() > 0) {
		return nil, sferrors.Wrap(sferrors.ErrCodeLayout, ErrDegenerateExtent,
			"extent [[%g,%g],[%g,%g]]", p.Extent.X0, p.Extent.Y0, p.Extent.X1, p.Extent.Y1)
	}
	if p.NodeWidth < 0 || p.NodePadding < 0 || p.Iterations < 0 {
		return nil, sferrors.Wrap(sferrors.ErrCodeLayout, ErrInvalidPolicy,
			"node width %g, padding %g, iterations %d", p.NodeWidth, p.NodePadding, p.Iterations)
	}

	g := &graph{policy: p}
	if err := g.computeNodeLinks(d); err != nil {
		return nil, err
	}
	out := &Positioned{Nodes: g.nodes, Links: g.links, Extent: p.Extent}
	if len(g.nodes) == 0 {
		return out, nil
	}

	g.computeNodeValues()
	if err := g.computeNodeDepths(); err != nil {
		return nil, err
	}
	if err := g.computeNodeHeights(); err != nil {
		return nil, err
	}
	if err := g.computeNodeBreadths(); err != nil {
		return nil, err
	}
	g.computeLinkBreadths()

	out.Columns = len(g.columns)
	out.Padding = g.py
	return out, nil
}

type graph struct {
	policy  Policy
	nodes   []*Node
	links   []*Link
	columns [][]*Node
	py      float64
}

func (g *graph) computeNodeLinks(d sankey.Diagram) error {
	g.nodes = make([]*Node, len(d.Nodes))
	byName := make(map[string]*Node, len(d.Nodes))
	for i, n := range d.Nodes {
		g.nodes[i] = &Node{Node: n, Index: i}
		if _, dup := byName[n.Name]; !dup {
			byName[n.Name] = g.nodes[i]
		}
	}

	g.links = make([]*Link, len(d.Links))
	for i, l := range d.Links {
		src, ok := byName[l.Source]
		if !ok {
			return sferrors.Wrap(sferrors.ErrCodeLayout, ErrMissingNode, "link %d source %q", i, l.Source)
		}
		dst, ok := byName[l.Target]
		if !ok {
			return sferrors.Wrap(sferrors.ErrCodeLayout, ErrMissingNode, "link %d target %q", i, l.Target)
		}
		link := &Link{Index: i, Source: src, Target: dst, Value: l.Value}
		src.SourceLinks = append(src.SourceLinks, link)
		dst.TargetLinks = append(dst.TargetLinks, link)
		g.links[i] = link
	}
	return nil
}

func (g *graph) computeNodeValues() {
	for _, n := range g.nodes {
		n.Value = max(sumValues(n.SourceLinks), sumValues(n.TargetLinks))
	}
}

func sumValues(links []*Link) float64 {
	var s float64
	for _, l := range links {
		s += l.Value
	}
	return s
}

// computeNodeDepths assigns each node its longest distance from a source by
// sweeping the frontier forward. A frontier that survives more sweeps than
// there are nodes can only come from a cycle.
func (g *graph) computeNodeDepths() error {
	n := len(g.nodes)
	current := g.nodes
	for x := 0; len(current) > 0; x++ {
		if x > n {
			return sferrors.Wrap(sferrors.ErrCodeLayout, ErrCircularLink, "computing node depths")
		}
		next := newFrontier(len(current))
		for _, node := range current {
			node.Depth = x
			for _, l := range node.SourceLinks {
				next.add(l.Target)
			}
		}
		current = next.nodes
	}
	return nil
}

func (g *graph) computeNodeHeights() error {
	n := len(g.nodes)
	current := g.nodes
	for x := 0; len(current) > 0; x++ {
		if x > n {
			return sferrors.Wrap(sferrors.ErrCodeLayout, ErrCircularLink, "computing node heights")
		}
		next := newFrontier(len(current))
		for _, node := range current {
			node.Height = x
			for _, l := range node.TargetLinks {
				next.add(l.Source)
			}
		}
		current = next.nodes
	}
	return nil
}

// frontier is an insertion-ordered node set.
type frontier struct {
	seen  map[*Node]bool
	nodes []*Node
}

func newFrontier(capacity int) *frontier {
	return &frontier{seen: make(map[*Node]bool, capacity)}
}

func (f *frontier) add(n *Node) {
	if !f.seen[n] {
		f.seen[n] = true
		f.nodes = append(f.nodes, n)
	}
}

func (g *graph) computeNodeLayers() {
	ext := g.policy.Extent
	dx := g.policy.NodeWidth

	columns := 0
	for _, n := range g.nodes {
		columns = max(columns, n.Depth+1)
	}

	var kx float64
	if columns > 1 {
		kx = (ext.Width() - dx) / float64(columns-1)
	}

	g.columns = make([][]*Node, columns)
	for _, n := range g.nodes {
		layer := max(0, min(columns-1, g.policy.Align.column(n, columns)))
		n.Layer = layer
		n.X0 = ext.X0 + float64(layer)*kx
		n.X1 = n.X0 + dx
		g.columns[layer] = append(g.columns[layer], n)
	}

	// Alignment may leave a column empty (e.g. Right on a ragged graph);
	// empty columns take no part in the vertical pass.
	g.columns = slices.DeleteFunc(g.columns, func(c []*Node) bool { return len(c) == 0 })
}

func (g *graph) computeNodeBreadths() error {
	g.computeNodeLayers()

	maxLen := 0
	for _, c := range g.columns {
		maxLen = max(maxLen, len(c))
	}
	g.py = g.policy.NodePadding
	if maxLen > 1 {
		g.py = min(g.py, g.policy.Extent.Height()/float64(maxLen-1))
	}

	if err := g.initializeNodeBreadths(); err != nil {
		return err
	}

	iterations := g.policy.Iterations
	for i := range iterations {
		alpha := math.Pow(0.99, float64(i))
		beta := max(1-alpha, float64(i+1)/float64(iterations))
		g.relaxRightToLeft(alpha, beta)
		g.relaxLeftToRight(alpha, beta)
	}
	return nil
}

func (g *graph) initializeNodeBreadths() error {
	ext := g.policy.Extent
	ky := math.Inf(1)
	for _, c := range g.columns {
		var total float64
		for _, n := range c {
			total += n.Value
		}
		if total > 0 {
			ky = min(ky, (ext.Height()-float64(len(c)-1)*g.py)/total)
		}
	}
	if math.IsInf(ky, 1) {
		return sferrors.Wrap(sferrors.ErrCodeLayout, ErrNoFlow, "%d nodes, %d links", len(g.nodes), len(g.links))
	}

	for _, c := range g.columns {
		y := ext.Y0
		for _, n := range c {
			n.Y0 = y
			n.Y1 = y + n.Value*ky
			y = n.Y1 + g.py
			for _, l := range n.SourceLinks {
				l.Width = l.Value * ky
			}
		}
		// Spread the leftover space evenly around the stacked column.
		gap := (ext.Y1 - y + g.py) / float64(len(c)+1)
		for i, n := range c {
			offset := gap * float64(i+1)
			n.Y0 += offset
			n.Y1 += offset
		}
		g.reorderLinks(c)
	}
	return nil
}

// relaxLeftToRight moves each node toward the weighted centre of its sources.
func (g *graph) relaxLeftToRight(alpha, beta float64) {
	for i := 1; i < len(g.columns); i++ {
		column := g.columns[i]
		for _, target := range column {
			var y, w float64
			for _, l := range target.TargetLinks {
				v := l.Value * float64(target.Layer-l.Source.Layer)
				y += g.targetTop(l.Source, target) * v
				w += v
			}
			if !(w > 0) {
				continue
			}
			dy := (y/w - target.Y0) * alpha
			target.Y0 += dy
			target.Y1 += dy
			g.reorderNodeLinks(target)
		}
		slices.SortStableFunc(column, ascendingBreadth)
		g.resolveCollisions(column, beta)
	}
}

// relaxRightToLeft moves each node toward the weighted centre of its targets.
func (g *graph) relaxRightToLeft(alpha, beta float64) {
	for i := len(g.columns) - 2; i >= 0; i-- {
		column := g.columns[i]
		for _, source := range column {
			var y, w float64
			for _, l := range source.SourceLinks {
				v := l.Value * float64(l.Target.Layer-source.Layer)
				y += g.sourceTop(source, l.Target) * v
				w += v
			}
			if !(w > 0) {
				continue
			}
			dy := (y/w - source.Y0) * alpha
			source.Y0 += dy
			source.Y1 += dy
			g.reorderNodeLinks(source)
		}
		slices.SortStableFunc(column, ascendingBreadth)
		g.resolveCollisions(column, beta)
	}
}

func (g *graph) resolveCollisions(nodes []*Node, alpha float64) {
	ext := g.policy.Extent
	i := len(nodes) >> 1
	subject := nodes[i]
	resolveCollisionsBottomToTop(nodes, subject.Y0-g.py, i-1, alpha, g.py)
	resolveCollisionsTopToBottom(nodes, subject.Y1+g.py, i+1, alpha, g.py)
	resolveCollisionsBottomToTop(nodes, ext.Y1, len(nodes)-1, alpha, g.py)
	resolveCollisionsTopToBottom(nodes, ext.Y0, 0, alpha, g.py)
}

// resolveCollisionsTopToBottom pushes any overlapping nodes down.
func resolveCollisionsTopToBottom(nodes []*Node, y float64, i int, alpha, py float64) {
	for ; i < len(nodes); i++ {
		n := nodes[i]
		if dy := (y - n.Y0) * alpha; dy > collisionEpsilon {
			n.Y0 += dy
			n.Y1 += dy
		}
		y = n.Y1 + py
	}
}

// resolveCollisionsBottomToTop pushes any overlapping nodes up.
func resolveCollisionsBottomToTop(nodes []*Node, y float64, i int, alpha, py float64) {
	for ; i >= 0; i-- {
		n := nodes[i]
		if dy := (n.Y1 - y) * alpha; dy > collisionEpsilon {
			n.Y0 -= dy
			n.Y1 -= dy
		}
		y = n.Y0 - py
	}
}

func (g *graph) reorderNodeLinks(n *Node) {
	for _, l := range n.TargetLinks {
		slices.SortStableFunc(l.Source.SourceLinks, ascendingTargetBreadth)
	}
	for _, l := range n.SourceLinks {
		slices.SortStableFunc(l.Target.TargetLinks, ascendingSourceBreadth)
	}
}

func (g *graph) reorderLinks(nodes []*Node) {
	for _, n := range nodes {
		slices.SortStableFunc(n.SourceLinks, ascendingTargetBreadth)
		slices.SortStableFunc(n.TargetLinks, ascendingSourceBreadth)
	}
}

// targetTop returns the y a link from source would attach to target at, if
// target were positioned so that the link entered at its top.
func (g *graph) targetTop(source, target *Node) float64 {
	y := source.Y0 - float64(len(source.SourceLinks)-1)*g.py/2
	for _, l := range source.SourceLinks {
		if l.Target == target {
			break
		}
		y += l.Width + g.py
	}
	for _, l := range target.TargetLinks {
		if l.Source == source {
			break
		}
		y -= l.Width
	}
	return y
}

// sourceTop is the mirror of targetTop.
func (g *graph) sourceTop(source, target *Node) float64 {
	y := target.Y0 - float64(len(target.TargetLinks)-1)*g.py/2
	for _, l := range target.TargetLinks {
		if l.Source == source {
			break
		}
		y += l.Width + g.py
	}
	for _, l := range source.SourceLinks {
		if l.Target == target {
			break
		}
		y -= l.Width
	}
	return y
}

func (g *graph) computeLinkBreadths() {
	for _, n := range g.nodes {
		y0, y1 := n.Y0, n.Y0
		for _, l := range n.SourceLinks {
			l.Y0 = y0 + l.Width/2
			y0 += l.Width
		}
		for _, l := range n.TargetLinks {
			l.Y1 = y1 + l.Width/2
			y1 += l.Width
		}
	}
}

func ascendingBreadth(a, b *Node) int {
	return cmp.Compare(a.Y0, b.Y0)
}

func ascendingSourceBreadth(a, b *Link) int {
	if c := ascendingBreadth(a.Source, b.Source); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

func ascendingTargetBreadth(a, b *Link) int {
	if c := ascendingBreadth(a.Target, b.Target); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}
