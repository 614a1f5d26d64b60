// Package layout positions a [sankey.Diagram] on a canvas.
//
// [Compute] assigns every node a column and a vertical span, and every link a
// thickness and its two attachment heights. It follows the well-known
// d3-sankey procedure so that diagrams look the way readers of Sankey charts
// expect:
//
//  1. Resolve link endpoints by node name.
//  2. Node value = max(total outgoing, total incoming).
//  3. Depth (longest path from a source) and height (longest path to a sink).
//  4. Column from the [Align] rule; columns are spaced evenly across the extent.
//  5. One vertical scale for the whole diagram, chosen so the fullest column fits.
//  6. A few relaxation sweeps pull nodes toward the weighted centre of their
//     neighbours, then resolve overlaps inside each column.
//  7. Link attachment points are stacked in neighbour order.
//
// # Guarantees
//
//   - Nodes in a column never overlap and keep at least the effective padding.
//   - Column x ranges increase strictly from left to right.
//   - The links entering (or leaving) a node never add up to more than its height.
//
// # Failures
//
// Errors carry the LAYOUT code from pkg/errors and wrap one of the sentinels
// [ErrMissingNode], [ErrCircularLink], [ErrDegenerateExtent], [ErrInvalidPolicy]
// or [ErrNoFlow], so callers can tell them apart with errors.Is.
//
// # Example
//
//	p, err := layout.Compute(d, layout.DefaultPolicy(928, 600))
//	if err != nil {
//	    return err
//	}
//	for _, n := range p.Nodes {
//	    fmt.Println(n.Name, n.X0, n.Y0, n.X1, n.Y1)
//	}
package layout
