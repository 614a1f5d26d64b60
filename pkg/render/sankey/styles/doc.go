// Package styles holds the color and text policies of the Sankey renderer.
//
// Node fills come from a [ColorPolicy] keyed by node category. [Ordinal]
// hands out palette colors in first-request order, so a renderer that asks
// for every node's color in node order gets the same assignment on every
// run. Links are colored by [LinkColor]: from the source node, from the
// target node, with a gradient between the two, or with one literal color.
package styles
