// Package sankey defines the flow diagram handed to the layout step.
//
// A [Diagram] is a list of [Node] values identified by name and a list of
// weighted, directed [Link] values that refer to nodes by name. It is the
// uniform shape every dataset adapter produces (see pkg/dataset) and the only
// input the layout step (pkg/sankey/layout) accepts.
//
// # Identity
//
// Node names must be unique within one diagram; links resolve their source
// and target through them. [Diagram.Validate] reports the first record that
// breaks this, wrapped as a DIAGRAM_CONSTRUCTION error from pkg/errors:
//
//	if err := d.Validate(); err != nil {
//	    var ce *errors.ConstructionError
//	    // errors.As(err, &ce) names the offending node or link
//	}
//
// # Copy Semantics
//
// Diagrams are plain values. [Diagram.Clone] copies both slices so that
// downstream steps can never alias records owned by a caller.
//
// # Concurrency
//
// A Diagram is safe for concurrent reads. Nothing in this package mutates a
// diagram it receives.
package sankey
