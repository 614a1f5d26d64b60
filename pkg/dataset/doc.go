// Package dataset turns raw JSON documents into [sankey.Diagram] values.
//
// Two document shapes are understood:
//
//   - [GenericDocument] is already in diagram form ({"nodes": [...], "links": [...]}).
//   - [JMUDocument] holds university cost and revenue tables keyed
//     "student-costs", "jmu-revenues" and, optionally, "jmu-expenses".
//
// Each diagram shape has its own adapter: [Generic], [StudentCosts] and
// [Revenue]. Adapters are pure. They never modify the document they are
// given and return a diagram that shares no memory with it, so calling an
// adapter twice on the same document yields equal diagrams.
//
// Adapters do not validate their output; [sankey.Diagram.Validate] does.
// [Build] picks an adapter by [Kind].
//
// # Loading
//
// [ReadGeneric] and [ReadJMU] decode from a reader; [LoadGeneric] and
// [LoadJMU] open a file. Every loading failure carries the DATA_LOAD code.
package dataset
