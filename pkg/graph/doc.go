// Package graph provides serialization types for diagrams and layouts.
//
// This package defines the wire format for cloudgraph's data, used for
// diagram source files, API requests and responses, and the layout cache.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory model
// and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/diagram.Diagram: Internal graph model
//   - pkg/layout.Result: Internal layout output
//
// Use [FromDiagram]/[ToDiagram] and [Export] to convert between them.
//
// # Diagram Files
//
// Diagrams are read from JSON or TOML. The format is picked from the file
// extension by [DetectFormat]:
//
//	title = "Web tier"
//
//	[layout]
//	algorithm = "clustered"
//
//	[[containers]]
//	id = "vpc"
//	name = "VPC"
//
//	[[nodes]]
//	id = "lb"
//	provider = "aws"
//	container = "vpc"
//
//	[[nodes]]
//	id = "api"
//
//	[[edges]]
//	from = "lb"
//	to = "api"
//
// Common operations:
//
//	d, _ := graph.ReadDiagramFile("arch.toml")      // File → Diagram
//	graph.WriteDiagramFile(d, "arch.json")          // Diagram → File
//	data, _ := graph.MarshalDiagram(d)              // Diagram → JSON bytes
//
// Decoding builds the diagram through its public operations, so every model
// invariant is checked: an edge naming a missing node fails with
// UNKNOWN_NODE, and a container hierarchy with a loop fails with
// CYCLIC_CONTAINMENT.
//
// # Layout Serialization
//
// A [Layout] carries everything a renderer needs: positioned nodes,
// container rectangles, and styled edges.
//
//	res, _ := layout.Compute(d, opts)
//	l := graph.Export(d, res)
//	data, _ := graph.MarshalLayout(l)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
