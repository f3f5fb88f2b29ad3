// Package layout computes node positions and container bounds for a
// [diagram.Diagram].
//
// # Algorithms
//
// Four algorithms are available, selected by [diagram.LayoutOptions].Algorithm:
//
//   - hierarchical: topological levels along the flow direction
//   - force: seeded force-directed simulation with a fixed iteration count
//   - grid: a near-square grid in insertion order
//   - clustered: recursive container blocks arranged in columns
//
// Every algorithm honors nodes whose Position is Fixed, and every run ends
// with the bounds calculator, which derives one rectangle per non-empty
// container bottom-up so that each parent encloses its children.
//
// # Usage
//
//	res, err := layout.ComputeDiagram(d, layout.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	for id, p := range res.Positions {
//	    fmt.Println(id, p.X, p.Y)
//	}
//
// # Determinism
//
// Given the same diagram and options, every algorithm returns identical
// output. The force layout draws from a PCG generator seeded by
// LayoutOptions.Seed; previously computed non-fixed positions are ignored so
// repeated runs do not drift.
//
// The package keeps no global state. Compute writes the final positions back
// onto the diagram's nodes, so concurrent runs need separate diagrams (see
// [diagram.Diagram.Clone]).
package layout
