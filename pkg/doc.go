// Package pkg provides the core libraries for Cloudgraph architecture diagrams.
//
// # Overview
//
// Cloudgraph models cloud architectures as graphs of services connected by
// edges and grouped into nested containers (regions, VPCs, subnets), then
// computes a layout for them and renders the result.
//
// # Architecture
//
// The typical data flow through Cloudgraph:
//
//	JSON/TOML diagram
//	         ↓
//	    [graph] package (decode into a model)
//	         ↓
//	    [diagram] package (nodes, edges, container forest)
//	         ↓
//	    [layout] package (positions + container bounds)
//	         ↓
//	    [render/nodelink] package (DOT, SVG; PDF/PNG via [render])
//
// # Quick Start
//
//	d := diagram.New("Web tier")
//	_ = d.AddNode(diagram.Node{ID: "lb"})
//	_ = d.AddNode(diagram.Node{ID: "api"})
//	_, _ = d.Connect("lb", "api", diagram.EdgeOptions{Label: "https"})
//
//	res, _ := layout.ComputeDiagram(d)
//	l := graph.Export(d, res)
//	dot := nodelink.ToDOT(l)
//
// # Main Packages
//
// [diagram] - The architecture model with its invariants: unique ids, edges
// between existing nodes, an acyclic container forest and at most one
// direct container per node.
//
// [layout] - Hierarchical, force, grid and clustered layout algorithms plus
// container bounds computation.
//
// [graph] - Serialization types for diagrams (JSON, TOML) and layouts (JSON).
//
// [pipeline] - The parse → layout → render flow with caching, shared by the
// CLI and the HTTP service.
//
// [cache] - Cache backends (file, memory, Redis) and key derivation.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP metrics.
//
// [errors] - Coded, categorised errors used across the model and layout.
//
// [render] - Graphviz-backed conversion of DOT to SVG, PNG and PDF.
//
// [render/nodelink] - Node-link DOT and SVG output for computed layouts.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -short ./...                 # Skip Graphviz rendering
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/layout
// [graph]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/errors
// [render]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cloudgraph/pkg/render/nodelink
package pkg
