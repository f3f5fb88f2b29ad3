// Package diagram provides the graph model for cloud architecture diagrams.
//
// # Overview
//
// A [Diagram] is the aggregate root: it owns typed service nodes, directed
// edges between them, and a forest of nested containers used for visual
// grouping. The layout engine in pkg/layout reads a Diagram and assigns a
// 2-D position to every node and a bounding rectangle to every container.
//
// # Basic Usage
//
//	d := diagram.New("Web tier")
//	_ = d.AddNode(diagram.Node{ID: "lb", Provider: diagram.ProviderAWS, Service: "elb"})
//	_ = d.AddNode(diagram.Node{ID: "web", Provider: diagram.ProviderAWS, Service: "ec2"})
//	_, _ = d.Connect("lb", "web", diagram.EdgeOptions{})
//
//	vpc, _ := d.CreateContainer("VPC", "")
//	_ = d.ReparentNode("web", vpc.ID)
//
// # Invariants
//
// The following hold after every successful call and are never observably
// violated by a failing one:
//
//  1. Node, edge and container ids are each unique within a Diagram.
//  2. A node is a direct member of at most one container.
//  3. The container parent relation is acyclic.
//  4. Every edge references nodes that existed when it was added.
//
// Membership is stored on both sides (node → container and container →
// members) but only [Diagram.ReparentNode] and the cascading removals touch
// it, so the two directions cannot disagree. Failing operations return an
// error from pkg/errors and leave the model exactly as it was.
//
// # Ordering
//
// Nodes, edges and containers are kept in insertion order. Layout algorithms
// that depend on order (grid, force initialisation) are deterministic because
// of this.
//
// # Concurrency
//
// Diagram instances are not safe for concurrent use. A layout computation
// reads the diagram and stamps positions back onto its nodes, so callers must
// not mutate a diagram while a layout for it is in flight.
package diagram
