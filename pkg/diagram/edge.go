package diagram

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/cloudgraph/pkg/errors"
)

// EdgeStyle is the line style hint for renderers.
type EdgeStyle string

const (
	EdgeSolid  EdgeStyle = "solid"
	EdgeDashed EdgeStyle = "dashed"
	EdgeDotted EdgeStyle = "dotted"
	EdgeBold   EdgeStyle = "bold"
	EdgeInvis  EdgeStyle = "invis"
)

// Valid reports whether s is a known style. The empty style is valid and
// means solid.
func (s EdgeStyle) Valid() bool {
	switch s {
	case "", EdgeSolid, EdgeDashed, EdgeDotted, EdgeBold, EdgeInvis:
		return true
	}
	return false
}

// EdgeDirection describes which ends of an edge carry arrowheads.
// It does not change how layout algorithms read the edge: layout always
// treats an edge as From → To.
type EdgeDirection string

const (
	DirForward EdgeDirection = "forward"
	DirBack    EdgeDirection = "back"
	DirBoth    EdgeDirection = "both"
	DirNone    EdgeDirection = "none"
)

// Valid reports whether d is a known direction. The empty direction is
// valid and means forward.
func (d EdgeDirection) Valid() bool {
	switch d {
	case "", DirForward, DirBack, DirBoth, DirNone:
		return true
	}
	return false
}

// EdgeOptions carries the mutable presentation attributes of an edge.
type EdgeOptions struct {
	Label     string
	Style     EdgeStyle
	Direction EdgeDirection
	Weight    float64
}

func (o EdgeOptions) withDefaults() EdgeOptions {
	if o.Style == "" {
		o.Style = EdgeSolid
	}
	if o.Direction == "" {
		o.Direction = DirForward
	}
	if o.Weight == 0 {
		o.Weight = 1
	}
	return o
}

// Edge is a directed connection between two nodes.
// Endpoints are immutable once the edge is added; only Options may change.
type Edge struct {
	ID      string
	From    string
	To      string
	Options EdgeOptions
}

// IsBidirectional reports whether the edge draws arrowheads on both ends.
func (e Edge) IsBidirectional() bool { return e.Options.Direction == DirBoth }

// IsVisible reports whether renderers should draw the edge.
func (e Edge) IsVisible() bool { return e.Options.Style != EdgeInvis }

// Connect adds an edge from → to with a generated id and returns it.
// Returns UNKNOWN_NODE if either endpoint does not exist; the edge list is
// left unchanged in that case.
func (d *Diagram) Connect(from, to string, opts EdgeOptions) (Edge, error) {
	e := Edge{ID: uuid.NewString(), From: from, To: to, Options: opts}
	if err := d.AddEdge(e); err != nil {
		return Edge{}, err
	}
	return *d.edgeIndex[e.ID], nil
}

// Undirected connects from and to with an edge that draws no arrowheads.
func (d *Diagram) Undirected(from, to string) (Edge, error) {
	return d.Connect(from, to, EdgeOptions{Direction: DirNone})
}

// AddEdge adds an edge with a caller-supplied id. Decoders use it to
// preserve ids across round trips. Returns INVALID_INPUT for a malformed id,
// DUPLICATE_ID if the id is taken, or UNKNOWN_NODE if an endpoint is missing.
func (d *Diagram) AddEdge(e Edge) error {
	if err := errors.ValidateID("edge", e.ID); err != nil {
		return err
	}
	if _, exists := d.edgeIndex[e.ID]; exists {
		return errors.New(errors.ErrCodeDuplicateID, "edge %q already exists", e.ID)
	}
	if _, ok := d.nodes[e.From]; !ok {
		return errors.New(errors.ErrCodeUnknownNode, "edge source %q not found", e.From)
	}
	if _, ok := d.nodes[e.To]; !ok {
		return errors.New(errors.ErrCodeUnknownNode, "edge target %q not found", e.To)
	}
	e.Options = e.Options.withDefaults()
	edge := &e
	d.edges = append(d.edges, edge)
	d.edgeIndex[edge.ID] = edge
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the edge with the given id.
// Returns UNKNOWN_EDGE if no such edge exists.
func (d *Diagram) RemoveEdge(id string) error {
	if _, ok := d.edgeIndex[id]; !ok {
		return errors.New(errors.ErrCodeUnknownEdge, "edge %q not found", id)
	}
	delete(d.edgeIndex, id)
	d.edges = slices.DeleteFunc(d.edges, func(e *Edge) bool { return e.ID == id })
	d.rebuildAdjacency()
	return nil
}

// UpdateEdgeOptions replaces the presentation options of an edge.
// Returns UNKNOWN_EDGE if no such edge exists.
func (d *Diagram) UpdateEdgeOptions(id string, opts EdgeOptions) error {
	e, ok := d.edgeIndex[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownEdge, "edge %q not found", id)
	}
	e.Options = opts.withDefaults()
	return nil
}

// Edge returns a copy of the edge with the given id.
func (d *Diagram) Edge(id string) (Edge, bool) {
	e, ok := d.edgeIndex[id]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Edges returns a copy of all edges in insertion order.
func (d *Diagram) Edges() []Edge {
	out := make([]Edge, len(d.edges))
	for i, e := range d.edges {
		out[i] = *e
	}
	return out
}

// EdgeCount returns the number of edges in the diagram.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// NodeEdges returns every edge incident to the node, in insertion order.
func (d *Diagram) NodeEdges(id string) []Edge {
	var out []Edge
	for _, e := range d.edges {
		if e.From == id || e.To == id {
			out = append(out, *e)
		}
	}
	return out
}
