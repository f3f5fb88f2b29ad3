package diagram

import (
	"maps"
	"slices"

	"github.com/matzehuels/cloudgraph/pkg/errors"
)

// Metadata stores arbitrary key-value pairs attached to nodes or containers.
// Metadata maps are never nil once stored in a Diagram.
type Metadata map[string]any

// Provider is the cloud-vendor tag carried by a node. It is opaque to the
// layout engine and only matters to renderers.
type Provider string

const (
	ProviderAWS     Provider = "aws"
	ProviderAzure   Provider = "azure"
	ProviderGCP     Provider = "gcp"
	ProviderGeneric Provider = "generic"
)

// Providers lists the known providers in display order.
var Providers = []Provider{ProviderAWS, ProviderAzure, ProviderGCP, ProviderGeneric}

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool { return slices.Contains(Providers, p) }

// Position is a node coordinate. Fixed positions are pinned: every layout
// algorithm leaves them where they are.
type Position struct {
	X     float64
	Y     float64
	Fixed bool
}

// Node is a single service in the diagram.
//
// The zero value is not usable - ID must be set before adding to a Diagram.
type Node struct {
	ID          string
	Label       string // Display label (defaults to ID)
	Provider    Provider
	Service     string // e.g. "ec2", "cloud-sql"
	Category    string // e.g. "compute", "database"
	Description string
	Meta        Metadata

	// Position is nil until a layout runs or the caller pins the node.
	Position *Position

	container string
}

// Container returns the id of the container the node is a direct member of,
// or "" for top-level nodes.
func (n Node) Container() string { return n.container }

// DisplayLabel returns Label, falling back to ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Diagram is the aggregate root of the graph model.
//
// The zero value is not usable - use New to create a valid Diagram.
type Diagram struct {
	Title string

	nodes     map[string]*Node
	nodeOrder []string
	edges     []*Edge
	edgeIndex map[string]*Edge
	outgoing  map[string][]string // nodeID -> children IDs
	incoming  map[string][]string // nodeID -> parent IDs

	containers     map[string]*Container
	containerOrder []string

	options LayoutOptions
}

// New creates an empty diagram with default layout options.
func New(title string) *Diagram {
	return &Diagram{
		Title:      title,
		nodes:      make(map[string]*Node),
		edgeIndex:  make(map[string]*Edge),
		outgoing:   make(map[string][]string),
		incoming:   make(map[string][]string),
		containers: make(map[string]*Container),
	}
}

// LayoutOptions returns the diagram-wide layout options.
func (d *Diagram) LayoutOptions() LayoutOptions { return d.options }

// SetLayoutOptions replaces the diagram-wide layout options.
// Options are validated when a layout is computed, not here.
func (d *Diagram) SetLayoutOptions(opts LayoutOptions) { d.options = opts }

// =============================================================================
// Nodes
// =============================================================================

// AddNode adds a top-level node to the diagram.
// Returns INVALID_INPUT for a malformed id or DUPLICATE_ID if the id is taken.
// The node's Meta is initialised to an empty map if nil. Any container
// membership carried by n is ignored; use ReparentNode to place it.
func (d *Diagram) AddNode(n Node) error {
	if err := errors.ValidateID("node", n.ID); err != nil {
		return err
	}
	if _, exists := d.nodes[n.ID]; exists {
		return errors.New(errors.ErrCodeDuplicateID, "node %q already exists", n.ID)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	if n.Provider == "" {
		n.Provider = ProviderGeneric
	}
	if n.Position != nil {
		p := *n.Position
		n.Position = &p
	}
	n.container = ""
	node := &n
	d.nodes[node.ID] = node
	d.nodeOrder = append(d.nodeOrder, node.ID)
	return nil
}

// RemoveNode removes a node, detaches it from its container and removes
// every incident edge. Returns UNKNOWN_NODE if the node does not exist.
func (d *Diagram) RemoveNode(id string) error {
	n, ok := d.nodes[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "node %q not found", id)
	}
	if n.container != "" {
		d.containers[n.container].removeMember(id)
		n.container = ""
	}

	kept := d.edges[:0]
	for _, e := range d.edges {
		if e.From == id || e.To == id {
			delete(d.edgeIndex, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	clear(d.edges[len(kept):])
	d.edges = kept
	d.rebuildAdjacency()

	delete(d.nodes, id)
	d.nodeOrder = slices.DeleteFunc(d.nodeOrder, func(s string) bool { return s == id })
	return nil
}

// PositionNode sets a node's position. Fixed positions are honored by every
// layout algorithm. Returns UNKNOWN_NODE if the node does not exist.
func (d *Diagram) PositionNode(id string, x, y float64, fixed bool) error {
	n, ok := d.nodes[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "node %q not found", id)
	}
	n.Position = &Position{X: x, Y: y, Fixed: fixed}
	return nil
}

// Node returns the node with the given id and true, or nil and false if not found.
// The returned pointer refers to the stored node; changing its ID corrupts the
// diagram.
func (d *Diagram) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// HasNode reports whether a node with the given id exists.
func (d *Diagram) HasNode(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (d *Diagram) Nodes() []*Node {
	nodes := make([]*Node, len(d.nodeOrder))
	for i, id := range d.nodeOrder {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node ids in insertion order.
func (d *Diagram) NodeIDs() []string { return slices.Clone(d.nodeOrder) }

// NodeCount returns the number of nodes in the diagram.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// Children returns the ids of nodes this node has edges to, in edge order.
// The returned slice should not be modified.
func (d *Diagram) Children(id string) []string { return d.outgoing[id] }

// Parents returns the ids of nodes that have edges to this node, in edge order.
// The returned slice should not be modified.
func (d *Diagram) Parents(id string) []string { return d.incoming[id] }

// InDegree returns the number of incoming edges to the node.
func (d *Diagram) InDegree(id string) int { return len(d.incoming[id]) }

// OutDegree returns the number of outgoing edges from the node.
func (d *Diagram) OutDegree(id string) int { return len(d.outgoing[id]) }

// ContainerOf returns the id of the container the node is a direct member of.
// The second result is false if the node does not exist.
func (d *Diagram) ContainerOf(nodeID string) (string, bool) {
	n, ok := d.nodes[nodeID]
	if !ok {
		return "", false
	}
	return n.container, true
}

// Clone returns a deep copy of the diagram. Metadata maps are copied
// shallowly.
func (d *Diagram) Clone() *Diagram {
	c := New(d.Title)
	c.options = d.options
	for _, id := range d.nodeOrder {
		n := *d.nodes[id]
		n.Meta = maps.Clone(n.Meta)
		if n.Position != nil {
			p := *n.Position
			n.Position = &p
		}
		c.nodes[id] = &n
		c.nodeOrder = append(c.nodeOrder, id)
	}
	for _, e := range d.edges {
		cp := *e
		c.edges = append(c.edges, &cp)
		c.edgeIndex[cp.ID] = &cp
	}
	c.rebuildAdjacency()
	for _, id := range d.containerOrder {
		src := d.containers[id]
		cp := *src
		cp.Meta = maps.Clone(src.Meta)
		cp.members = slices.Clone(src.members)
		cp.children = slices.Clone(src.children)
		c.containers[id] = &cp
		c.containerOrder = append(c.containerOrder, id)
	}
	return c
}

func (d *Diagram) rebuildAdjacency() {
	d.outgoing = make(map[string][]string, len(d.nodes))
	d.incoming = make(map[string][]string, len(d.nodes))
	for _, e := range d.edges {
		d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
		d.incoming[e.To] = append(d.incoming[e.To], e.From)
	}
}
