package graph

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/google/uuid"
	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/errors"
)

// =============================================================================
// Graph - Diagram Serialization
// =============================================================================

// Graph is the serialization format for diagrams. Nodes, edges and
// containers keep their model order so a decoded diagram lays out exactly
// like the one that was encoded.
type Graph struct {
	Title      string                 `json:"title" toml:"title"`
	Layout     *diagram.LayoutOptions `json:"layout,omitempty" toml:"layout,omitempty"`
	Containers []Container            `json:"containers,omitempty" toml:"containers,omitempty"`
	Nodes      []Node                 `json:"nodes" toml:"nodes"`
	Edges      []Edge                 `json:"edges" toml:"edges"`
}

// Node is a serialized diagram node. Container names its direct container.
type Node struct {
	ID          string         `json:"id" toml:"id"`
	Label       string         `json:"label,omitempty" toml:"label,omitempty"`
	Provider    string         `json:"provider,omitempty" toml:"provider,omitempty"`
	Service     string         `json:"service,omitempty" toml:"service,omitempty"`
	Category    string         `json:"category,omitempty" toml:"category,omitempty"`
	Description string         `json:"description,omitempty" toml:"description,omitempty"`
	Container   string         `json:"container,omitempty" toml:"container,omitempty"`
	Position    *Position      `json:"position,omitempty" toml:"position,omitempty"`
	Meta        map[string]any `json:"meta,omitempty" toml:"meta,omitempty"`
}

// Position is a serialized node position.
type Position struct {
	X     float64 `json:"x" toml:"x"`
	Y     float64 `json:"y" toml:"y"`
	Fixed bool    `json:"fixed,omitempty" toml:"fixed,omitempty"`
}

// Edge is a serialized connection. An empty ID is generated on decode.
type Edge struct {
	ID        string  `json:"id,omitempty" toml:"id,omitempty"`
	From      string  `json:"from" toml:"from"`
	To        string  `json:"to" toml:"to"`
	Label     string  `json:"label,omitempty" toml:"label,omitempty"`
	Style     string  `json:"style,omitempty" toml:"style,omitempty"`
	Direction string  `json:"direction,omitempty" toml:"direction,omitempty"`
	Weight    float64 `json:"weight,omitempty" toml:"weight,omitempty"`
}

// Container is a serialized container. Parent names the enclosing container.
type Container struct {
	ID     string           `json:"id" toml:"id"`
	Name   string           `json:"name" toml:"name"`
	Parent string           `json:"parent,omitempty" toml:"parent,omitempty"`
	Style  string           `json:"style,omitempty" toml:"style,omitempty"`
	Layout *ContainerLayout `json:"layout,omitempty" toml:"layout,omitempty"`
	Meta   map[string]any   `json:"meta,omitempty" toml:"meta,omitempty"`
}

// ContainerLayout is the serialized form of per-container layout hints.
type ContainerLayout struct {
	Direction string  `json:"direction,omitempty" toml:"direction,omitempty"`
	Spacing   float64 `json:"spacing,omitempty" toml:"spacing,omitempty"`
	Alignment string  `json:"alignment,omitempty" toml:"alignment,omitempty"`
}

// =============================================================================
// Diagram ↔ Graph Conversion
// =============================================================================

// FromDiagram converts a diagram to its serialization format.
// Containers are listed parents first.
func FromDiagram(d *diagram.Diagram) Graph {
	g := Graph{
		Title: d.Title,
		Nodes: make([]Node, 0, d.NodeCount()),
		Edges: make([]Edge, 0, d.EdgeCount()),
	}
	if opts := d.LayoutOptions(); opts != (diagram.LayoutOptions{}) {
		g.Layout = &opts
	}

	for _, c := range parentsFirst(d) {
		cj := Container{
			ID:     c.ID,
			Name:   c.Name,
			Parent: c.Parent(),
			Style:  c.Style,
			Meta:   cleanMeta(c.Meta),
		}
		if c.Layout != (diagram.ContainerLayout{}) {
			cj.Layout = &ContainerLayout{
				Direction: string(c.Layout.Direction),
				Spacing:   c.Layout.Spacing,
				Alignment: string(c.Layout.Alignment),
			}
		}
		g.Containers = append(g.Containers, cj)
	}

	for _, n := range d.Nodes() {
		nj := Node{
			ID:          n.ID,
			Label:       n.Label,
			Provider:    string(n.Provider),
			Service:     n.Service,
			Category:    n.Category,
			Description: n.Description,
			Container:   n.Container(),
			Meta:        cleanMeta(n.Meta),
		}
		if nj.Provider == string(diagram.ProviderGeneric) {
			nj.Provider = ""
		}
		if n.Position != nil {
			nj.Position = &Position{X: n.Position.X, Y: n.Position.Y, Fixed: n.Position.Fixed}
		}
		g.Nodes = append(g.Nodes, nj)
	}

	for _, e := range d.Edges() {
		g.Edges = append(g.Edges, edgeFromDiagram(e))
	}
	return g
}

// ToDiagram builds a diagram from its serialization format. Containers may
// be listed in any order. Empty container and edge ids are derived from the
// element's position and content, so decoding the same source twice yields
// the same ids.
func ToDiagram(g Graph) (*diagram.Diagram, error) {
	if err := checkEnums(g); err != nil {
		return nil, err
	}
	d := diagram.New(g.Title)
	if g.Layout != nil {
		d.SetLayoutOptions(*g.Layout)
	}

	containerIDs := make([]string, len(g.Containers))
	for i, cj := range g.Containers {
		id := cj.ID
		if id == "" {
			id = derivedID("container", i, cj.Name, cj.Parent)
		}
		containerIDs[i] = id
		opts := []diagram.ContainerOption{
			diagram.WithContainerID(id),
			diagram.WithContainerMeta(copyMeta(cj.Meta)),
			diagram.WithContainerStyle(cj.Style),
		}
		if cj.Layout != nil {
			opts = append(opts, diagram.WithContainerLayout(diagram.ContainerLayout{
				Direction: diagram.FlowDirection(cj.Layout.Direction),
				Spacing:   cj.Layout.Spacing,
				Alignment: diagram.Alignment(cj.Layout.Alignment),
			}))
		}
		if _, err := d.CreateContainer(cj.Name, "", opts...); err != nil {
			return nil, wrapf(err, "container %q", id)
		}
	}
	for i, cj := range g.Containers {
		if cj.Parent == "" {
			continue
		}
		if err := d.ReparentContainer(containerIDs[i], cj.Parent); err != nil {
			return nil, wrapf(err, "container %q", containerIDs[i])
		}
	}

	for _, nj := range g.Nodes {
		n := diagram.Node{
			ID:          nj.ID,
			Label:       nj.Label,
			Provider:    diagram.Provider(nj.Provider),
			Service:     nj.Service,
			Category:    nj.Category,
			Description: nj.Description,
			Meta:        copyMeta(nj.Meta),
		}
		if nj.Position != nil {
			n.Position = &diagram.Position{X: nj.Position.X, Y: nj.Position.Y, Fixed: nj.Position.Fixed}
		}
		if err := d.AddNode(n); err != nil {
			return nil, wrapf(err, "node %q", nj.ID)
		}
		if nj.Container != "" {
			if err := d.ReparentNode(nj.ID, nj.Container); err != nil {
				return nil, wrapf(err, "node %q", nj.ID)
			}
		}
	}

	for i, ej := range g.Edges {
		opts := diagram.EdgeOptions{
			Label:     ej.Label,
			Style:     diagram.EdgeStyle(ej.Style),
			Direction: diagram.EdgeDirection(ej.Direction),
			Weight:    ej.Weight,
		}
		id := ej.ID
		if id == "" {
			id = derivedID("edge", i, ej.From, ej.To)
		}
		if err := d.AddEdge(diagram.Edge{ID: id, From: ej.From, To: ej.To, Options: opts}); err != nil {
			return nil, wrapf(err, "edge %d (%s→%s)", i+1, ej.From, ej.To)
		}
	}
	return d, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// idNamespace scopes ids derived for elements decoded without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cloudgraph"))

// derivedID returns a name-based uuid for the ordinal-th element of kind.
func derivedID(kind string, ordinal int, parts ...string) string {
	data := kind + "\x00" + strconv.Itoa(ordinal)
	for _, p := range parts {
		data += "\x00" + p
	}
	return uuid.NewSHA1(idNamespace, []byte(data)).String()
}

// checkEnums rejects enum values the model would otherwise store verbatim.
func checkEnums(g Graph) error {
	for _, n := range g.Nodes {
		if n.Provider != "" && !diagram.Provider(n.Provider).Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "node %q: unknown provider %q", n.ID, n.Provider)
		}
	}
	for i, e := range g.Edges {
		if !diagram.EdgeStyle(e.Style).Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d: unknown style %q", i+1, e.Style)
		}
		if !diagram.EdgeDirection(e.Direction).Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d: unknown direction %q", i+1, e.Direction)
		}
	}
	for _, c := range g.Containers {
		if c.Layout == nil {
			continue
		}
		if !diagram.FlowDirection(c.Layout.Direction).Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "container %q: unknown direction %q", c.ID, c.Layout.Direction)
		}
		if !diagram.Alignment(c.Layout.Alignment).Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "container %q: unknown alignment %q", c.ID, c.Layout.Alignment)
		}
	}
	return nil
}

// wrapf prefixes a model error with context, keeping its code.
func wrapf(err error, format string, args ...any) error {
	return errors.New(errors.GetCode(err), "%s: %s", fmt.Sprintf(format, args...), errors.UserMessage(err))
}

func edgeFromDiagram(e diagram.Edge) Edge {
	out := Edge{
		ID:    e.ID,
		From:  e.From,
		To:    e.To,
		Label: e.Options.Label,
	}
	if e.Options.Style != diagram.EdgeSolid {
		out.Style = string(e.Options.Style)
	}
	if e.Options.Direction != diagram.DirForward {
		out.Direction = string(e.Options.Direction)
	}
	if e.Options.Weight != 1 {
		out.Weight = e.Options.Weight
	}
	return out
}

// parentsFirst returns containers in pre-order over the forest, which keeps
// sibling order and lists every parent before its children.
func parentsFirst(d *diagram.Diagram) []*diagram.Container {
	var out []*diagram.Container
	var visit func(*diagram.Container)
	visit = func(c *diagram.Container) {
		out = append(out, c)
		for _, id := range c.Children() {
			child, _ := d.Container(id)
			visit(child)
		}
	}
	for _, root := range d.RootContainers() {
		visit(root)
	}
	return out
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) diagram.Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// cleanMeta returns a copy of metadata, or nil if it is empty.
func cleanMeta(m diagram.Metadata) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}
