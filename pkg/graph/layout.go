package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/layout"
)

// =============================================================================
// Layout - Computed Layout Format
// =============================================================================

// Layout is the serialization format for a computed layout. It is
// self-contained: renderers need nothing else to draw the diagram.
//
// Node coordinates are centers; container coordinates are the top-left
// corner of the rectangle. Containers are listed parents first.
type Layout struct {
	Title     string            `json:"title"`
	Algorithm diagram.Algorithm `json:"algorithm"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	NodeSize  float64           `json:"node_size"`

	Nodes      []PlacedNode      `json:"nodes"`
	Containers []PlacedContainer `json:"containers,omitempty"`
	Edges      []Edge            `json:"edges,omitempty"`

	// Rows lists node ids per level for hierarchical layouts.
	Rows map[int][]string `json:"rows,omitempty"`
}

// PlacedNode is a node with its computed center.
type PlacedNode struct {
	ID        string  `json:"id"`
	Label     string  `json:"label,omitempty"`
	Provider  string  `json:"provider,omitempty"`
	Service   string  `json:"service,omitempty"`
	Category  string  `json:"category,omitempty"`
	Container string  `json:"container,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Fixed     bool    `json:"fixed,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n PlacedNode) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// PlacedContainer is a container with its computed rectangle.
type PlacedContainer struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Parent string  `json:"parent,omitempty"`
	Style  string  `json:"style,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Export converts a layout result for d into its serialization format.
// Containers without bounds (no descendant nodes) are omitted.
func Export(d *diagram.Diagram, res *layout.Result) Layout {
	l := Layout{
		Title:     d.Title,
		Algorithm: res.Algorithm,
		Width:     res.Width,
		Height:    res.Height,
		NodeSize:  res.Options.NodeSize,
		Nodes:     make([]PlacedNode, 0, d.NodeCount()),
	}

	for _, n := range d.Nodes() {
		p := res.Positions[n.ID]
		pn := PlacedNode{
			ID:        n.ID,
			Label:     n.Label,
			Provider:  string(n.Provider),
			Service:   n.Service,
			Category:  n.Category,
			Container: n.Container(),
			X:         p.X,
			Y:         p.Y,
			Fixed:     n.Position != nil && n.Position.Fixed,
		}
		l.Nodes = append(l.Nodes, pn)
	}

	for _, c := range parentsFirst(d) {
		r, ok := res.Bounds[c.ID]
		if !ok {
			continue
		}
		l.Containers = append(l.Containers, PlacedContainer{
			ID:     c.ID,
			Name:   c.Name,
			Parent: c.Parent(),
			Style:  c.Style,
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height,
		})
	}

	for _, e := range d.Edges() {
		l.Edges = append(l.Edges, edgeFromDiagram(e))
	}

	if res.Levels != nil {
		l.Rows = make(map[int][]string)
		for _, n := range d.Nodes() {
			lvl := res.Levels[n.ID]
			l.Rows[lvl] = append(l.Rows[lvl], n.ID)
		}
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that every edge and container parent refers to a listed entity.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	nodes := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		nodes[n.ID] = true
	}
	for _, e := range l.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			return Layout{}, fmt.Errorf("layout edge %s→%s references unknown node", e.From, e.To)
		}
	}
	containers := make(map[string]bool, len(l.Containers))
	for _, c := range l.Containers {
		if c.Parent != "" && !containers[c.Parent] {
			return Layout{}, fmt.Errorf("layout container %q listed before its parent %q", c.ID, c.Parent)
		}
		containers[c.ID] = true
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
