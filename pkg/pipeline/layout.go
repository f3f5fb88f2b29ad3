package pipeline

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cloudgraph/pkg/cache"
	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/graph"
	"github.com/matzehuels/cloudgraph/pkg/layout"
)

// ResolveLayoutOptions layers overrides on top of d's own options and
// applies defaults.
func ResolveLayoutOptions(d *diagram.Diagram, overrides diagram.LayoutOptions) (diagram.LayoutOptions, error) {
	return layout.Resolve(layout.Merge(d.LayoutOptions(), overrides))
}

// GenerateLayout computes and exports a layout without caching.
func GenerateLayout(d *diagram.Diagram, opts diagram.LayoutOptions, logger *log.Logger) (graph.Layout, error) {
	res, err := layout.Compute(d, opts, layout.WithLogger(logger))
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.Export(d, res), nil
}

// DiagramHash hashes the parts of d that influence layout. Positions that
// are not pinned are dropped, so laying out a diagram does not change its
// hash.
func DiagramHash(d *diagram.Diagram) string {
	g := graph.FromDiagram(d)
	for i := range g.Nodes {
		if p := g.Nodes[i].Position; p != nil && !p.Fixed {
			g.Nodes[i].Position = nil
		}
	}
	data, _ := json.Marshal(g)
	return cache.Hash(data)
}

// applyPositions writes cached coordinates back onto d, matching what a
// fresh computation would have done.
func applyPositions(d *diagram.Diagram, l graph.Layout) {
	for _, n := range l.Nodes {
		_ = d.PositionNode(n.ID, n.X, n.Y, n.Fixed)
	}
}
