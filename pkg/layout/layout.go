package layout

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

// Result is the output of a layout computation.
type Result struct {
	Algorithm diagram.Algorithm `json:"algorithm"`

	// Options are the resolved options the layout was computed with.
	Options diagram.LayoutOptions `json:"options"`

	// Positions holds the center of every node.
	Positions map[string]Point `json:"positions"`

	// Bounds holds one rectangle per container that has at least one
	// descendant node.
	Bounds map[string]Rect `json:"bounds"`

	// Levels holds the topological level of every node. Only the
	// hierarchical algorithm sets it.
	Levels map[string]int `json:"levels,omitempty"`

	// Width and Height cover the canvas and every node and container
	// rectangle, whichever is larger.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Option configures a layout run.
type Option func(*config)

type config struct {
	logger *log.Logger
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

type algorithmFunc func(d *diagram.Diagram, o diagram.LayoutOptions, res *Result)

var algorithms = map[diagram.Algorithm]algorithmFunc{
	diagram.AlgorithmHierarchical: hierarchical,
	diagram.AlgorithmForce:        force,
	diagram.AlgorithmGrid:         grid,
	diagram.AlgorithmClustered:    clustered,
}

// ComputeDiagram lays out d using the diagram's own layout options.
func ComputeDiagram(d *diagram.Diagram, opts ...Option) (*Result, error) {
	return Compute(d, d.LayoutOptions(), opts...)
}

// Compute lays out d with the given options and writes the resulting
// positions back onto d's nodes. Nodes with a Fixed position keep it.
//
// Returns UNKNOWN_ALGORITHM or INVALID_LAYOUT if the options are rejected; d
// is not modified in that case.
func Compute(d *diagram.Diagram, o diagram.LayoutOptions, opts ...Option) (*Result, error) {
	cfg := config{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&cfg)
	}

	o, err := Resolve(o)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{
		Algorithm: o.Algorithm,
		Options:   o,
		Positions: make(map[string]Point, d.NodeCount()),
	}
	algorithms[o.Algorithm](d, o, res)

	for id, p := range fixedPositions(d) {
		res.Positions[id] = p
	}

	res.Bounds = ComputeBounds(d, res.Positions, o)
	res.Width, res.Height = extent(res, o)

	for _, n := range d.Nodes() {
		p, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		fixed := n.Position != nil && n.Position.Fixed
		n.Position = &diagram.Position{X: p.X, Y: p.Y, Fixed: fixed}
	}

	cfg.logger.Debug("layout computed",
		"algorithm", o.Algorithm,
		"nodes", d.NodeCount(),
		"containers", d.ContainerCount(),
		"duration", time.Since(start))
	return res, nil
}

func extent(res *Result, o diagram.LayoutOptions) (float64, float64) {
	w, h := o.Width, o.Height
	grow := func(r Rect) {
		w = math.Max(w, r.Right()+o.Margin)
		h = math.Max(h, r.Bottom()+o.Margin)
	}
	for _, p := range res.Positions {
		grow(Square(p, o.NodeSize))
	}
	for _, r := range res.Bounds {
		grow(r)
	}
	return w, h
}

// fixedPositions returns the pinned nodes of d.
func fixedPositions(d *diagram.Diagram) map[string]Point {
	out := make(map[string]Point)
	for _, n := range d.Nodes() {
		if n.Position != nil && n.Position.Fixed {
			out[n.ID] = Point{X: n.Position.X, Y: n.Position.Y}
		}
	}
	return out
}
