package layout

import (
	"math"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

// GridSize returns the column and row count used for n nodes.
func GridSize(n int) (cols, rows int) {
	if n == 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// grid places nodes row by row in insertion order, NodeSpacing apart on
// both axes, with the grid centered on the canvas. Edges and direction are
// ignored.
func grid(d *diagram.Diagram, o diagram.LayoutOptions, res *Result) {
	ids := d.NodeIDs()
	cols, rows := GridSize(len(ids))
	if cols == 0 {
		return
	}

	x0 := (o.Width - float64(cols-1)*o.NodeSpacing) / 2
	y0 := (o.Height - float64(rows-1)*o.NodeSpacing) / 2
	for i, id := range ids {
		res.Positions[id] = Point{
			X: x0 + float64(i%cols)*o.NodeSpacing,
			Y: y0 + float64(i/cols)*o.NodeSpacing,
		}
	}
}
