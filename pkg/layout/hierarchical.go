package layout

import "github.com/matzehuels/cloudgraph/pkg/diagram"

// Levels assigns topological levels with Kahn's algorithm. Nodes with no
// incoming edges form level 0; each level is drained completely before the
// next one starts. Nodes never released this way (members of a cycle, or
// downstream of one) are appended together as one trailing level in
// insertion order. This is not cycle breaking: every node of the cyclic
// part ends up on the same level.
//
// The returned slices list node ids per level in a deterministic order:
// level 0 follows insertion order, later levels follow edge order.
func Levels(d *diagram.Diagram) [][]string {
	indeg := make(map[string]int, d.NodeCount())
	for _, id := range d.NodeIDs() {
		indeg[id] = d.InDegree(id)
	}

	var levels [][]string
	var current []string
	for _, id := range d.NodeIDs() {
		if indeg[id] == 0 {
			current = append(current, id)
		}
	}

	placed := make(map[string]bool, d.NodeCount())
	for len(current) > 0 {
		levels = append(levels, current)
		var next []string
		for _, id := range current {
			placed[id] = true
			for _, child := range d.Children(id) {
				indeg[child]--
				if indeg[child] == 0 {
					next = append(next, child)
				}
			}
		}
		current = next
	}

	var rest []string
	for _, id := range d.NodeIDs() {
		if !placed[id] {
			rest = append(rest, id)
		}
	}
	if len(rest) > 0 {
		levels = append(levels, rest)
	}
	return levels
}

// hierarchical places levels along the flow direction, LevelSpacing apart,
// starting at the margin. Within a level nodes are NodeSpacing apart and
// aligned on the transverse axis according to Alignment.
func hierarchical(d *diagram.Diagram, o diagram.LayoutOptions, res *Result) {
	levels := Levels(d)
	res.Levels = make(map[string]int, d.NodeCount())

	mainExtent, crossExtent := o.Height, o.Width
	if o.Direction.Horizontal() {
		mainExtent, crossExtent = o.Width, o.Height
	}

	for li, ids := range levels {
		main := o.Margin + float64(li)*o.LevelSpacing
		if o.Direction.Reversed() {
			main = mainExtent - main
		}

		span := float64(len(ids)-1) * o.NodeSpacing
		first := alignStart(o.Alignment, span, crossExtent, o.Margin)

		for i, id := range ids {
			res.Levels[id] = li
			cross := first + float64(i)*o.NodeSpacing
			if o.Direction.Horizontal() {
				res.Positions[id] = Point{X: main, Y: cross}
			} else {
				res.Positions[id] = Point{X: cross, Y: main}
			}
		}
	}
}

// alignStart returns the coordinate of the first item of a row spanning span
// units inside [0, extent].
func alignStart(a diagram.Alignment, span, extent, margin float64) float64 {
	switch a {
	case diagram.AlignStart:
		return margin
	case diagram.AlignEnd:
		return extent - margin - span
	default:
		return (extent - span) / 2
	}
}
