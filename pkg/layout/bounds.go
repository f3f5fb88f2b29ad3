package layout

import "github.com/matzehuels/cloudgraph/pkg/diagram"

// ComputeBounds derives one rectangle per container from final node
// positions. Containers are visited children first; each rectangle is the
// union of its direct members' squares (NodeSize wide, centered on the node)
// and its children's rectangles, inflated by ContainerPadding. A parent
// therefore always encloses every descendant.
//
// Containers with no descendant nodes get no entry. Members missing from
// positions are skipped.
func ComputeBounds(d *diagram.Diagram, positions map[string]Point, o diagram.LayoutOptions) map[string]Rect {
	bounds := make(map[string]Rect, d.ContainerCount())
	for _, id := range d.PostOrder() {
		ct, _ := d.Container(id)

		var r Rect
		have := false
		add := func(next Rect) {
			if have {
				r = r.Union(next)
			} else {
				r, have = next, true
			}
		}
		for _, m := range ct.Members() {
			if p, ok := positions[m]; ok {
				add(Square(p, o.NodeSize))
			}
		}
		for _, child := range ct.Children() {
			if cb, ok := bounds[child]; ok {
				add(cb)
			}
		}
		if have {
			bounds[id] = r.Inflate(o.ContainerPadding)
		}
	}
	return bounds
}
