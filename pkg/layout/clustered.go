package layout

import (
	"math"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

type block struct{ w, h float64 }

// group is one unit of the clustered layout: a container, or the implicit
// trailing group of top-level nodes (id "").
type group struct {
	id       string
	members  []string
	children []string
	layout   diagram.ContainerLayout
}

type clusterer struct {
	d     *diagram.Diagram
	o     diagram.LayoutOptions
	pos   map[string]Point
	sizes map[string]block
}

// clustered lays out every container as a padded block: its direct members
// in a row along the container's flow direction, followed by its child
// container blocks stacked beneath. Root blocks, plus one trailing block of
// top-level nodes, are arranged in Columns columns starting at the margin.
// Containers without any descendant node take no space.
func clustered(d *diagram.Diagram, o diagram.LayoutOptions, res *Result) {
	c := &clusterer{d: d, o: o, pos: res.Positions, sizes: make(map[string]block)}

	var groups []group
	for _, ct := range d.RootContainers() {
		if g, ok := c.group(ct.ID); ok {
			groups = append(groups, g)
		}
	}
	if top := d.TopLevelNodes(); len(top) > 0 {
		g := group{}
		for _, n := range top {
			g.members = append(g.members, n.ID)
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return
	}

	cols := min(o.Columns, len(groups))
	rows := (len(groups) + cols - 1) / cols
	colW := make([]float64, cols)
	rowH := make([]float64, rows)
	blocks := make([]block, len(groups))
	for i, g := range groups {
		blocks[i] = c.measure(g)
		colW[i%cols] = math.Max(colW[i%cols], blocks[i].w)
		rowH[i/cols] = math.Max(rowH[i/cols], blocks[i].h)
	}

	for i, g := range groups {
		x := o.Margin
		for col := range i % cols {
			x += colW[col] + o.ContainerSpacing
		}
		y := o.Margin
		for row := range i / cols {
			y += rowH[row] + o.ContainerSpacing
		}
		c.place(g, blocks[i], x, y)
	}
}

// group returns the layout unit for a container, or false if the container
// holds no nodes anywhere in its subtree.
func (c *clusterer) group(id string) (group, bool) {
	if len(c.d.AllMembers(id)) == 0 {
		return group{}, false
	}
	ct, _ := c.d.Container(id)
	g := group{id: id, members: ct.Members(), layout: ct.Layout}
	for _, child := range ct.Children() {
		if len(c.d.AllMembers(child)) > 0 {
			g.children = append(g.children, child)
		}
	}
	return g, true
}

func (c *clusterer) flow(l diagram.ContainerLayout) (vertical bool, spacing float64, align diagram.Alignment) {
	spacing = l.Spacing
	if spacing <= 0 {
		spacing = c.o.NodeSpacing
	}
	align = l.Alignment
	if align == "" {
		align = c.o.Alignment
	}
	return l.Direction == diagram.FlowVertical, spacing, align
}

func (c *clusterer) row(k int, vertical bool, spacing float64) block {
	if k == 0 {
		return block{}
	}
	long := float64(k-1)*spacing + c.o.NodeSize
	if vertical {
		return block{w: c.o.NodeSize, h: long}
	}
	return block{w: long, h: c.o.NodeSize}
}

func (c *clusterer) size(id string) block {
	if b, ok := c.sizes[id]; ok {
		return b
	}
	g, _ := c.group(id)
	b := c.measure(g)
	c.sizes[id] = b
	return b
}

func (c *clusterer) measure(g group) block {
	vertical, spacing, _ := c.flow(g.layout)
	content := c.row(len(g.members), vertical, spacing)
	gap := len(g.members) > 0
	for _, child := range g.children {
		b := c.size(child)
		if gap {
			content.h += c.o.ContainerSpacing
		}
		gap = true
		content.w = math.Max(content.w, b.w)
		content.h += b.h
	}
	pad := c.o.ContainerPadding
	return block{w: content.w + 2*pad, h: content.h + 2*pad}
}

func (c *clusterer) place(g group, b block, x, y float64) {
	pad := c.o.ContainerPadding
	x, y = x+pad, y+pad
	inner := b.w - 2*pad

	vertical, spacing, align := c.flow(g.layout)
	r := c.row(len(g.members), vertical, spacing)
	rx := x + offset(align, r.w, inner)
	half := c.o.NodeSize / 2
	for i, id := range g.members {
		step := float64(i) * spacing
		if vertical {
			c.pos[id] = Point{X: rx + half, Y: y + half + step}
		} else {
			c.pos[id] = Point{X: rx + half + step, Y: y + half}
		}
	}

	cy := y + r.h
	gap := len(g.members) > 0
	for _, id := range g.children {
		if gap {
			cy += c.o.ContainerSpacing
		}
		gap = true
		cb := c.size(id)
		child, _ := c.group(id)
		c.place(child, cb, x+offset(align, cb.w, inner), cy)
		cy += cb.h
	}
}

func offset(a diagram.Alignment, w, total float64) float64 {
	switch a {
	case diagram.AlignStart:
		return 0
	case diagram.AlignEnd:
		return total - w
	default:
		return (total - w) / 2
	}
}
