package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

// Simulation constants. Forces are applied to velocities, scaled by the
// cooling factor alpha, which decays from 1 to alphaMin over the configured
// number of iterations.
const (
	chargeStrength   = -800.0
	linkStrength     = 0.8
	centerStrength   = 0.1
	velocityDecay    = 0.4
	collisionPadding = 30.0
	alphaMin         = 0.001
)

type simulation struct {
	x, y   []float64
	vx, vy []float64
	pinned []bool
	links  [][2]int
	rng    *rand.Rand
}

// force runs a fixed-step force-directed simulation. Nodes with a Fixed
// position are pinned; every other node starts at a seeded random point in
// the middle half of the canvas. Final positions are clamped so unpinned
// nodes stay fully on the canvas.
func force(d *diagram.Diagram, o diagram.LayoutOptions, res *Result) {
	ids := d.NodeIDs()
	n := len(ids)
	if n == 0 {
		return
	}

	s := &simulation{
		x: make([]float64, n), y: make([]float64, n),
		vx: make([]float64, n), vy: make([]float64, n),
		pinned: make([]bool, n),
		rng:    rand.New(rand.NewPCG(o.Seed, o.Seed^0xdeadbeef)),
	}

	index := make(map[string]int, n)
	pins := fixedPositions(d)
	for i, id := range ids {
		index[id] = i
		if p, ok := pins[id]; ok {
			s.x[i], s.y[i], s.pinned[i] = p.X, p.Y, true
			continue
		}
		s.x[i] = o.Width/4 + s.rng.Float64()*o.Width/2
		s.y[i] = o.Height/4 + s.rng.Float64()*o.Height/2
	}
	for _, e := range d.Edges() {
		a, b := index[e.From], index[e.To]
		if a != b {
			s.links = append(s.links, [2]int{a, b})
		}
	}

	iterations := o.ForceIterations
	decay := 1 - math.Pow(alphaMin, 1/float64(iterations))
	alpha := 1.0
	radius := o.NodeSize/2 + collisionPadding
	for range iterations {
		s.step(alpha, o, radius)
		alpha -= alpha * decay
	}

	for i, id := range ids {
		x, y := s.x[i], s.y[i]
		if !s.pinned[i] {
			x = clamp(x, o.NodeSize/2, o.Width-o.NodeSize/2)
			y = clamp(y, o.NodeSize/2, o.Height-o.NodeSize/2)
		}
		res.Positions[id] = Point{X: x, Y: y}
	}
}

func (s *simulation) step(alpha float64, o diagram.LayoutOptions, radius float64) {
	n := len(s.x)

	for i := range n {
		for j := i + 1; j < n; j++ {
			dx, dy := s.delta(i, j)
			l2 := math.Max(dx*dx+dy*dy, 1)
			w := chargeStrength * alpha / l2
			s.vx[i] += dx * w
			s.vy[i] += dy * w
			s.vx[j] -= dx * w
			s.vy[j] -= dy * w
		}
	}

	for _, l := range s.links {
		a, b := l[0], l[1]
		dx := s.x[b] + s.vx[b] - s.x[a] - s.vx[a]
		dy := s.y[b] + s.vy[b] - s.y[a] - s.vy[a]
		if dx == 0 && dy == 0 {
			dx, dy = s.jiggle(), s.jiggle()
		}
		dist := math.Hypot(dx, dy)
		k := (dist - o.NodeSpacing) / dist * alpha * linkStrength / 2
		dx, dy = dx*k, dy*k
		s.vx[b] -= dx
		s.vy[b] -= dy
		s.vx[a] += dx
		s.vy[a] += dy
	}

	cx, cy := o.Width/2, o.Height/2
	for i := range n {
		s.vx[i] += (cx - s.x[i]) * centerStrength * alpha
		s.vy[i] += (cy - s.y[i]) * centerStrength * alpha
	}

	for i := range n {
		if s.pinned[i] {
			s.vx[i], s.vy[i] = 0, 0
			continue
		}
		s.vx[i] *= 1 - velocityDecay
		s.vy[i] *= 1 - velocityDecay
		s.x[i] += s.vx[i]
		s.y[i] += s.vy[i]
	}

	s.collide(2 * radius)
}

// collide pushes apart every pair closer than minDist. A pinned node never
// moves; its partner absorbs the whole correction.
func (s *simulation) collide(minDist float64) {
	n := len(s.x)
	for i := range n {
		for j := i + 1; j < n; j++ {
			if s.pinned[i] && s.pinned[j] {
				continue
			}
			dx, dy := s.delta(i, j)
			l := math.Hypot(dx, dy)
			if l >= minDist {
				continue
			}
			overlap := (minDist - l) / l
			wi, wj := 0.5, 0.5
			switch {
			case s.pinned[i]:
				wi, wj = 0, 1
			case s.pinned[j]:
				wi, wj = 1, 0
			}
			s.x[i] -= dx * overlap * wi
			s.y[i] -= dy * overlap * wi
			s.x[j] += dx * overlap * wj
			s.y[j] += dy * overlap * wj
		}
	}
}

// delta returns the vector from i to j, nudged off zero so that coincident
// nodes still have a direction.
func (s *simulation) delta(i, j int) (float64, float64) {
	dx, dy := s.x[j]-s.x[i], s.y[j]-s.y[i]
	if dx == 0 && dy == 0 {
		dx, dy = s.jiggle(), s.jiggle()
	}
	return dx, dy
}

func (s *simulation) jiggle() float64 {
	v := s.rng.Float64() - 0.5
	if v == 0 {
		v = 0.5
	}
	return v * 1e-6
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
