package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/errors"
)

func newDiagram(t *testing.T, ids ...string) *diagram.Diagram {
	t.Helper()
	d := diagram.New("test")
	for _, id := range ids {
		if err := d.AddNode(diagram.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	return d
}

func connect(t *testing.T, d *diagram.Diagram, pairs ...[2]string) {
	t.Helper()
	for _, p := range pairs {
		if _, err := d.Connect(p[0], p[1], diagram.EdgeOptions{}); err != nil {
			t.Fatalf("Connect(%s, %s): %v", p[0], p[1], err)
		}
	}
}

func container(t *testing.T, d *diagram.Diagram, id, parent string, members ...string) {
	t.Helper()
	if _, err := d.CreateContainer(id, parent, diagram.WithContainerID(id)); err != nil {
		t.Fatalf("CreateContainer(%q): %v", id, err)
	}
	for _, m := range members {
		if err := d.ReparentNode(m, id); err != nil {
			t.Fatalf("ReparentNode(%q, %q): %v", m, id, err)
		}
	}
}

// fixtures returns a set of diagrams covering the shapes every algorithm
// must handle.
func fixtures(t *testing.T) map[string]*diagram.Diagram {
	empty := diagram.New("empty")

	single := newDiagram(t, "a")

	chain := newDiagram(t, "a", "b", "c")
	connect(t, chain, [2]string{"a", "b"}, [2]string{"b", "c"})

	cyclic := newDiagram(t, "a", "b", "c", "d")
	connect(t, cyclic, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "b"}, [2]string{"d", "d"})

	disconnected := newDiagram(t, "a", "b", "c", "d", "e")
	connect(t, disconnected, [2]string{"a", "b"})

	nested := newDiagram(t, "lb", "api", "worker", "db", "cache", "dns")
	connect(t, nested, [2]string{"dns", "lb"}, [2]string{"lb", "api"}, [2]string{"api", "db"},
		[2]string{"api", "cache"}, [2]string{"worker", "db"})
	container(t, nested, "vpc", "", "lb")
	container(t, nested, "private", "vpc", "api", "worker")
	container(t, nested, "data", "private", "db", "cache")
	container(t, nested, "empty", "vpc")
	container(t, nested, "other", "")

	large := diagram.New("large")
	for i := range 40 {
		_ = large.AddNode(diagram.Node{ID: fmt.Sprintf("n%02d", i)})
		if i > 0 {
			_, _ = large.Connect(fmt.Sprintf("n%02d", i/2), fmt.Sprintf("n%02d", i), diagram.EdgeOptions{})
		}
	}

	return map[string]*diagram.Diagram{
		"Empty":        empty,
		"Single":       single,
		"Chain":        chain,
		"Cyclic":       cyclic,
		"Disconnected": disconnected,
		"Nested":       nested,
		"Large":        large,
	}
}

func TestComputeAllAlgorithmsPositionEveryNode(t *testing.T) {
	for _, alg := range diagram.Algorithms {
		for name, d := range fixtures(t) {
			t.Run(string(alg)+"/"+name, func(t *testing.T) {
				res, err := Compute(d, diagram.LayoutOptions{Algorithm: alg})
				if err != nil {
					t.Fatalf("Compute: %v", err)
				}
				if res.Algorithm != alg {
					t.Errorf("Algorithm = %q, want %q", res.Algorithm, alg)
				}
				if len(res.Positions) != d.NodeCount() {
					t.Fatalf("positions = %d, want %d", len(res.Positions), d.NodeCount())
				}
				for _, n := range d.Nodes() {
					p, ok := res.Positions[n.ID]
					if !ok {
						t.Fatalf("node %q has no position", n.ID)
					}
					if !finite(p.X) || !finite(p.Y) {
						t.Errorf("node %q position not finite: %+v", n.ID, p)
					}
					if n.Position == nil || n.Position.X != p.X || n.Position.Y != p.Y {
						t.Errorf("node %q position not stamped: %+v vs %+v", n.ID, n.Position, p)
					}
				}
				if !finite(res.Width) || !finite(res.Height) || res.Width <= 0 || res.Height <= 0 {
					t.Errorf("extent = %vx%v", res.Width, res.Height)
				}
			})
		}
	}
}

func TestComputeBoundsEncloseDescendants(t *testing.T) {
	opts := DefaultOptions()
	for _, alg := range diagram.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			d := fixtures(t)["Nested"]
			res, err := Compute(d, diagram.LayoutOptions{Algorithm: alg})
			if err != nil {
				t.Fatal(err)
			}

			for _, id := range []string{"empty", "other"} {
				if _, ok := res.Bounds[id]; ok {
					t.Errorf("container %q holds no nodes but has bounds", id)
				}
			}

			for _, ct := range d.Containers() {
				r, ok := res.Bounds[ct.ID]
				if len(d.AllMembers(ct.ID)) == 0 {
					continue
				}
				if !ok {
					t.Fatalf("container %q has no bounds", ct.ID)
				}
				for _, m := range ct.Members() {
					if sq := Square(res.Positions[m], opts.NodeSize); !r.Encloses(sq) {
						t.Errorf("%s bounds %+v do not enclose member %s %+v", ct.ID, r, m, sq)
					}
				}
				for _, m := range d.AllMembers(ct.ID) {
					if !r.Contains(res.Positions[m]) {
						t.Errorf("%s bounds do not contain descendant %s", ct.ID, m)
					}
				}
				for _, child := range ct.Children() {
					if cb, ok := res.Bounds[child]; ok && !r.Encloses(cb) {
						t.Errorf("%s bounds %+v do not enclose child %s %+v", ct.ID, r, child, cb)
					}
				}
			}
		})
	}
}

func TestComputeOptionErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     diagram.LayoutOptions
		wantCode errors.Code
	}{
		{"UnknownAlgorithm", diagram.LayoutOptions{Algorithm: "spiral"}, errors.ErrCodeUnknownAlgorithm},
		{"NegativeNodeSpacing", diagram.LayoutOptions{NodeSpacing: -1}, errors.ErrCodeInvalidLayout},
		{"NegativeLevelSpacing", diagram.LayoutOptions{LevelSpacing: -10}, errors.ErrCodeInvalidLayout},
		{"NegativeContainerSpacing", diagram.LayoutOptions{ContainerSpacing: -0.5}, errors.ErrCodeInvalidLayout},
		{"NegativeColumns", diagram.LayoutOptions{Columns: -2}, errors.ErrCodeInvalidLayout},
		{"NegativeIterations", diagram.LayoutOptions{ForceIterations: -1}, errors.ErrCodeInvalidLayout},
		{"BadDirection", diagram.LayoutOptions{Direction: "UP"}, errors.ErrCodeInvalidLayout},
		{"BadAlignment", diagram.LayoutOptions{Alignment: "middle"}, errors.ErrCodeInvalidLayout},
		{"NaNWidth", diagram.LayoutOptions{Width: math.NaN()}, errors.ErrCodeInvalidLayout},
		{"InfMargin", diagram.LayoutOptions{Margin: math.Inf(1)}, errors.ErrCodeInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDiagram(t, "a", "b")
			res, err := Compute(d, tt.opts)
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("err = %v, want %s", err, tt.wantCode)
			}
			if !errors.IsLayout(err) {
				t.Errorf("err category = %q, want layout", errors.GetCategory(err))
			}
			if res != nil {
				t.Error("result should be nil on error")
			}
			for _, n := range d.Nodes() {
				if n.Position != nil {
					t.Errorf("node %q was positioned despite the error", n.ID)
				}
			}
		})
	}
}

func TestComputeDiagramUsesDiagramOptions(t *testing.T) {
	d := newDiagram(t, "a", "b", "c", "d")
	d.SetLayoutOptions(diagram.LayoutOptions{Algorithm: diagram.AlgorithmGrid})

	res, err := ComputeDiagram(d)
	if err != nil {
		t.Fatal(err)
	}
	if res.Algorithm != diagram.AlgorithmGrid {
		t.Errorf("Algorithm = %q, want grid", res.Algorithm)
	}
	if res.Levels != nil {
		t.Error("grid layout should not report levels")
	}
}

func TestComputeHonorsFixedPositions(t *testing.T) {
	for _, alg := range diagram.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			d := newDiagram(t, "a", "b", "c")
			connect(t, d, [2]string{"a", "b"}, [2]string{"b", "c"})
			if err := d.PositionNode("b", 7, 9, true); err != nil {
				t.Fatal(err)
			}

			res, err := Compute(d, diagram.LayoutOptions{Algorithm: alg})
			if err != nil {
				t.Fatal(err)
			}
			if got := res.Positions["b"]; got != (Point{X: 7, Y: 9}) {
				t.Errorf("fixed node moved to %+v", got)
			}
			n, _ := d.Node("b")
			if !n.Position.Fixed {
				t.Error("Fixed flag lost after stamping")
			}
			a, _ := d.Node("a")
			if a.Position.Fixed {
				t.Error("unfixed node became fixed")
			}
		})
	}
}

func TestComputeRerunIsStable(t *testing.T) {
	for _, alg := range diagram.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			d := fixtures(t)["Nested"]
			first, err := Compute(d, diagram.LayoutOptions{Algorithm: alg, Seed: 7})
			if err != nil {
				t.Fatal(err)
			}
			second, err := Compute(d, diagram.LayoutOptions{Algorithm: alg, Seed: 7})
			if err != nil {
				t.Fatal(err)
			}
			for id, p := range first.Positions {
				if second.Positions[id] != p {
					t.Errorf("node %q: %+v then %+v", id, p, second.Positions[id])
				}
			}
		})
	}
}

func TestSetDefaultsIdempotent(t *testing.T) {
	o := diagram.LayoutOptions{NodeSpacing: 50, Algorithm: diagram.AlgorithmForce}
	SetDefaults(&o)
	once := o
	SetDefaults(&o)
	if o != once {
		t.Errorf("second SetDefaults changed options: %+v -> %+v", once, o)
	}
	if o.NodeSpacing != 50 || o.Algorithm != diagram.AlgorithmForce {
		t.Errorf("explicit values overwritten: %+v", o)
	}
	if o.Seed != DefaultSeed || o.Direction != diagram.DirectionTB || o.Width != DefaultWidth {
		t.Errorf("defaults not applied: %+v", o)
	}
	if err := Validate(DefaultOptions()); err != nil {
		t.Errorf("DefaultOptions invalid: %v", err)
	}
}

func TestMerge(t *testing.T) {
	base := diagram.LayoutOptions{
		Algorithm:   diagram.AlgorithmGrid,
		NodeSpacing: 120,
		Margin:      10,
		Seed:        7,
	}
	override := diagram.LayoutOptions{
		Algorithm: diagram.AlgorithmForce,
		Margin:    30,
	}

	got := Merge(base, override)
	want := diagram.LayoutOptions{
		Algorithm:   diagram.AlgorithmForce,
		NodeSpacing: 120,
		Margin:      30,
		Seed:        7,
	}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
	if Merge(base, diagram.LayoutOptions{}) != base {
		t.Error("empty override changed base")
	}
}
