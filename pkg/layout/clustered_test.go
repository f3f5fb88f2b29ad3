package layout

import (
	"testing"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

func TestClusteredTwoContainers(t *testing.T) {
	d := newDiagram(t, "A", "B", "C")
	connect(t, d, [2]string{"A", "C"})
	container(t, d, "X", "", "A", "B")
	container(t, d, "Y", "", "C")

	res, err := Compute(d, diagram.LayoutOptions{Algorithm: diagram.AlgorithmClustered})
	if err != nil {
		t.Fatal(err)
	}

	x, y := res.Bounds["X"], res.Bounds["Y"]
	if x.Overlaps(y) {
		t.Errorf("bounds overlap: X=%+v Y=%+v", x, y)
	}
	for _, id := range []string{"A", "B"} {
		if !x.Contains(res.Positions[id]) {
			t.Errorf("X does not contain %s", id)
		}
		if y.Contains(res.Positions[id]) {
			t.Errorf("Y contains %s", id)
		}
	}
	if !y.Contains(res.Positions["C"]) {
		t.Error("Y does not contain C")
	}
	if x.Contains(res.Positions["C"]) {
		t.Error("X contains C")
	}

	a, b := res.Positions["A"], res.Positions["B"]
	if a.Y != b.Y || b.X-a.X != DefaultNodeSpacing {
		t.Errorf("members not in a row: A=%+v B=%+v", a, b)
	}
	if x.X != DefaultMargin || x.Y != DefaultMargin {
		t.Errorf("first block at %v,%v, want margin", x.X, x.Y)
	}
	if gap := y.X - x.Right(); gap != DefaultContainerSpacing {
		t.Errorf("column gap = %v, want %v", gap, DefaultContainerSpacing)
	}
}

func TestClusteredColumnsAndTrailingGroup(t *testing.T) {
	d := newDiagram(t, "a", "b", "c", "loose1", "loose2")
	container(t, d, "one", "", "a")
	container(t, d, "two", "", "b")
	container(t, d, "three", "", "c")

	res, err := Compute(d, diagram.LayoutOptions{Algorithm: diagram.AlgorithmClustered, Columns: 2})
	if err != nil {
		t.Fatal(err)
	}

	one, two, three := res.Bounds["one"], res.Bounds["two"], res.Bounds["three"]
	if one.Y != two.Y {
		t.Errorf("one and two should share a row: %v vs %v", one.Y, two.Y)
	}
	if three.X != one.X || three.Y <= one.Bottom() {
		t.Errorf("three should start the second row: %+v", three)
	}
	l1, l2 := res.Positions["loose1"], res.Positions["loose2"]
	if l1.Y != l2.Y || l1.Y <= one.Bottom() {
		t.Errorf("top-level nodes should trail in the second row: %+v %+v", l1, l2)
	}
	if l1.X <= three.Right() {
		t.Errorf("trailing group overlaps three: %+v vs %+v", l1, three)
	}
	rects := []Rect{one, two, three, Square(l1, DefaultNodeSize), Square(l2, DefaultNodeSize)}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				t.Errorf("rect %d overlaps rect %d", i, j)
			}
		}
	}
}

func TestClusteredNested(t *testing.T) {
	d := newDiagram(t, "edge", "app1", "app2", "db")
	container(t, d, "vpc", "", "edge")
	container(t, d, "app", "vpc", "app1", "app2")
	container(t, d, "data", "vpc", "db")
	container(t, d, "hollow", "vpc")

	res, err := Compute(d, diagram.LayoutOptions{Algorithm: diagram.AlgorithmClustered})
	if err != nil {
		t.Fatal(err)
	}

	vpc, app, data := res.Bounds["vpc"], res.Bounds["app"], res.Bounds["data"]
	if !vpc.Encloses(app) || !vpc.Encloses(data) {
		t.Errorf("vpc %+v does not enclose app %+v and data %+v", vpc, app, data)
	}
	if app.Overlaps(data) {
		t.Errorf("sibling containers overlap: %+v %+v", app, data)
	}
	if data.Y-app.Bottom() != DefaultContainerSpacing {
		t.Errorf("sibling gap = %v, want %v", data.Y-app.Bottom(), DefaultContainerSpacing)
	}
	if res.Positions["edge"].Y >= app.Y {
		t.Error("direct members should sit above child containers")
	}
	if _, ok := res.Bounds["hollow"]; ok {
		t.Error("empty container got bounds")
	}
}

func TestClusteredContainerLayout(t *testing.T) {
	d := newDiagram(t, "a", "b", "c")
	if _, err := d.CreateContainer("col", "",
		diagram.WithContainerID("col"),
		diagram.WithContainerLayout(diagram.ContainerLayout{Direction: diagram.FlowVertical, Spacing: 150}),
	); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"a", "b", "c"} {
		_ = d.ReparentNode(id, "col")
	}

	res, err := Compute(d, diagram.LayoutOptions{Algorithm: diagram.AlgorithmClustered})
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := res.Positions["a"], res.Positions["b"], res.Positions["c"]
	if a.X != b.X || b.X != c.X {
		t.Errorf("vertical container not in a column: %+v %+v %+v", a, b, c)
	}
	if b.Y-a.Y != 150 || c.Y-b.Y != 150 {
		t.Errorf("container spacing not applied: %v %v %v", a.Y, b.Y, c.Y)
	}
}
