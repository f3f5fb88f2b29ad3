package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/cloudgraph/pkg/graph"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Title:    "web",
		Width:    400,
		Height:   300,
		NodeSize: 72,
		Nodes: []graph.PlacedNode{
			{ID: "lb", Label: "Load Balancer", X: 100, Y: 50},
			{ID: "api", Container: "app", X: 100, Y: 150},
			{ID: "db", Container: "data", X: 300, Y: 250, Fixed: true},
		},
		Containers: []graph.PlacedContainer{
			{ID: "vpc", Name: "VPC", X: 20, Y: 90, Width: 360, Height: 200},
			{ID: "app", Name: "App", Parent: "vpc", X: 40, Y: 100, Width: 120, Height: 100},
			{ID: "data", Name: "Data", Parent: "vpc", X: 240, Y: 200, Width: 120, Height: 80},
		},
		Edges: []graph.Edge{
			{From: "lb", To: "api"},
			{From: "api", To: "db", Label: "sql", Style: "dashed", Direction: "both"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleLayout())

	tests := []struct {
		name string
		want string
	}{
		{"Header", `digraph "web" {`},
		{"CanvasBox", `bb="0,0,400,300"`},
		{"NodeSizeInches", "width=1, height=1"},
		{"PinnedFlippedY", `"lb" [label="Load Balancer", pos="100,250!"];`},
		{"DefaultLabel", `"api" [label="api", pos="100,150!"];`},
		{"Cluster", `subgraph "cluster_vpc" {`},
		{"ClusterLabel", `label="VPC";`},
		{"ClusterBox", `bb="40,100,160,200";`},
		{"PlainEdge", `"lb" -> "api";`},
		{"StyledEdge", `"api" -> "db" [label="sql", style=dashed, dir=both];`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(dot, tt.want) {
				t.Errorf("DOT missing %s\n%s", tt.want, dot)
			}
		})
	}
}

func TestToDOTNestsClusters(t *testing.T) {
	dot := ToDOT(sampleLayout())

	vpc := strings.Index(dot, `"cluster_vpc"`)
	app := strings.Index(dot, `"cluster_app"`)
	data := strings.Index(dot, `"cluster_data"`)
	if vpc < 0 || app < vpc || data < app {
		t.Fatalf("clusters out of order: vpc=%d app=%d data=%d", vpc, app, data)
	}

	// The VPC cluster closes after both child clusters.
	lines := strings.Split(dot, "\n")
	var depth, vpcClose, dataOpen int
	for i, line := range lines {
		if strings.Contains(line, `"cluster_data"`) {
			dataOpen = i
		}
		if strings.Contains(line, "subgraph") {
			depth++
		}
		if strings.TrimSpace(line) == "}" && depth > 0 {
			depth--
			if depth == 0 && vpcClose == 0 {
				vpcClose = i
			}
		}
	}
	if vpcClose < dataOpen {
		t.Errorf("data cluster not nested inside vpc:\n%s", dot)
	}
	if !strings.Contains(dot, "    \"api\";") {
		t.Errorf("member api not listed inside its cluster:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(graph.Layout{Title: "empty", Width: 100, Height: 100, NodeSize: 36})
	if strings.Contains(dot, "subgraph") || strings.Contains(dot, "->") {
		t.Errorf("unexpected content in empty DOT:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT not terminated")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 10.00 20.00" width="10" height="20"`)) {
		t.Errorf("unexpected header: %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering skipped in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(sampleLayout()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
	if !bytes.Contains(svg, []byte("Load Balancer")) {
		t.Error("node label missing from SVG")
	}
}
