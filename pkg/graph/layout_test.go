package graph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/layout"
)

func TestExport(t *testing.T) {
	d := buildWeb(t)
	if _, err := d.CreateContainer("Empty", "", diagram.WithContainerID("empty")); err != nil {
		t.Fatal(err)
	}
	res, err := layout.Compute(d, diagram.LayoutOptions{Algorithm: diagram.AlgorithmHierarchical})
	if err != nil {
		t.Fatal(err)
	}

	l := Export(d, res)

	if l.Title != "Web tier" || l.Algorithm != diagram.AlgorithmHierarchical {
		t.Errorf("header = %q %q", l.Title, l.Algorithm)
	}
	if l.NodeSize != layout.DefaultNodeSize {
		t.Errorf("NodeSize = %v", l.NodeSize)
	}
	if len(l.Nodes) != 2 || l.Nodes[1].ID != "api" || !l.Nodes[1].Fixed {
		t.Errorf("nodes = %+v", l.Nodes)
	}
	if l.Nodes[1].X != 10 || l.Nodes[1].Y != 20 {
		t.Errorf("fixed node exported at %v,%v", l.Nodes[1].X, l.Nodes[1].Y)
	}
	if len(l.Containers) != 2 {
		t.Fatalf("containers = %+v, want vpc and subnet only", l.Containers)
	}
	if l.Containers[0].ID != "vpc" || l.Containers[1].Parent != "vpc" {
		t.Errorf("containers not parents first: %+v", l.Containers)
	}
	if len(l.Rows[0]) == 0 {
		t.Errorf("rows = %v", l.Rows)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	d := buildWeb(t)
	res, err := layout.ComputeDiagram(d)
	if err != nil {
		t.Fatal(err)
	}
	l := Export(d, res)

	path := filepath.Join(t.TempDir(), "arch.layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatal(err)
	}
	back, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if len(back.Nodes) != len(l.Nodes) || len(back.Containers) != len(l.Containers) {
		t.Errorf("round trip lost entities: %+v", back)
	}
	for i := range l.Nodes {
		if back.Nodes[i] != l.Nodes[i] {
			t.Errorf("node %d: %+v vs %+v", i, back.Nodes[i], l.Nodes[i])
		}
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Invalid", `{`, "unmarshal layout"},
		{"DanglingEdge", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`, "unknown node"},
		{"ParentOrder", `{"nodes": [], "containers": [{"id": "c", "parent": "p"}, {"id": "p"}]}`, "before its parent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
