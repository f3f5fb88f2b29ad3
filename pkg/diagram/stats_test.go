package diagram

import "testing"

func TestStats(t *testing.T) {
	d := New("stats")
	nodes := []Node{
		{ID: "lb", Provider: ProviderAWS, Category: "network"},
		{ID: "api", Provider: ProviderAWS, Category: "compute"},
		{ID: "db", Provider: ProviderGCP, Category: "database"},
		{ID: "log"},
	}
	for _, n := range nodes {
		if err := d.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	_, _ = d.Connect("lb", "api", EdgeOptions{})
	_, _ = d.Connect("api", "db", EdgeOptions{})

	vpc := mustContainer(t, d, "vpc", "")
	mustContainer(t, d, "subnet", "vpc")
	_ = d.ReparentNode("lb", vpc.ID)
	_ = d.ReparentNode("api", "subnet")

	s := Stats(d)

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"NodeCount", s.NodeCount, 4},
		{"EdgeCount", s.EdgeCount, 2},
		{"ContainerCount", s.ContainerCount, 2},
		{"MaxDepth", s.MaxDepth, 1},
		{"NodesInContainers", s.NodesInContainers, 2},
		{"ContainersWithChildren", s.ContainersWithChildren, 1},
		{"TopLevelNodeCount", s.TopLevelNodeCount, 2},
		{"DisconnectedComponentCount", s.DisconnectedComponentCount, 2},
		{"Providers[aws]", s.Providers[ProviderAWS], 2},
		{"Providers[generic]", s.Providers[ProviderGeneric], 1},
		{"Categories[uncategorized]", s.Categories["uncategorized"], 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if s.AverageNodesPerContainer != 1 {
		t.Errorf("AverageNodesPerContainer = %v, want 1", s.AverageNodesPerContainer)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := Stats(New("empty"))
	if s.NodeCount != 0 || s.DisconnectedComponentCount != 0 || s.AverageNodesPerContainer != 0 {
		t.Errorf("unexpected stats for empty diagram: %+v", s)
	}
}
