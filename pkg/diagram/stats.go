package diagram

// Statistics summarises a diagram's contents.
type Statistics struct {
	NodeCount      int              `json:"node_count"`
	EdgeCount      int              `json:"edge_count"`
	ContainerCount int              `json:"container_count"`
	Providers      map[Provider]int `json:"providers"`
	Categories     map[string]int   `json:"categories"`

	// MaxDepth is the deepest container nesting level (0 when every
	// container is a root, or there are none).
	MaxDepth int `json:"max_depth"`

	NodesInContainers          int     `json:"nodes_in_containers"`
	ContainersWithChildren     int     `json:"containers_with_children"`
	AverageNodesPerContainer   float64 `json:"average_nodes_per_container"`
	TopLevelNodeCount          int     `json:"top_level_node_count"`
	DisconnectedComponentCount int     `json:"disconnected_component_count"`
}

// Stats computes statistics for d. Nodes without a category are counted
// under "uncategorized".
func Stats(d *Diagram) Statistics {
	s := Statistics{
		NodeCount:      d.NodeCount(),
		EdgeCount:      d.EdgeCount(),
		ContainerCount: d.ContainerCount(),
		Providers:      make(map[Provider]int),
		Categories:     make(map[string]int),
	}

	for _, n := range d.Nodes() {
		s.Providers[n.Provider]++
		cat := n.Category
		if cat == "" {
			cat = "uncategorized"
		}
		s.Categories[cat]++
		if n.container == "" {
			s.TopLevelNodeCount++
		} else {
			s.NodesInContainers++
		}
	}

	for _, c := range d.Containers() {
		if depth := d.ContainerDepth(c.ID); depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if len(c.children) > 0 {
			s.ContainersWithChildren++
		}
	}
	if s.ContainerCount > 0 {
		s.AverageNodesPerContainer = float64(s.NodesInContainers) / float64(s.ContainerCount)
	}

	s.DisconnectedComponentCount = countComponents(d)
	return s
}

// countComponents counts weakly connected components with union-find.
func countComponents(d *Diagram) int {
	parent := make(map[string]string, d.NodeCount())
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, id := range d.nodeOrder {
		parent[id] = id
	}
	components := len(parent)
	for _, e := range d.edges {
		a, b := find(e.From), find(e.To)
		if a != b {
			parent[a] = b
			components--
		}
	}
	return components
}
