package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cloudgraph/pkg/graph"
)

func ExampleReadDiagram() {
	src := `
title = "Queue workers"

[[containers]]
id = "cluster"
name = "Workers"

[[nodes]]
id = "queue"
provider = "aws"
service = "sqs"

[[nodes]]
id = "worker"
container = "cluster"

[[edges]]
from = "queue"
to = "worker"
`
	d, err := graph.ReadDiagram(strings.NewReader(src), graph.FormatTOML)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(d.Title)
	fmt.Println(d.NodeIDs())
	c, _ := d.ContainerOf("worker")
	fmt.Println("worker in", c)
	// Output:
	// Queue workers
	// [queue worker]
	// worker in cluster
}

func ExampleReadDiagram_danglingEdge() {
	src := `{"title": "x", "nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "z"}]}`
	_, err := graph.ReadDiagram(strings.NewReader(src), graph.FormatJSON)
	fmt.Println(err)
	// Output:
	// UNKNOWN_NODE: edge 1 (a→z): edge target "z" not found
}
