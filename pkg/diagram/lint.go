package diagram

import (
	"fmt"
	"strings"
)

// Report is the result of linting a diagram.
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether the report contains no errors. Warnings do not
// affect validity.
func (r Report) Valid() bool { return len(r.Errors) == 0 }

// Lint checks a diagram for problems that the model itself permits but that
// usually indicate a mistake in the source.
//
// Errors: missing title, blank container names. Warnings: empty diagram,
// several nodes with no edges, empty containers. Dangling edges cannot
// exist in a Diagram, so decoders report them instead.
//
// In strict mode Lint also warns about isolated nodes, self-loops and
// duplicate edges.
func Lint(d *Diagram, strict bool) Report {
	var r Report

	if strings.TrimSpace(d.Title) == "" {
		r.Errors = append(r.Errors, "diagram must have a title")
	}
	if d.NodeCount() == 0 {
		r.Warnings = append(r.Warnings, "diagram has no nodes")
	}
	if d.EdgeCount() == 0 && d.NodeCount() > 1 {
		r.Warnings = append(r.Warnings, "diagram has multiple nodes but no connections")
	}

	for i, c := range d.Containers() {
		if strings.TrimSpace(c.Name) == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("container %d: container must have a name", i+1))
		}
		if c.IsEmpty() {
			r.Warnings = append(r.Warnings, fmt.Sprintf("container %q is empty", c.Name))
		}
	}

	if !strict {
		return r
	}

	if d.NodeCount() > 1 {
		for _, n := range d.Nodes() {
			if d.InDegree(n.ID) == 0 && d.OutDegree(n.ID) == 0 {
				r.Warnings = append(r.Warnings,
					fmt.Sprintf("node %q is isolated (not connected to any other node)", n.DisplayLabel()))
			}
		}
	}

	seen := make(map[[2]string]bool, len(d.edges))
	for i, e := range d.edges {
		if e.From == e.To {
			r.Warnings = append(r.Warnings, fmt.Sprintf("edge %d: self-loop on %q", i+1, e.From))
		}
		key := [2]string{e.From, e.To}
		if seen[key] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("edge %d: duplicate edge %s -> %s", i+1, e.From, e.To))
		}
		seen[key] = true
	}

	return r
}
