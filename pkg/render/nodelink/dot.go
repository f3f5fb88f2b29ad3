package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cloudgraph/pkg/graph"
)

// pointsPerInch converts layout units (points) to Graphviz node sizes.
const pointsPerInch = 72.0

// ToDOT converts a computed layout to Graphviz DOT.
func ToDOT(l graph.Layout) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", l.Title)
	fmt.Fprintf(&buf, "  graph [bgcolor=\"transparent\", splines=true, overlap=true, outputorder=edgesfirst, bb=\"0,0,%s,%s\"];\n",
		num(l.Width), num(l.Height))
	size := num(l.NodeSize / pointsPerInch)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, width=%s, height=%s, fontsize=14];\n",
		size, size)
	buf.WriteString("\n")

	members := make(map[string][]string)
	children := make(map[string][]string)
	for _, n := range l.Nodes {
		if n.Container != "" {
			members[n.Container] = append(members[n.Container], n.ID)
		}
	}
	var roots []string
	for _, c := range l.Containers {
		if c.Parent == "" {
			roots = append(roots, c.ID)
		} else {
			children[c.Parent] = append(children[c.Parent], c.ID)
		}
	}
	byID := make(map[string]graph.PlacedContainer, len(l.Containers))
	for _, c := range l.Containers {
		byID[c.ID] = c
	}

	var cluster func(id string, depth int)
	cluster = func(id string, depth int) {
		c := byID[id]
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(&buf, "%ssubgraph %q {\n", indent, "cluster_"+c.ID)
		fmt.Fprintf(&buf, "%s  label=%q;\n", indent, c.Name)
		fmt.Fprintf(&buf, "%s  style=\"rounded,dashed\";\n", indent)
		fmt.Fprintf(&buf, "%s  bb=\"%s,%s,%s,%s\";\n", indent,
			num(c.X), num(l.Height-(c.Y+c.Height)), num(c.X+c.Width), num(l.Height-c.Y))
		for _, n := range members[id] {
			fmt.Fprintf(&buf, "%s  %q;\n", indent, n)
		}
		for _, child := range children[id] {
			cluster(child, depth+1)
		}
		fmt.Fprintf(&buf, "%s}\n", indent)
	}
	for _, id := range roots {
		cluster(id, 1)
	}
	if len(roots) > 0 {
		buf.WriteString("\n")
	}

	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%s,%s!\"];\n", n.ID, n.DisplayLabel(), num(n.X), num(l.Height-n.Y))
	}

	if len(l.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range l.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e graph.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Style != "" && e.Style != "solid" {
		attrs = append(attrs, fmt.Sprintf("style=%s", e.Style))
	}
	switch e.Direction {
	case "back", "both", "none":
		attrs = append(attrs, fmt.Sprintf("dir=%s", e.Direction))
	}
	return attrs
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT produced by [ToDOT] to SVG using Graphviz's neato
// engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's fixed-unit svg header with a
// scalable one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
