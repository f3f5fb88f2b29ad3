// Package nodelink exports computed layouts as node-link diagrams.
//
// [ToDOT] writes Graphviz DOT in which every node carries a pinned
// pos="x,y!" attribute and every container becomes a nested
// subgraph cluster with its bounding box. [RenderSVG] renders that DOT
// with the neato engine, which honours pinned positions, so the picture
// matches the layout engine's coordinates instead of Graphviz's own.
//
// Layout coordinates grow downwards; DOT coordinates grow upwards. ToDOT
// flips the y axis against the layout height.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
