// Package render turns computed layouts into output artifacts.
//
// The [nodelink] subpackage emits Graphviz DOT with every node pinned to
// the position the layout engine chose, and renders that DOT to SVG. The
// [ToPDF] and [ToPNG] functions convert any SVG further using the external
// rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(l)
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/cloudgraph/pkg/render/nodelink
package render
