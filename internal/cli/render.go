package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudgraph/pkg/graph"
	"github.com/matzehuels/cloudgraph/pkg/pipeline"
	"github.com/matzehuels/cloudgraph/pkg/render"
)

// renderCommand creates the render command for producing output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    layoutFlags
		formats  string
		outDir   string
		pngScale float64
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "render [diagram|layout]",
		Short: "Render a diagram or a computed layout",
		Long: `Render a diagram to one or more output formats.

The input is either a diagram (JSON or TOML), which is laid out first, or a
layout written by "cloudgraph layout" (*.layout.json), which is rendered as-is.

Formats: json, dot, svg, pdf, png. PDF and PNG require rsvg-convert.`,
		Example: `  cloudgraph render web.toml
  cloudgraph render web.toml -f svg,dot,png -d out/
  cloudgraph render web.layout.json -f pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := parseFormats(formats)
			if err != nil {
				return err
			}
			if needsConverter(list) && !render.Available() {
				return fmt.Errorf("formats %s require rsvg-convert (install librsvg)", strings.Join(list, ","))
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinner(ctx, c.errOut, "Rendering "+args[0]+"...")
			spin.Start()

			var (
				l         graph.Layout
				layoutHit bool
			)
			fromLayout := strings.HasSuffix(args[0], layoutExt)
			if fromLayout {
				l, err = graph.ReadLayoutFile(args[0])
			} else {
				l, layoutHit, err = c.runLayout(ctx, runner, args[0], flags.options(), refresh)
			}
			if err != nil {
				spin.Stop()
				return err
			}

			artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, pipeline.Options{
				Formats:  list,
				PNGScale: pngScale,
				Refresh:  refresh,
				Logger:   c.Logger,
			})
			spin.Stop()
			if err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			base := outputBase(args[0], outDir)

			printSuccess("Rendered %s", strings.Join(list, ", "))
			printStats(len(l.Nodes), len(l.Edges), len(l.Containers), (fromLayout || layoutHit) && renderHit)
			for _, format := range list {
				path := base + artifactExt(format)
				if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.DefaultFormat, "comma-separated output formats")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "", "output directory (default next to the input)")
	cmd.Flags().Float64Var(&pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached layouts and artifacts")

	return cmd
}

// artifactExt returns the file suffix for a rendered format.
func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return layoutExt
	}
	return "." + format
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPDF) || slices.Contains(formats, pipeline.FormatPNG)
}
