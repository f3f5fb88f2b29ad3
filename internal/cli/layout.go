package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/graph"
	"github.com/matzehuels/cloudgraph/pkg/layout"
	"github.com/matzehuels/cloudgraph/pkg/pipeline"
)

// layoutFlags holds command-line layout overrides. Unset flags stay zero
// so they do not override the diagram or the config file.
type layoutFlags struct {
	algorithm string
	direction string
	alignment string

	nodeSize         float64
	nodeSpacing      float64
	levelSpacing     float64
	containerSpacing float64
	containerPadding float64
	margin           float64
	width            float64
	height           float64

	columns    int
	iterations int
	seed       uint64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.algorithm, "algorithm", "a", "", "layout algorithm: hierarchical, force, grid, clustered")
	fs.StringVar(&f.direction, "direction", "", "flow direction: LR, TB, RL, BT")
	fs.StringVar(&f.alignment, "alignment", "", "row alignment: start, center, end")
	fs.Float64Var(&f.nodeSize, "node-size", 0, "node diameter")
	fs.Float64Var(&f.nodeSpacing, "node-spacing", 0, "gap between nodes")
	fs.Float64Var(&f.levelSpacing, "level-spacing", 0, "gap between hierarchy levels")
	fs.Float64Var(&f.containerSpacing, "container-spacing", 0, "gap between containers")
	fs.Float64Var(&f.containerPadding, "container-padding", 0, "padding inside containers")
	fs.Float64Var(&f.margin, "margin", 0, "canvas margin")
	fs.Float64Var(&f.width, "width", 0, "canvas width")
	fs.Float64Var(&f.height, "height", 0, "canvas height")
	fs.IntVar(&f.columns, "columns", 0, "container columns (clustered layout)")
	fs.IntVar(&f.iterations, "iterations", 0, "simulation steps (force layout)")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (force layout)")
}

func (f *layoutFlags) options() diagram.LayoutOptions {
	return diagram.LayoutOptions{
		Algorithm:        diagram.Algorithm(strings.ToLower(f.algorithm)),
		Direction:        diagram.Direction(strings.ToUpper(f.direction)),
		Alignment:        diagram.Alignment(strings.ToLower(f.alignment)),
		NodeSize:         f.nodeSize,
		NodeSpacing:      f.nodeSpacing,
		LevelSpacing:     f.levelSpacing,
		ContainerSpacing: f.containerSpacing,
		ContainerPadding: f.containerPadding,
		Margin:           f.margin,
		Width:            f.width,
		Height:           f.height,
		Columns:          f.columns,
		ForceIterations:  f.iterations,
		Seed:             f.seed,
	}
}

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram]",
		Short: "Compute a layout and write it as JSON",
		Long: `Compute node positions and container bounds for a diagram.

The diagram may be JSON or TOML. The layout is written to <name>.layout.json
unless -o is given, and can be rendered later with "cloudgraph render".

Layout options are layered: flags override the diagram's own options, which
override the [layout] section of the config file.`,
		Example: `  cloudgraph layout web.toml
  cloudgraph layout web.json -a force --seed 7 -o web-force.layout.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			l, hit, err := c.runLayout(ctx, runner, args[0], flags.options(), refresh)
			if err != nil {
				return err
			}
			prog.done("computed layout")

			if output == "" {
				output = outputBase(args[0], "") + layoutExt
			}
			if err := graph.WriteLayoutFile(l, output); err != nil {
				return err
			}

			printSuccess("Layout computed (%s)", l.Algorithm)
			printStats(len(l.Nodes), len(l.Edges), len(l.Containers), hit)
			printFile(output)
			printNextStep("Render it", "cloudgraph render "+output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if the layout is cached")

	return cmd
}

// layoutExt is the file suffix of exported layouts.
const layoutExt = ".layout.json"

// loadDiagram parses path and layers the config file's layout defaults
// beneath the diagram's own options.
func (c *CLI) loadDiagram(path string) (*diagram.Diagram, error) {
	d, err := pipeline.Parse(pipeline.Options{Path: path})
	if err != nil {
		return nil, err
	}
	d.SetLayoutOptions(layout.Merge(c.config.Layout, d.LayoutOptions()))
	return d, nil
}

// runLayout parses path and lays it out with overrides on top.
func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, path string, overrides diagram.LayoutOptions, refresh bool) (graph.Layout, bool, error) {
	d, err := c.loadDiagram(path)
	if err != nil {
		return graph.Layout{}, false, err
	}
	c.Logger.Debug("parsed diagram", "path", path,
		"nodes", d.NodeCount(), "edges", d.EdgeCount(), "containers", d.ContainerCount())

	l, hit, err := runner.LayoutWithCacheInfo(ctx, d, pipeline.Options{
		Layout:  overrides,
		Refresh: refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, hit, nil
}

// outputBase strips the source extension (".json", ".toml" or
// ".layout.json") from path and, when dir is set, moves the result into dir.
func outputBase(path, dir string) string {
	base := path
	if strings.HasSuffix(base, layoutExt) {
		base = strings.TrimSuffix(base, layoutExt)
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if dir != "" {
		base = filepath.Join(dir, filepath.Base(base))
	}
	return base
}
