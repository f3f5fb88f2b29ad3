package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

// validateCommand creates the validate command that lints a diagram.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [diagram]",
		Short: "Check a diagram for errors and warnings",
		Long: `Parse a diagram and report structural problems.

Errors make the command exit non-zero. With --strict, isolated nodes,
self-loops and duplicate connections are reported as warnings too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDiagram(args[0])
			if err != nil {
				printError("%s", err)
				return err
			}

			report := diagram.Lint(d, strict)
			for _, msg := range report.Errors {
				printError("%s", msg)
			}
			for _, msg := range report.Warnings {
				printWarning("%s", msg)
			}
			if !report.Valid() {
				return fmt.Errorf("%s: %d error(s)", args[0], len(report.Errors))
			}

			printSuccess("%s is valid", args[0])
			if len(report.Warnings) > 0 {
				printDetail("%d warning(s)", len(report.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "report additional warnings")
	return cmd
}

// statsCommand creates the stats command that summarises a diagram.
func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [diagram]",
		Short: "Print diagram statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDiagram(args[0])
			if err != nil {
				return err
			}
			s := diagram.Stats(d)

			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			printKeyValue("Nodes", fmt.Sprint(s.NodeCount))
			printKeyValue("Edges", fmt.Sprint(s.EdgeCount))
			printKeyValue("Containers", fmt.Sprint(s.ContainerCount))
			printKeyValue("Max depth", fmt.Sprint(s.MaxDepth))
			printKeyValue("Top level", fmt.Sprint(s.TopLevelNodeCount))
			printKeyValue("Contained", fmt.Sprint(s.NodesInContainers))
			printKeyValue("Components", fmt.Sprint(s.DisconnectedComponentCount))
			for _, p := range slices.Sorted(maps.Keys(s.Providers)) {
				printKeyValue("Provider", fmt.Sprintf("%s: %d", p, s.Providers[p]))
			}
			for _, cat := range slices.Sorted(maps.Keys(s.Categories)) {
				printKeyValue("Category", fmt.Sprintf("%s: %d", cat, s.Categories[cat]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	return cmd
}
