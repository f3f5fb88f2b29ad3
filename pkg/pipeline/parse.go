package pipeline

import (
	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/graph"
)

// Parse decodes the diagram named by opts.
func Parse(opts Options) (*diagram.Diagram, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	if len(opts.Data) > 0 {
		return graph.UnmarshalDiagram(opts.Data, opts.Format)
	}
	return graph.ReadDiagramFile(opts.Path)
}
