package cache

import "github.com/matzehuels/cloudgraph/pkg/diagram"

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// LayoutKey identifies the layout of a diagram (by content hash) under
	// the given resolved options.
	LayoutKey(diagramHash string, opts diagram.LayoutOptions) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash, format string) string
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the diagram hash together with every option field.
func (DefaultKeyer) LayoutKey(diagramHash string, opts diagram.LayoutOptions) string {
	return hashKey("layout", diagramHash, opts)
}

// ArtifactKey hashes the layout hash and output format.
func (DefaultKeyer) ArtifactKey(layoutHash, format string) string {
	return hashKey("artifact", layoutHash, format)
}

var _ Keyer = DefaultKeyer{}
