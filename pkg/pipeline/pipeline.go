// Package pipeline runs the parse → layout → render flow shared by the CLI
// and the HTTP service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode a diagram from a JSON or TOML source
//  2. Layout: compute node positions and container bounds
//  3. Render: produce artifacts (JSON layout, DOT, SVG, PDF, PNG)
//
// Layout and render results are cached. Layout computation is
// deterministic, so the key is a hash of the diagram's layout-relevant
// content plus its fully resolved options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "web.toml",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	d, err := pipeline.Parse(opts)
//	l, err := runner.Layout(ctx, d, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/graph"
	"github.com/matzehuels/cloudgraph/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatSVG

// DefaultPNGScale is the resolution multiplier for PNG output.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// ValidSourceFormats is the set of supported diagram source formats.
var ValidSourceFormats = map[string]bool{
	graph.FormatJSON: true,
	graph.FormatTOML: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Parse options. Data takes precedence over Path.
	Path   string `json:"path,omitempty"`
	Data   []byte `json:"-"`
	Format string `json:"format,omitempty"`

	// Layout overrides the diagram's own layout options field by field.
	Layout diagram.LayoutOptions `json:"layout,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the parsed diagram, with positions written back.
	Diagram *diagram.Diagram

	// DiagramHash is the content hash used for the layout cache key.
	DiagramHash string

	// Layout is the exported layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	ContainerCount int
	ParseTime      time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that a diagram source is given and resolves its format.
func (o *Options) ValidateForParse() error {
	if o.Path == "" && len(o.Data) == 0 {
		return fmt.Errorf("path or data is required")
	}
	if o.Format == "" {
		o.Format = graph.FormatJSON
		if len(o.Data) == 0 {
			o.Format = graph.DetectFormat(o.Path)
		}
	}
	if !ValidSourceFormats[o.Format] {
		return fmt.Errorf("invalid source format: %q (must be json or toml)", o.Format)
	}
	o.setLogger()
	return nil
}

// ValidateForLayout checks the layout overrides. Defaults are applied only
// after merging with the diagram's own options.
func (o *Options) ValidateForLayout() error {
	o.setLogger()
	return layout.Validate(o.Layout)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
