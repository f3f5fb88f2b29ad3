package layout

import (
	stderrors "errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultWidth            = 1200.0
	DefaultHeight           = 800.0
	DefaultNodeSize         = 140.0
	DefaultNodeSpacing      = 180.0
	DefaultLevelSpacing     = 200.0
	DefaultContainerSpacing = 100.0
	DefaultContainerPadding = 40.0
	DefaultMargin           = 100.0
	DefaultColumns          = 2

	// DefaultForceIterations is the number of simulation steps for the
	// force layout.
	DefaultForceIterations = 500

	// DefaultSeed replaces a zero seed so that an unset seed is still
	// reproducible.
	DefaultSeed = uint64(42)
)

// DefaultOptions returns a fully populated set of layout options.
func DefaultOptions() diagram.LayoutOptions {
	var o diagram.LayoutOptions
	SetDefaults(&o)
	return o
}

// SetDefaults fills every zero-valued field of o with its default.
// It is idempotent.
func SetDefaults(o *diagram.LayoutOptions) {
	if o.Algorithm == "" {
		o.Algorithm = diagram.AlgorithmHierarchical
	}
	if o.Direction == "" {
		o.Direction = diagram.DirectionTB
	}
	if o.Alignment == "" {
		o.Alignment = diagram.AlignCenter
	}
	setFloat(&o.Width, DefaultWidth)
	setFloat(&o.Height, DefaultHeight)
	setFloat(&o.NodeSize, DefaultNodeSize)
	setFloat(&o.NodeSpacing, DefaultNodeSpacing)
	setFloat(&o.LevelSpacing, DefaultLevelSpacing)
	setFloat(&o.ContainerSpacing, DefaultContainerSpacing)
	setFloat(&o.ContainerPadding, DefaultContainerPadding)
	setFloat(&o.Margin, DefaultMargin)
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.ForceIterations == 0 {
		o.ForceIterations = DefaultForceIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// =============================================================================
// Validation
// =============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks o without applying defaults. An unknown algorithm yields
// UNKNOWN_ALGORITHM; any other problem yields INVALID_LAYOUT.
func Validate(o diagram.LayoutOptions) error {
	if o.Algorithm != "" && !knownAlgorithm(o.Algorithm) {
		return errors.New(errors.ErrCodeUnknownAlgorithm, "unknown layout algorithm %q (valid: %s)",
			o.Algorithm, algorithmList())
	}

	floats := map[string]float64{
		"width":             o.Width,
		"height":            o.Height,
		"node_size":         o.NodeSize,
		"node_spacing":      o.NodeSpacing,
		"level_spacing":     o.LevelSpacing,
		"container_spacing": o.ContainerSpacing,
		"container_padding": o.ContainerPadding,
		"margin":            o.Margin,
	}
	for _, name := range slices.Sorted(maps.Keys(floats)) {
		if !finite(floats[name]) {
			return errors.New(errors.ErrCodeInvalidLayout, "%s must be a finite number", name)
		}
	}

	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "%s", describe(verrs[0]))
		}
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "invalid layout options")
	}
	return nil
}

// Resolve returns o with defaults applied, after validating it.
func Resolve(o diagram.LayoutOptions) (diagram.LayoutOptions, error) {
	if err := Validate(o); err != nil {
		return o, err
	}
	SetDefaults(&o)
	return o, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must not be negative (got %v)", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

func knownAlgorithm(a diagram.Algorithm) bool {
	_, ok := algorithms[a]
	return ok
}

func algorithmList() string {
	names := make([]string, len(diagram.Algorithms))
	for i, a := range diagram.Algorithms {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// Merge returns base with every non-zero field of override applied on top.
// Callers use it to layer flags over a config file over a diagram's own
// options.
func Merge(base, override diagram.LayoutOptions) diagram.LayoutOptions {
	out := base
	if override.Algorithm != "" {
		out.Algorithm = override.Algorithm
	}
	if override.Direction != "" {
		out.Direction = override.Direction
	}
	if override.Alignment != "" {
		out.Alignment = override.Alignment
	}
	for _, f := range []struct{ dst, src *float64 }{
		{&out.Width, &override.Width},
		{&out.Height, &override.Height},
		{&out.NodeSize, &override.NodeSize},
		{&out.NodeSpacing, &override.NodeSpacing},
		{&out.LevelSpacing, &override.LevelSpacing},
		{&out.ContainerSpacing, &override.ContainerSpacing},
		{&out.ContainerPadding, &override.ContainerPadding},
		{&out.Margin, &override.Margin},
	} {
		if *f.src != 0 {
			*f.dst = *f.src
		}
	}
	if override.Columns != 0 {
		out.Columns = override.Columns
	}
	if override.Seed != 0 {
		out.Seed = override.Seed
	}
	if override.ForceIterations != 0 {
		out.ForceIterations = override.ForceIterations
	}
	return out
}
