package diagram

// Algorithm selects a layout algorithm.
type Algorithm string

const (
	AlgorithmHierarchical Algorithm = "hierarchical"
	AlgorithmForce        Algorithm = "force"
	AlgorithmGrid         Algorithm = "grid"
	AlgorithmClustered    Algorithm = "clustered"
)

// Algorithms lists the supported layout algorithms.
var Algorithms = []Algorithm{AlgorithmHierarchical, AlgorithmForce, AlgorithmGrid, AlgorithmClustered}

// Direction is the flow direction of a layered layout.
type Direction string

const (
	DirectionLR Direction = "LR"
	DirectionTB Direction = "TB"
	DirectionRL Direction = "RL"
	DirectionBT Direction = "BT"
)

// Horizontal reports whether levels advance along the x axis.
func (d Direction) Horizontal() bool { return d == DirectionLR || d == DirectionRL }

// Reversed reports whether levels advance towards decreasing coordinates.
func (d Direction) Reversed() bool { return d == DirectionRL || d == DirectionBT }

// Alignment positions a row of items inside the available space.
type Alignment string

const (
	AlignStart  Alignment = "start"
	AlignCenter Alignment = "center"
	AlignEnd    Alignment = "end"
)

// Valid reports whether a is empty or a known alignment.
func (a Alignment) Valid() bool {
	return a == "" || a == AlignStart || a == AlignCenter || a == AlignEnd
}

// LayoutOptions configures a layout computation.
//
// Zero values mean "use the default"; see layout.DefaultOptions. Validation
// happens in the layout package when a layout is computed: unknown enum
// values and negative sizes are configuration errors.
type LayoutOptions struct {
	Algorithm Algorithm `json:"algorithm,omitempty" toml:"algorithm" validate:"omitempty,oneof=hierarchical force grid clustered"`
	Direction Direction `json:"direction,omitempty" toml:"direction" validate:"omitempty,oneof=LR TB RL BT"`
	Alignment Alignment `json:"alignment,omitempty" toml:"alignment" validate:"omitempty,oneof=start center end"`

	NodeSpacing      float64 `json:"node_spacing,omitempty" toml:"node_spacing" validate:"gte=0"`
	ContainerSpacing float64 `json:"container_spacing,omitempty" toml:"container_spacing" validate:"gte=0"`
	LevelSpacing     float64 `json:"level_spacing,omitempty" toml:"level_spacing" validate:"gte=0"`

	// NodeSize is the diameter of a node's square footprint.
	NodeSize         float64 `json:"node_size,omitempty" toml:"node_size" validate:"gte=0"`
	ContainerPadding float64 `json:"container_padding,omitempty" toml:"container_padding" validate:"gte=0"`
	Margin           float64 `json:"margin,omitempty" toml:"margin" validate:"gte=0"`

	// Width and Height are the canvas dimensions.
	Width  float64 `json:"width,omitempty" toml:"width" validate:"gte=0"`
	Height float64 `json:"height,omitempty" toml:"height" validate:"gte=0"`

	// Columns is the number of container columns in the clustered layout.
	Columns int `json:"columns,omitempty" toml:"columns" validate:"gte=0"`

	// Seed drives the force layout's initial placement.
	Seed uint64 `json:"seed,omitempty" toml:"seed"`
	// ForceIterations is the fixed number of simulation steps.
	ForceIterations int `json:"force_iterations,omitempty" toml:"force_iterations" validate:"gte=0"`
}
