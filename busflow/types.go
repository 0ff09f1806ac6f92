package busflow

import (
	"errors"

	"github.com/katalvlaran/fluxcast/core"
)

// Sentinel errors for busflow translation and extraction.
var (
	// ErrNilSystem indicates Translate received a nil canonical model.
	ErrNilSystem = errors.New("busflow: nil energy system")

	// ErrNilNetwork indicates NewResultier received a nil network.
	ErrNilNetwork = errors.New("busflow: nil network")
)

// Flow parameterizes one component↔bus attachment in the backend's native
// vocabulary. Capacities are always finite; the translator normalizes
// infinities before constructing a Flow.
type Flow struct {
	// Capacity is the existing nominal capacity.
	Capacity float64

	// Expandable marks capacity as a decision variable within the bounds
	// below. ExpansionBounded=false means no upper bound is enforced.
	Expandable       bool
	ExpansionMin     float64
	ExpansionMax     float64
	ExpansionBounded bool
	ExpansionCost    float64

	// Cost and Emission are specific rates per unit of flow.
	Cost     float64
	Emission float64

	// PositiveGradient and NegativeGradient limit per-step changes.
	PositiveGradient float64
	NegativeGradient float64

	// Fixed, when non-nil, pins the flow to this series (demand profiles).
	Fixed core.Series

	// Commitment, when non-nil, adds on/off behavior.
	Commitment *Commitment
}

// Commitment is the native on/off parameter record.
type Commitment struct {
	StartupCost   float64
	ShutdownCost  float64
	MinUptime     int
	MinDowntime   int
	InitialStatus bool
}

// Bus is a native bus entity; its name is the canonical uid string.
type Bus struct {
	Name string
}

// SourceNode produces onto one bus.
type SourceNode struct {
	Name   string
	Target string // bus name
	Flow   Flow
}

// SinkNode consumes from one bus.
type SinkNode struct {
	Name   string
	Origin string // bus name
	Flow   Flow
}

// ConverterOutput is one native output interface of a converter.
type ConverterOutput struct {
	Bus     string
	Carrier string
	// Factor converts one unit of input into Factor units of this carrier.
	Factor float64
	Flow   Flow
}

// ConverterNode converts one input into 1–3 outputs with native per-carrier
// conversion factors and per-flow cost/emission.
type ConverterNode struct {
	Name    string
	Input   string // bus name
	InFlow  Flow
	Outputs []ConverterOutput
}

// StorageNode shifts energy in time. Asymmetric efficiencies and the cyclic
// flag are native here.
type StorageNode struct {
	Name              string
	Bus               string
	Capacity          float64
	InitialSoc        float64
	FinalSoc          float64
	IdleChangeRate    float64
	InflowEfficiency  float64
	OutflowEfficiency float64
	Cyclic            bool
	Flow              Flow
}

// LinkNode is one direction of a connector. Both directions share the
// connector's name and are distinguished by From/To.
type LinkNode struct {
	Name       string
	From       string // bus name
	To         string // bus name
	Efficiency float64
	Flow       Flow
}

// FlowKey identifies one solved flow by its native endpoint names.
type FlowKey struct {
	From string
	To   string
}

// Solution is attached to a Network by the external solver. All series use
// non-negative magnitudes in the direction of their key.
type Solution struct {
	// Objective is the solver's objective value.
	Objective float64

	// Flows holds one series per solved (from, to) attachment.
	Flows map[FlowKey]core.Series

	// Soc holds state-of-charge series per storage name.
	Soc map[string]core.Series

	// CapOpt holds post-expansion capacities per component name; components
	// absent here kept their translated capacity.
	CapOpt map[string]float64
}

// Network is the backend-native network object. It is assembled by
// Translate, mutated externally only by attaching a Solution, and read-only
// input to NewResultier.
type Network struct {
	Timesteps   int
	EmissionCap *float64

	Buses      []Bus
	Sources    []SourceNode
	Sinks      []SinkNode
	Converters []ConverterNode
	Storages   []StorageNode
	Links      []LinkNode

	Solution *Solution
}
