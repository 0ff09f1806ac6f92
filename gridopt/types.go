package gridopt

import (
	"errors"

	"github.com/katalvlaran/fluxcast/core"
)

// Sentinel errors for gridopt translation and extraction.
var (
	// ErrNilSystem indicates Translate received a nil canonical model.
	ErrNilSystem = errors.New("gridopt: nil energy system")

	// ErrNilNetwork indicates NewResultier received a nil network.
	ErrNilNetwork = errors.New("gridopt: nil network")
)

// Bus is a native bus entity; its name is the canonical uid string.
type Bus struct {
	Name string
}

// Generator produces onto one bus. PNom is the firm capacity; the expansion
// problem uses PNomMin/PNomMax with PNomExtendable and always starts from
// zero capacity (see package doc for the installed-capacity encoding).
type Generator struct {
	Name string
	Bus  string

	PNom           float64
	PNomExtendable bool
	PNomMin        float64
	PNomMax        float64
	PNomBounded    bool // PNomMax carries a real bound

	MarginalCost float64
	CapitalCost  float64
	CarbonRate   float64

	Commitment *Commitment
}

// Commitment is the native unit-commitment parameter record.
type Commitment struct {
	StartUpCost   float64
	ShutDownCost  float64
	MinUpTime     int
	MinDownTime   int
	InitialStatus bool
}

// Load consumes from one bus. PSet is the fixed demand series and is
// positive — this backend inverts the canonical sign convention.
type Load struct {
	Name string
	Bus  string
	PSet core.Series
}

// Link moves energy between buses. Multi-output transformers map to links
// with up to two extra output legs; connectors map to two single-leg links
// sharing the connector's name.
type Link struct {
	Name string
	From string
	To   string

	// Carrier names per leg; needed to re-derive per-carrier values during
	// extraction (the backend itself has no carrier concept).
	Carrier  string
	Carrier2 string
	Carrier3 string

	Efficiency  float64
	To2         string
	Efficiency2 float64
	To3         string
	Efficiency3 float64

	PNom           float64
	PNomExtendable bool
	PNomMin        float64
	PNomMax        float64
	PNomBounded    bool

	MarginalCost float64
	CapitalCost  float64
	CarbonRate   float64
}

// Store shifts energy in time. One round-trip efficiency only.
type Store struct {
	Name string
	Bus  string

	ECapacity    float64
	EInitial     float64
	EFinal       float64
	StandingLoss float64

	RoundTripEfficiency float64

	MarginalCost float64
	CapitalCost  float64
}

// PrunedSource records one upstream source removed by the generator-like
// collapse, with everything extraction needs to reconstruct its identity,
// capacity and flows.
type PrunedSource struct {
	Name         string
	Capacity     float64
	MarginalCost float64
	CarbonRate   float64
}

// Collapse records the mapping bookkeeping of one single-output transformer
// collapsed into a generator: the conversion efficiency (to re-derive input
// flows), the former input bus, and any pruned upstream chain.
type Collapse struct {
	InputBus   string
	Efficiency float64

	// PrunedBus and PrunedSources are set when the upstream supply chain was
	// provably unreachable after the collapse and has been removed.
	PrunedBus     string
	PrunedSources []PrunedSource
}

// LinkKey addresses a link's input side in the solution (links may share a
// name, connectors do).
type LinkKey struct {
	Name string
	From string
}

// LinkEnd addresses one output leg of a link in the solution.
type LinkEnd struct {
	Name string
	To   string
}

// Solution is attached by the external solver. Sign conventions are native:
// GeneratorP positive means production, LoadP positive means consumption,
// StoreP positive means charging, LinkIn positive means drawing from the
// input bus, LinkOut positive means delivering to the output bus.
type Solution struct {
	Objective float64

	GeneratorP map[string]core.Series
	LoadP      map[string]core.Series
	LinkIn     map[LinkKey]core.Series
	LinkOut    map[LinkEnd]core.Series
	StoreE     map[string]core.Series
	StoreP     map[string]core.Series

	PNomOpt map[string]float64
}

// Network is the backend-native network object: assembled by Translate,
// mutated externally only by attaching a Solution, read-only for the
// Resultier.
type Network struct {
	Timesteps int

	// CyclicStateOfCharge is the single network-wide cyclic flag.
	CyclicStateOfCharge bool

	// ObjectiveOffset is the capital cost already implied by minimum
	// expansion bounds that encode pre-existing capacity; global aggregation
	// subtracts it from the solver objective.
	ObjectiveOffset float64

	Buses      []Bus
	Generators []Generator
	Loads      []Load
	Links      []Link
	Stores     []Store

	// Collapsed maps generator name → collapse bookkeeping for transformers
	// that were collapsed into generators.
	Collapsed map[string]Collapse

	// OriginalCapacity maps entity name → pre-optimization capacity for
	// entities whose installed capacity had to be encoded as a minimum
	// expansion bound. Connector legs share the connector's key and keep the
	// larger leg, the representative extraction also uses.
	OriginalCapacity map[string]float64

	Solution *Solution
}
