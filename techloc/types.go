package techloc

import (
	"errors"

	"github.com/blang/semver/v4"

	"github.com/katalvlaran/fluxcast/core"
)

// Sentinel errors for techloc translation, extraction and persistence.
var (
	// ErrNilSystem indicates Translate received a nil canonical model.
	ErrNilSystem = errors.New("techloc: nil energy system")

	// ErrNilModel indicates NewResultier or WriteDir received a nil model.
	ErrNilModel = errors.New("techloc: nil model")

	// ErrFormatVersion indicates ReadDir found files written by an
	// incompatible major format version.
	ErrFormatVersion = errors.New("techloc: incompatible format version")

	// ErrBadTimeseries indicates a ts_*.csv file that does not parse.
	ErrBadTimeseries = errors.New("techloc: malformed timeseries file")
)

// CurrentFormat is the on-disk format version WriteDir stamps into
// model.yaml. ReadDir accepts any file sharing its major version.
var CurrentFormat = semver.MustParse("2.1.0")

// Function classifies what a tech does at its location.
type Function string

const (
	// FuncSupply produces its carrier at one location.
	FuncSupply Function = "supply"
	// FuncDemand consumes a fixed series at one location.
	FuncDemand Function = "demand"
	// FuncConversion turns carrier_in into one to three output carriers.
	FuncConversion Function = "conversion"
	// FuncStorage shifts energy in time at one location.
	FuncStorage Function = "storage"
)

// Tech is one technology record. Which fields are meaningful depends on
// Function; unused fields stay zero and are omitted on disk.
type Tech struct {
	Name     string   `yaml:"name"`
	Function Function `yaml:"function"`

	// Location is the tech's home location: the producing side for supply
	// and conversion, the consuming side for demand, the attachment point
	// for storage. LocationIn is the conversion input side.
	Location   string `yaml:"location"`
	LocationIn string `yaml:"location_in,omitempty"`

	CarrierIn  string `yaml:"carrier_in,omitempty"`
	CarrierOut string `yaml:"carrier_out,omitempty"`

	// Secondary conversion outputs, expressed as fixed ratios per unit of
	// primary output.
	CarrierOut2 string  `yaml:"carrier_out_2,omitempty"`
	Location2   string  `yaml:"location_2,omitempty"`
	Ratio2      float64 `yaml:"ratio_2,omitempty"`
	CarrierOut3 string  `yaml:"carrier_out_3,omitempty"`
	Location3   string  `yaml:"location_3,omitempty"`
	Ratio3      float64 `yaml:"ratio_3,omitempty"`

	// Efficiency is primary output per unit of input (conversion only).
	Efficiency float64 `yaml:"efficiency,omitempty"`

	Capacity         float64 `yaml:"capacity"`
	Expandable       bool    `yaml:"expandable,omitempty"`
	ExpansionMin     float64 `yaml:"expansion_min,omitempty"`
	ExpansionMax     float64 `yaml:"expansion_max,omitempty"`
	ExpansionBounded bool    `yaml:"expansion_bounded,omitempty"`
	ExpansionCost    float64 `yaml:"expansion_cost,omitempty"`

	MarginalCost float64 `yaml:"marginal_cost,omitempty"`
	CarbonRate   float64 `yaml:"carbon_rate,omitempty"`

	// DemandParam names the timeseries carrying the fixed demand (demand
	// techs only). The series itself lives in Model.Timeseries and on disk
	// as ts_{param}.csv.
	DemandParam string `yaml:"demand_param,omitempty"`

	StorageCapacity   float64 `yaml:"storage_capacity,omitempty"`
	InitialSoc        float64 `yaml:"initial_soc,omitempty"`
	FinalSoc          float64 `yaml:"final_soc,omitempty"`
	StandingLoss      float64 `yaml:"standing_loss,omitempty"`
	StorageEfficiency float64 `yaml:"storage_efficiency,omitempty"`
	Cyclic            bool    `yaml:"cyclic,omitempty"`
}

// Location is one spatial node. Its name is a canonical bus uid string, or a
// synthetic uid (Origin tag) for connector intermediates.
type Location struct {
	Name  string   `yaml:"name"`
	Techs []string `yaml:"techs,omitempty"`
}

// TransmissionLink moves energy between two locations, one direction each.
// At most one link may exist between any two locations regardless of
// direction, which is why connector expansions route the return direction
// through a synthetic intermediate.
type TransmissionLink struct {
	Name string `yaml:"name"`
	From string `yaml:"from"`
	To   string `yaml:"to"`

	Efficiency float64 `yaml:"efficiency"`

	// Auxiliary marks the zero-loss leg of a connector expansion; it carries
	// no parameters of its own.
	Auxiliary bool `yaml:"auxiliary,omitempty"`

	Capacity         float64 `yaml:"capacity"`
	Expandable       bool    `yaml:"expandable,omitempty"`
	ExpansionMin     float64 `yaml:"expansion_min,omitempty"`
	ExpansionMax     float64 `yaml:"expansion_max,omitempty"`
	ExpansionBounded bool    `yaml:"expansion_bounded,omitempty"`
	ExpansionCost    float64 `yaml:"expansion_cost,omitempty"`

	MarginalCost float64 `yaml:"marginal_cost,omitempty"`
	CarbonRate   float64 `yaml:"carbon_rate,omitempty"`
}

// LinkLeg addresses one directional link in the solution by name and sending
// location (the two legs of a connector share the connector's name).
type LinkLeg struct {
	Name string
	From string
}

// Solution is attached by the external solver. Signs follow the production
// convention: TechFlow is primary output for supply and conversion techs and
// consumed energy for demand techs, always non-negative; StorageP is
// positive while discharging; LinkFlow is measured at the sending location.
type Solution struct {
	Objective float64

	TechFlow map[string]core.Series
	StorageP map[string]core.Series
	Soc      map[string]core.Series
	LinkFlow map[LinkLeg]core.Series

	CapOpt map[string]float64
}

// Model is the backend-native network object: assembled by Translate,
// optionally persisted via WriteDir, mutated externally only by attaching a
// Solution, read-only for the Resultier.
type Model struct {
	Name          string
	FormatVersion semver.Version
	Timesteps     int

	// EmissionCap is the native model-level hard cap; nil when unset.
	EmissionCap *float64

	Techs     map[string]Tech
	Locations map[string]Location
	Links     []TransmissionLink

	// Timeseries holds every time-varying parameter by name.
	Timeseries map[string]core.Series

	Solution *Solution
}
