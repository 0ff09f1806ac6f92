package results

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
)

// EdgeKey identifies a directed flow between two canonical components by
// their uid strings.
type EdgeKey struct {
	From string
	To   string
}

// Load is a component's flow split into the two canonical directions:
// Inflow values are ≤ 0, Outflow values are ≥ 0, one value per timestep.
type Load struct {
	Inflow  core.Series
	Outflow core.Series
}

// Net returns the element-wise sum of inflow and outflow.
func (l Load) Net() core.Series {
	return l.Outflow.Add(l.Inflow)
}

// Capacity reports a component's size. A nil Installed or Original marks a
// node whose size is not physically meaningful (pure topology nodes, which
// are "variable" by definition).
type Capacity struct {
	// Installed is the post-optimization capacity.
	Installed *float64

	// Original is the pre-optimization, pre-expansion capacity.
	Original *float64

	// ExpansionCost is the price per unit of added capacity; 0 when the
	// component is not expandable.
	ExpansionCost float64
}

// Rates are the specific (per unit of energy) cost and emission of one edge.
type Rates struct {
	SpecificCost     float64
	SpecificEmission float64
}

// Globals aggregates the whole network's outcome.
type Globals struct {
	// TotalCost is the backend's objective value, corrected for any
	// already-existing-capacity adjustment made during translation.
	TotalCost float64

	// TotalEmissions is Σ net flow × specific emission over all edges.
	TotalEmissions float64

	// Capex is Σ (final − original capacity) × expansion cost.
	Capex float64

	// Opex is the flow-weighted cost sum.
	Opex float64
}

// Result is the full mapping-of-mappings a backend extractor produces.
type Result struct {
	// Uids recovers the structured identity of every canonical component
	// found in the backend network (synthetic artifacts are folded away).
	Uids map[string]core.Uid

	// Loads holds per-component inflow/outflow time series.
	Loads map[string]Load

	// Capacities holds per-component installed/original capacity.
	Capacities map[string]Capacity

	// CarrierCapacities holds, for multi-output transformers, the derived
	// capacity per secondary carrier (primary excluded to avoid double
	// counting).
	CarrierCapacities map[string]map[string]float64

	// Flows holds per-edge specific cost and emission rates.
	Flows map[EdgeKey]Rates

	// Soc holds per-storage state-of-charge series.
	Soc map[string]core.Series

	// Globals aggregates cost, emissions and the capex/opex split.
	Globals Globals

	// Characteristics holds per-component mean utilization in [0,1]; nil for
	// nodes of variable size.
	Characteristics map[string]*float64
}

// NewResult returns a Result with all maps allocated.
func NewResult() *Result {
	return &Result{
		Uids:              make(map[string]core.Uid),
		Loads:             make(map[string]Load),
		Capacities:        make(map[string]Capacity),
		CarrierCapacities: make(map[string]map[string]float64),
		Flows:             make(map[EdgeKey]Rates),
		Soc:               make(map[string]core.Series),
		Characteristics:   make(map[string]*float64),
	}
}

// Resultier is the uniform extraction contract all backends satisfy.
// Accessors are memoized: the underlying Result is built once per
// instantiation, so repeated calls return identical contents.
type Resultier interface {
	// Uids returns node-name → structured identity.
	Uids() map[string]core.Uid
	// Loads returns node-name → inflow/outflow series.
	Loads() map[string]Load
	// Capacities returns node-name → capacity triple.
	Capacities() map[string]Capacity
	// CarrierCapacities returns node-name → secondary carrier → capacity.
	CarrierCapacities() map[string]map[string]float64
	// Flows returns edge → specific cost/emission rates.
	Flows() map[EdgeKey]Rates
	// StateOfCharge returns storage-name → SOC series.
	StateOfCharge() map[string]core.Series
	// Globals returns the network-wide aggregate.
	Globals() Globals
	// Characteristics returns node-name → mean utilization fraction.
	Characteristics() map[string]*float64
	// Diagnostics returns the collector of this extraction run.
	Diagnostics() *diag.Collector
}

// Float returns a pointer to v, for filling Capacity fields.
func Float(v float64) *float64 { return &v }

// Characteristic computes a component's mean utilization: mean of the
// relevant flow series divided by installed capacity, clamped to [0,1].
// Zero-capacity idle nodes yield 0; variable-size nodes (nil installed)
// yield nil.
func Characteristic(mean float64, installed *float64) *float64 {
	if installed == nil {
		return nil
	}
	if *installed == 0 {
		return Float(0)
	}
	frac := mean / *installed
	if frac < 0 {
		frac = -frac
	}
	if frac > 1 {
		frac = 1
	}

	return Float(frac)
}
