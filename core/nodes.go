package core

import "fmt"

// Node is the tagged union of canonical component kinds. Backend mappers
// dispatch over the concrete type with an exhaustive type switch; an
// unmatched kind is a structural error, never a silent skip.
type Node interface {
	// Uid returns the component's identity.
	Uid() Uid
	// Kind returns the canonical component kind.
	Kind() ComponentKind
}

// Bus is a pure topology node. It has no size, no cost and no own flows;
// every other component attaches to buses.
type Bus struct {
	U Uid
}

// Uid returns the bus identity.
func (b Bus) Uid() Uid { return b.U }

// Kind returns KindBus.
func (b Bus) Kind() ComponentKind { return KindBus }

// Source produces a carrier onto one bus. Outflow is positive under the
// canonical sign convention.
type Source struct {
	U Uid

	// Bus is the uid of the bus the source feeds.
	Bus Uid

	// Outflow parameterizes the source→bus flow.
	Outflow Edge
}

// Uid returns the source identity.
func (s Source) Uid() Uid { return s.U }

// Kind returns KindSource.
func (s Source) Kind() ComponentKind { return KindSource }

// Sink consumes a carrier from one bus. Inflow is negative under the
// canonical sign convention.
type Sink struct {
	U Uid

	// Bus is the uid of the bus the sink draws from.
	Bus Uid

	// Inflow parameterizes the bus→sink flow.
	Inflow Edge

	// Demand, when non-nil, fixes the consumed series (one value per
	// timestep, non-negative magnitudes).
	Demand Series
}

// Uid returns the sink identity.
func (s Sink) Uid() Uid { return s.U }

// Kind returns KindSink.
func (s Sink) Kind() ComponentKind { return KindSink }

// Output is one output interface of a Transformer: the target bus, the
// carrier delivered there, the conversion efficiency relative to the input,
// and the flow parameters of the transformer→bus attachment.
type Output struct {
	// Bus is the uid of the bus receiving this carrier.
	Bus Uid

	// Carrier names the delivered carrier; carriers must be unique per
	// transformer and are the sort key for primary-carrier election.
	Carrier string

	// Efficiency converts one unit of input into Efficiency units of this
	// carrier. Must lie in (0, 1].
	Efficiency float64

	// Flow parameterizes the transformer→bus attachment.
	Flow Edge
}

// Transformer converts one input carrier into one to three output carriers.
//
// Exactly one input is supported; multi-input transformers and transformers
// with more than three outputs are structurally unsupported on every backend
// (no deterministic primary-carrier scheme generalizes safely beyond that
// arity) and fail translation with a typed error.
type Transformer struct {
	U Uid

	// Inputs are the uids of the feeding buses. The canonical model can
	// express several, translation accepts exactly one.
	Inputs []Uid

	// InFlow parameterizes the bus→transformer attachment.
	InFlow Edge

	// Outputs lists the output interfaces, 1–3 entries.
	Outputs []Output
}

// Uid returns the transformer identity.
func (t Transformer) Uid() Uid { return t.U }

// Kind returns KindTransformer.
func (t Transformer) Kind() ComponentKind { return KindTransformer }

// Storage shifts energy in time on one bus.
type Storage struct {
	U Uid

	// Bus is the uid of the bus the storage attaches to.
	Bus Uid

	// Capacity is the energy capacity (upper bound on state of charge).
	Capacity float64

	// InitialSoc and FinalSoc fix the state of charge at the horizon edges.
	InitialSoc float64
	FinalSoc   float64

	// IdleChangeRate is the per-step fractional gain (positive) or loss
	// (negative) of stored energy while idle.
	IdleChangeRate float64

	// InflowEfficiency and OutflowEfficiency may differ; backends unable to
	// represent the asymmetry collapse both to their geometric mean.
	InflowEfficiency  float64
	OutflowEfficiency float64

	// Cyclic requests state of charge at the horizon end to equal the start.
	Cyclic bool

	// Flow parameterizes the storage↔bus attachment (both directions share
	// one parameter set in the canonical model).
	Flow Edge
}

// Uid returns the storage identity.
func (s Storage) Uid() Uid { return s.U }

// Kind returns KindStorage.
func (s Storage) Kind() ComponentKind { return KindStorage }

// Asymmetric reports whether inflow and outflow efficiencies differ.
func (s Storage) Asymmetric() bool {
	return s.InflowEfficiency != s.OutflowEfficiency
}

// Connector couples two buses bidirectionally. Each direction is an
// independent lossy flow; efficiencies apply only to the direction carrying
// them.
type Connector struct {
	U Uid

	// BusA and BusB are the coupled buses.
	BusA Uid
	BusB Uid

	// EfficiencyAB and EfficiencyBA are the per-direction transfer
	// efficiencies in (0, 1].
	EfficiencyAB float64
	EfficiencyBA float64

	// FlowAB and FlowBA parameterize the two directional flows.
	FlowAB Edge
	FlowBA Edge
}

// Uid returns the connector identity.
func (c Connector) Uid() Uid { return c.U }

// Kind returns KindConnector.
func (c Connector) Kind() ComponentKind { return KindConnector }

// validEfficiency reports whether eff lies in (0, 1].
func validEfficiency(eff float64) bool {
	return eff > 0 && eff <= 1
}

// validateEfficiency returns ErrBadEfficiency for values outside (0, 1].
func validateEfficiency(owner Uid, eff float64) error {
	if !validEfficiency(eff) {
		return fmt.Errorf("%w: %s: %g", ErrBadEfficiency, owner.Name, eff)
	}

	return nil
}
