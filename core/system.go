package core

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// EnergySystem is the canonical network: every node keyed by its uid string,
// plus the few attributes that only make sense at whole-network scope.
//
// The system is immutable by convention once translation starts; AddNode is
// only called by the external parser that builds the model.
type EnergySystem struct {
	// Timesteps is the length of the optimization horizon.
	Timesteps int

	// GlobalEmissionCap, when non-nil, caps total emissions over the whole
	// horizon. Backends without a native cap emit a diagnostic.
	GlobalEmissionCap *float64

	nodes map[string]Node
}

// SystemOption configures an EnergySystem before nodes are added.
type SystemOption func(*EnergySystem)

// WithEmissionCap sets the network-wide emission cap.
func WithEmissionCap(cap float64) SystemOption {
	return func(es *EnergySystem) { es.GlobalEmissionCap = &cap }
}

// NewEnergySystem creates an empty system with the given horizon length.
func NewEnergySystem(timesteps int, opts ...SystemOption) *EnergySystem {
	es := &EnergySystem{
		Timesteps: timesteps,
		nodes:     make(map[string]Node),
	}
	for _, opt := range opts {
		opt(es)
	}

	return es
}

// AddNode registers n. The uid string must be unique within the system.
func (es *EnergySystem) AddNode(n Node) error {
	if n == nil {
		return ErrNilNode
	}
	if err := n.Uid().Validate(); err != nil {
		return err
	}
	key := n.Uid().String()
	if _, exists := es.nodes[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, key)
	}
	es.nodes[key] = n

	return nil
}

// Node returns the node with the given uid string.
func (es *EnergySystem) Node(uid string) (Node, bool) {
	n, ok := es.nodes[uid]

	return n, ok
}

// Len returns the number of nodes.
func (es *EnergySystem) Len() int { return len(es.nodes) }

// sortedKeys returns all uid strings in lexicographic order. Every
// enumeration below goes through this so translation output is deterministic.
func (es *EnergySystem) sortedKeys() []string {
	keys := make([]string, 0, len(es.nodes))
	for k := range es.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Buses returns all buses sorted by uid string.
func (es *EnergySystem) Buses() []Bus {
	var out []Bus
	for _, k := range es.sortedKeys() {
		if b, ok := es.nodes[k].(Bus); ok {
			out = append(out, b)
		}
	}

	return out
}

// Sources returns all sources sorted by uid string.
func (es *EnergySystem) Sources() []Source {
	var out []Source
	for _, k := range es.sortedKeys() {
		if s, ok := es.nodes[k].(Source); ok {
			out = append(out, s)
		}
	}

	return out
}

// Sinks returns all sinks sorted by uid string.
func (es *EnergySystem) Sinks() []Sink {
	var out []Sink
	for _, k := range es.sortedKeys() {
		if s, ok := es.nodes[k].(Sink); ok {
			out = append(out, s)
		}
	}

	return out
}

// Transformers returns all transformers sorted by uid string.
func (es *EnergySystem) Transformers() []Transformer {
	var out []Transformer
	for _, k := range es.sortedKeys() {
		if t, ok := es.nodes[k].(Transformer); ok {
			out = append(out, t)
		}
	}

	return out
}

// Storages returns all storages sorted by uid string.
func (es *EnergySystem) Storages() []Storage {
	var out []Storage
	for _, k := range es.sortedKeys() {
		if s, ok := es.nodes[k].(Storage); ok {
			out = append(out, s)
		}
	}

	return out
}

// Connectors returns all connectors sorted by uid string.
func (es *EnergySystem) Connectors() []Connector {
	var out []Connector
	for _, k := range es.sortedKeys() {
		if c, ok := es.nodes[k].(Connector); ok {
			out = append(out, c)
		}
	}

	return out
}

// requireBus checks that uid names an existing Bus node.
func (es *EnergySystem) requireBus(owner Uid, bus Uid) error {
	n, ok := es.nodes[bus.String()]
	if !ok {
		return fmt.Errorf("%w: %s references %s", ErrUnknownBus, owner.Name, bus.Name)
	}
	if _, isBus := n.(Bus); !isBus {
		return fmt.Errorf("%w: %s references %s", ErrNotABus, owner.Name, bus.Name)
	}

	return nil
}

// Validate checks every node's numeric invariants and bus references.
// All independent failures are aggregated so a caller sees the whole model's
// problems at once.
func (es *EnergySystem) Validate() error {
	var errs error
	for _, k := range es.sortedKeys() {
		switch n := es.nodes[k].(type) {
		case Bus:
			// Topology only; uid validity is checked on AddNode.
		case Source:
			errs = multierr.Append(errs, es.requireBus(n.U, n.Bus))
			errs = multierr.Append(errs, n.Outflow.Validate())
		case Sink:
			errs = multierr.Append(errs, es.requireBus(n.U, n.Bus))
			errs = multierr.Append(errs, n.Inflow.Validate())
			if n.Demand != nil && len(n.Demand) != es.Timesteps {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s demand has %d steps, want %d",
					ErrSeriesLength, n.U.Name, len(n.Demand), es.Timesteps))
			}
		case Transformer:
			for _, in := range n.Inputs {
				errs = multierr.Append(errs, es.requireBus(n.U, in))
			}
			errs = multierr.Append(errs, n.InFlow.Validate())
			for _, out := range n.Outputs {
				errs = multierr.Append(errs, es.requireBus(n.U, out.Bus))
				errs = multierr.Append(errs, validateEfficiency(n.U, out.Efficiency))
				errs = multierr.Append(errs, out.Flow.Validate())
			}
		case Storage:
			errs = multierr.Append(errs, es.requireBus(n.U, n.Bus))
			errs = multierr.Append(errs, validateEfficiency(n.U, n.InflowEfficiency))
			errs = multierr.Append(errs, validateEfficiency(n.U, n.OutflowEfficiency))
			errs = multierr.Append(errs, n.Flow.Validate())
			if n.Capacity < 0 || n.InitialSoc < 0 || n.InitialSoc > n.Capacity {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s soc/capacity", ErrCapacityBounds, n.U.Name))
			}
		case Connector:
			errs = multierr.Append(errs, es.requireBus(n.U, n.BusA))
			errs = multierr.Append(errs, es.requireBus(n.U, n.BusB))
			errs = multierr.Append(errs, validateEfficiency(n.U, n.EfficiencyAB))
			errs = multierr.Append(errs, validateEfficiency(n.U, n.EfficiencyBA))
			errs = multierr.Append(errs, n.FlowAB.Validate())
			errs = multierr.Append(errs, n.FlowBA.Validate())
		}
	}

	return errs
}
