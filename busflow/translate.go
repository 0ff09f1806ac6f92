package busflow

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
)

// Translate maps the canonical model into a backend-native Network.
//
// Components are mapped in the fixed dependency order buses → connectors →
// sinks → sources → transformers → storages, each group enumerated in
// lexicographic uid order, then a final consistency pass applies the
// whole-network constraints. Structural incompatibilities abort with a typed
// error; numeric approximations proceed and are recorded on the returned
// collector.
func Translate(es *core.EnergySystem) (*Network, *diag.Collector, error) {
	d := diag.NewCollector()
	if es == nil {
		return nil, d, ErrNilSystem
	}
	if err := es.Validate(); err != nil {
		return nil, d, err
	}

	net := &Network{Timesteps: es.Timesteps}

	for _, b := range es.Buses() {
		net.Buses = append(net.Buses, mapBus(b))
	}

	for _, c := range es.Connectors() {
		links, err := mapConnector(c, d)
		if err != nil {
			return nil, d, err
		}
		net.Links = append(net.Links, links...)
	}

	for _, s := range es.Sinks() {
		sink, err := mapSink(s, d)
		if err != nil {
			return nil, d, err
		}
		net.Sinks = append(net.Sinks, sink)
	}

	for _, s := range es.Sources() {
		src, err := mapSource(s, d)
		if err != nil {
			return nil, d, err
		}
		net.Sources = append(net.Sources, src)
	}

	for _, t := range es.Transformers() {
		conv, err := mapTransformer(t, d)
		if err != nil {
			return nil, d, err
		}
		net.Converters = append(net.Converters, conv)
	}

	for _, s := range es.Storages() {
		st, err := mapStorage(s, d)
		if err != nil {
			return nil, d, err
		}
		net.Storages = append(net.Storages, st)
	}

	// Consistency pass. This backend expresses both whole-network constraints
	// natively: the emission cap is applied once on the network, and cyclic
	// behavior is already per-storage, so conflicting requests cannot arise.
	if es.GlobalEmissionCap != nil {
		capVal := *es.GlobalEmissionCap
		net.EmissionCap = &capVal
	}

	return net, d, nil
}
