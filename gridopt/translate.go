package gridopt

import (
	"sort"
	"strings"

	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
	"github.com/katalvlaran/fluxcast/trans"
)

// Translate maps the canonical model into a backend-native Network.
//
// Components are mapped in the fixed dependency order buses → connectors →
// sinks → sources → transformers → storages, lexicographic within each
// group. The consistency pass then resolves the constraints that cannot be
// decided per component: the single network-wide cyclic flag, the missing
// emission cap, and the pruning of supply chains left unreachable by the
// generator-like collapse.
func Translate(es *core.EnergySystem) (*Network, *diag.Collector, error) {
	d := diag.NewCollector()
	if es == nil {
		return nil, d, ErrNilSystem
	}
	if err := es.Validate(); err != nil {
		return nil, d, err
	}

	net := &Network{
		Timesteps:        es.Timesteps,
		Collapsed:        make(map[string]Collapse),
		OriginalCapacity: make(map[string]float64),
	}

	for _, b := range es.Buses() {
		net.Buses = append(net.Buses, mapBus(b))
	}

	for _, c := range es.Connectors() {
		links, zs, err := mapConnector(c, d)
		if err != nil {
			return nil, d, err
		}
		net.Links = append(net.Links, links...)
		net.recordZeroStart(c.U.String(), zs)
	}

	for _, s := range es.Sinks() {
		net.Loads = append(net.Loads, mapSink(s, d))
	}

	for _, s := range es.Sources() {
		gen, zs, err := mapSource(s, d)
		if err != nil {
			return nil, d, err
		}
		net.Generators = append(net.Generators, gen)
		net.recordZeroStart(gen.Name, zs)
	}

	for _, t := range es.Transformers() {
		if err := trans.ValidateTransformer(t); err != nil {
			return nil, d, err
		}
		if t.U.NodeType == "chp" {
			// No CHP concept in this vocabulary; a degraded mapping would
			// misprice the heat side, so this is a hard failure.
			return nil, d, trans.ComponentError{Component: t.U, Err: trans.ErrUnsupportedKind}
		}

		switch trans.Classify(t) {
		case trans.GeneratorLike:
			gen, col, zs, err := mapGeneratorLike(t, d)
			if err != nil {
				return nil, d, err
			}
			net.Generators = append(net.Generators, gen)
			net.Collapsed[gen.Name] = col
			net.recordZeroStart(gen.Name, zs)
		case trans.LinkLike:
			link, zs, err := mapLinkLike(t, d)
			if err != nil {
				return nil, d, err
			}
			net.Links = append(net.Links, link)
			net.recordZeroStart(link.Name, zs)
		}
	}

	var cyclicWant, cyclicReject []string
	for _, s := range es.Storages() {
		store, wantsCyclic := mapStorage(s, d)
		net.Stores = append(net.Stores, store)
		if wantsCyclic {
			cyclicWant = append(cyclicWant, store.Name)
		} else {
			cyclicReject = append(cyclicReject, store.Name)
		}
	}

	net.resolveCyclic(cyclicWant, cyclicReject, d)
	net.pruneUnreachable(d)

	if es.GlobalEmissionCap != nil {
		d.Warnf("", "global emission cap %g is not representable; per-component emission rates remain but no hard cap is enforced", *es.GlobalEmissionCap)
	}

	return net, d, nil
}

// recordZeroStart books one entity's zero-start encoding. The objective
// offset always accumulates; the original capacity is kept whenever the
// encoding applied, which includes floors priced at zero expansion cost.
func (n *Network) recordZeroStart(name string, zs zeroStart) {
	n.ObjectiveOffset += zs.offset
	if zs.original > 0 {
		n.OriginalCapacity[name] = zs.original
	}
}

// resolveCyclic decides the single network-wide cyclic flag. Uniform
// requests pass through; a conflict falls back to not-cyclic network-wide,
// the conservative option, and the diagnostic names every storage involved.
func (n *Network) resolveCyclic(want, reject []string, d *diag.Collector) {
	switch {
	case len(want) == 0:
		n.CyclicStateOfCharge = false
	case len(reject) == 0:
		n.CyclicStateOfCharge = true
	default:
		n.CyclicStateOfCharge = false
		all := make([]string, 0, len(want)+len(reject))
		all = append(all, want...)
		all = append(all, reject...)
		sort.Strings(all)
		d.Warnf("", "conflicting cyclic-storage requests (%s); falling back to not cyclic network-wide",
			strings.Join(all, ", "))
	}
}
