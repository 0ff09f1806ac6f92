package gridopt

import (
	"sort"

	"github.com/katalvlaran/fluxcast/diag"
)

// pruneUnreachable removes supply chains stranded by the generator-like
// collapse. When a collapsed transformer's former input bus has no remaining
// consumer — every surviving attachment is a generator mapped from a
// canonical source — nothing can ever draw from that bus, so the chain is
// provably dead. The pruned generators' cost and emission rates are
// re-attributed to the surviving collapsed generator, divided by the
// conversion efficiency, so network totals stay conserved.
//
// A bus still reached by a load, store, link leg or second collapsed
// transformer is left alone: with several possible consumers the chain is
// not provably unreachable and re-attribution would be ambiguous.
func (n *Network) pruneUnreachable(d *diag.Collector) {
	names := make([]string, 0, len(n.Collapsed))
	for name := range n.Collapsed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		col := n.Collapsed[name]
		bus := col.InputBus

		if n.busConsumers(bus, name) > 0 {
			continue
		}

		// Collect the generators stranded on the dead bus.
		var kept []Generator
		var pruned []PrunedSource
		for _, g := range n.Generators {
			if g.Bus != bus || g.Name == name {
				kept = append(kept, g)

				continue
			}
			pruned = append(pruned, PrunedSource{
				Name:         g.Name,
				Capacity:     g.PNom,
				MarginalCost: g.MarginalCost,
				CarbonRate:   g.CarbonRate,
			})
		}
		if len(pruned) == 0 {
			continue
		}
		n.Generators = kept

		// Drop the bus itself.
		var buses []Bus
		for _, b := range n.Buses {
			if b.Name != bus {
				buses = append(buses, b)
			}
		}
		n.Buses = buses

		// Re-attribute the pruned rates onto the surviving generator.
		for i := range n.Generators {
			if n.Generators[i].Name != name {
				continue
			}
			for _, p := range pruned {
				n.Generators[i].MarginalCost += p.MarginalCost / col.Efficiency
				n.Generators[i].CarbonRate += p.CarbonRate / col.Efficiency
				d.Warnf(name, "pruned unreachable supply chain (%s via %s); cost and emission re-attributed through efficiency %g",
					p.Name, bus, col.Efficiency)
			}
		}

		col.PrunedBus = bus
		col.PrunedSources = pruned
		n.Collapsed[name] = col
	}
}

// busConsumers counts the entities still able to draw from bus, ignoring
// the collapsed generator itself. Generators only produce and do not count.
func (n *Network) busConsumers(bus, exclude string) int {
	consumers := 0
	for _, l := range n.Loads {
		if l.Bus == bus {
			consumers++
		}
	}
	for _, s := range n.Stores {
		if s.Bus == bus {
			consumers++
		}
	}
	for _, l := range n.Links {
		// Either leg of a link touching the bus can move energy away.
		if l.From == bus || l.To == bus || l.To2 == bus || l.To3 == bus {
			consumers++
		}
	}
	for name, col := range n.Collapsed {
		if name != exclude && col.InputBus == bus && col.PrunedBus == "" {
			consumers++
		}
	}

	return consumers
}
