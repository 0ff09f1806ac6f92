package gridopt

import (
	"github.com/katalvlaran/fluxcast/results"
)

// buildCapacities derives installed and original capacity per node, undoing
// the zero-starting-capacity encoding: entities whose firm capacity was
// turned into a minimum expansion bound recover their pre-translation value
// from the OriginalCapacity bookkeeping.
func (r *Resultier) buildCapacities() {
	for _, b := range r.net.Buses {
		r.res.Capacities[b.Name] = results.Capacity{}
	}

	for _, g := range r.net.Generators {
		r.res.Capacities[g.Name] = r.expandableCapacity(
			g.Name, g.PNom, g.PNomExtendable, g.PNomMin, g.CapitalCost)
	}

	for _, l := range r.net.Loads {
		peak := l.PSet.MaxVal()
		r.res.Capacities[l.Name] = results.Capacity{
			Installed: results.Float(peak),
			Original:  results.Float(peak),
		}
	}

	for _, l := range r.net.Links {
		c := r.expandableCapacity(l.Name, l.PNom, l.PNomExtendable, l.PNomMin, l.CapitalCost)

		// Connector legs share a name; keep the larger direction, matching
		// how a single bidirectional capacity reads canonically.
		if prev, ok := r.res.Capacities[l.Name]; ok && prev.Installed != nil &&
			c.Installed != nil && *prev.Installed > *c.Installed {
			c = prev
		}
		r.res.Capacities[l.Name] = c

		// Secondary output legs derive their capacity from the primary one
		// through the efficiency ratio.
		if c.Installed != nil && l.Carrier2 != "" && l.Efficiency > 0 {
			derived := map[string]float64{
				l.Carrier2: *c.Installed * l.Efficiency2 / l.Efficiency,
			}
			if l.Carrier3 != "" {
				derived[l.Carrier3] = *c.Installed * l.Efficiency3 / l.Efficiency
			}
			r.res.CarrierCapacities[l.Name] = derived
		}
	}

	for _, s := range r.net.Stores {
		r.res.Capacities[s.Name] = results.Capacity{
			Installed: results.Float(s.ECapacity),
			Original:  results.Float(s.ECapacity),
		}
	}

	for _, col := range r.net.Collapsed {
		if col.PrunedBus == "" {
			continue
		}
		r.res.Capacities[col.PrunedBus] = results.Capacity{}
		for _, p := range col.PrunedSources {
			r.res.Capacities[p.Name] = results.Capacity{
				Installed: results.Float(p.Capacity),
				Original:  results.Float(p.Capacity),
			}
		}
	}
}

// expandableCapacity resolves one entity's capacity triple. Installed comes
// from the optimized value when a solution carries one; otherwise firm
// capacity, or the expansion floor for extendable entities. Original is the
// recorded pre-translation capacity when the zero-start encoding applied.
func (r *Resultier) expandableCapacity(name string, pNom float64, extendable bool, pNomMin, capitalCost float64) results.Capacity {
	original := pNom
	if extendable {
		original = r.net.OriginalCapacity[name]
	}

	installed := pNom
	if extendable {
		installed = pNomMin
	}
	if r.net.Solution != nil {
		if opt, ok := r.net.Solution.PNomOpt[name]; ok {
			installed = opt
		}
	}

	c := results.Capacity{
		Installed: results.Float(installed),
		Original:  results.Float(original),
	}
	if extendable {
		c.ExpansionCost = capitalCost
	}

	return c
}
