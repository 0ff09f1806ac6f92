package busflow

import (
	"github.com/katalvlaran/fluxcast/results"
)

// buildCapacities extracts installed, original and expansion-cost values.
// Buses are pure topology artifacts of variable size: both capacity fields
// stay nil. Multi-output converters report the primary interface and derive
// one value per secondary carrier from the primary via the fixed ratios, the
// primary excluded from the secondary series to avoid double counting.
func (r *Resultier) buildCapacities() {
	installedOf := func(name string, translated float64) float64 {
		if r.net.Solution != nil {
			if v, ok := r.net.Solution.CapOpt[name]; ok {
				return v
			}
		}

		return translated
	}

	for _, b := range r.net.Buses {
		r.res.Capacities[b.Name] = results.Capacity{}
	}

	for _, s := range r.net.Sources {
		r.res.Capacities[s.Name] = results.Capacity{
			Installed:     results.Float(installedOf(s.Name, s.Flow.Capacity)),
			Original:      results.Float(s.Flow.Capacity),
			ExpansionCost: s.Flow.ExpansionCost,
		}
	}

	for _, s := range r.net.Sinks {
		r.res.Capacities[s.Name] = results.Capacity{
			Installed:     results.Float(installedOf(s.Name, s.Flow.Capacity)),
			Original:      results.Float(s.Flow.Capacity),
			ExpansionCost: s.Flow.ExpansionCost,
		}
	}

	for _, c := range r.net.Converters {
		// Outputs[0] is the primary interface (mappers append it first).
		primary := c.Outputs[0]
		r.res.Capacities[c.Name] = results.Capacity{
			Installed:     results.Float(installedOf(c.Name, primary.Flow.Capacity)),
			Original:      results.Float(primary.Flow.Capacity),
			ExpansionCost: primary.Flow.ExpansionCost,
		}

		if len(c.Outputs) > 1 {
			derived := make(map[string]float64, len(c.Outputs)-1)
			primaryCap := installedOf(c.Name, primary.Flow.Capacity)
			for _, out := range c.Outputs[1:] {
				ratio := out.Factor / primary.Factor
				derived[out.Carrier] = primaryCap * ratio
			}
			r.res.CarrierCapacities[c.Name] = derived
		}
	}

	for _, s := range r.net.Storages {
		r.res.Capacities[s.Name] = results.Capacity{
			Installed:     results.Float(installedOf(s.Name, s.Capacity)),
			Original:      results.Float(s.Capacity),
			ExpansionCost: s.Flow.ExpansionCost,
		}
	}

	for _, l := range r.net.Links {
		// Two directions share the name; keep the larger translated capacity
		// as the representative value.
		existing, seen := r.res.Capacities[l.Name]
		capVal := installedOf(l.Name, l.Flow.Capacity)
		if seen && existing.Installed != nil && *existing.Installed >= capVal {
			continue
		}
		r.res.Capacities[l.Name] = results.Capacity{
			Installed:     results.Float(capVal),
			Original:      results.Float(l.Flow.Capacity),
			ExpansionCost: l.Flow.ExpansionCost,
		}
	}
}
