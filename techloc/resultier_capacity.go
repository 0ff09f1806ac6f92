package techloc

import (
	"github.com/katalvlaran/fluxcast/results"
)

// buildCapacities derives installed and original capacity per node.
// Locations are pure topology and stay nil-sized; synthetic ones are skipped
// entirely. Conversion techs additionally expose derived per-secondary-
// carrier capacities through the forward ratios.
func (r *Resultier) buildCapacities() {
	for name := range r.m.Locations {
		if r.synthetic[name] {
			continue
		}
		r.res.Capacities[name] = results.Capacity{}
	}

	for name, t := range r.m.Techs {
		switch t.Function {
		case FuncDemand:
			peak := r.m.Timeseries[t.DemandParam].MaxVal()
			r.res.Capacities[name] = results.Capacity{
				Installed: results.Float(peak),
				Original:  results.Float(peak),
			}

		case FuncStorage:
			r.res.Capacities[name] = results.Capacity{
				Installed: results.Float(t.StorageCapacity),
				Original:  results.Float(t.StorageCapacity),
			}

		default:
			c := r.techCapacity(name, t.Capacity, t.Expandable, t.ExpansionCost)
			r.res.Capacities[name] = c

			if t.Function == FuncConversion && t.CarrierOut2 != "" && c.Installed != nil {
				derived := map[string]float64{t.CarrierOut2: *c.Installed * t.Ratio2}
				if t.CarrierOut3 != "" {
					derived[t.CarrierOut3] = *c.Installed * t.Ratio3
				}
				r.res.CarrierCapacities[name] = derived
			}
		}
	}

	for _, l := range r.m.Links {
		if l.Auxiliary {
			continue
		}
		c := r.techCapacity(l.Name, l.Capacity, l.Expandable, l.ExpansionCost)

		// A connector's two directional legs share its name; the larger
		// direction represents the component.
		if prev, ok := r.res.Capacities[l.Name]; ok && prev.Installed != nil &&
			c.Installed != nil && *prev.Installed > *c.Installed {
			c = prev
		}
		r.res.Capacities[l.Name] = c
	}
}

// techCapacity resolves one entity's capacity triple: the optimized value
// when the solution carries one, the translated existing capacity otherwise.
func (r *Resultier) techCapacity(name string, existing float64, expandable bool, expansionCost float64) results.Capacity {
	installed := existing
	if r.m.Solution != nil {
		if opt, ok := r.m.Solution.CapOpt[name]; ok {
			installed = opt
		}
	}

	c := results.Capacity{
		Installed: results.Float(installed),
		Original:  results.Float(existing),
	}
	if expandable {
		c.ExpansionCost = expansionCost
	}

	return c
}
