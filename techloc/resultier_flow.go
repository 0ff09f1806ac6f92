package techloc

import (
	"github.com/katalvlaran/fluxcast/results"
)

// buildFlows sums the attachment rates per directed edge.
func (r *Resultier) buildFlows() {
	for _, a := range r.attachments {
		key := results.EdgeKey{From: a.From, To: a.To}
		rates := r.res.Flows[key]
		rates.SpecificCost += a.Rates.SpecificCost
		rates.SpecificEmission += a.Rates.SpecificEmission
		r.res.Flows[key] = rates
	}
}

// buildGlobals recombines the lower layers into the network aggregate. The
// objective carries no encoding corrections on this backend: existing
// capacity and the emission cap are both native.
func (r *Resultier) buildGlobals() {
	var g results.Globals

	if r.m.Solution != nil {
		g.TotalCost = r.m.Solution.Objective
	}

	for _, a := range r.attachments {
		flown := a.Series.Sum()
		g.TotalEmissions += flown * a.Rates.SpecificEmission
		g.Opex += flown * a.Rates.SpecificCost
	}

	for _, c := range r.res.Capacities {
		if c.Installed == nil || c.Original == nil {
			continue
		}
		g.Capex += (*c.Installed - *c.Original) * c.ExpansionCost
	}

	r.res.Globals = g
}

// buildCharacteristics computes per-node mean utilization: the larger of the
// mean outflow and mean inflow magnitude, divided by installed capacity.
// Locations stay nil, idle zero-capacity nodes report 0.
func (r *Resultier) buildCharacteristics() {
	for name, c := range r.res.Capacities {
		load := r.res.Loads[name]
		basis := load.Outflow.Mean()
		if in := -load.Inflow.Mean(); in > basis {
			basis = in
		}
		r.res.Characteristics[name] = results.Characteristic(basis, c.Installed)
	}
}
