package gridopt

import (
	"github.com/katalvlaran/fluxcast/results"
)

// buildFlows sums the attachment rates per directed edge. Most edges carry
// exactly one priced attachment; connector legs sharing a name stay distinct
// because the edge key includes both endpoints.
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
// total cost is the solver objective minus the objective offset accumulated
// by the zero-starting-capacity encoding, so pre-existing capacity is not
// billed as expansion.
func (r *Resultier) buildGlobals() {
	var g results.Globals

	if r.net.Solution != nil {
		g.TotalCost = r.net.Solution.Objective - r.net.ObjectiveOffset
	}

	for _, a := range r.attachments {
		flown := a.Series.Sum()
		g.TotalEmissions += flown * a.Rates.SpecificEmission
		g.Opex += flown * a.Rates.SpecificCost
	}

	for name, c := range r.res.Capacities {
		if c.Installed == nil || c.Original == nil {
			continue
		}
		added := *c.Installed - *c.Original
		if _, encoded := r.net.OriginalCapacity[name]; encoded && added < 0 {
			// The expansion floor guarantees installed ≥ original; a smaller
			// optimized value would mean the solution ignored the bound.
			added = 0
		}
		g.Capex += added * c.ExpansionCost
	}

	r.res.Globals = g
}

// buildCharacteristics computes per-node mean utilization: the larger of the
// mean outflow and mean inflow magnitude, divided by installed capacity.
// Buses stay nil, idle zero-capacity nodes report 0.
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
