package busflow

import (
	"github.com/katalvlaran/fluxcast/results"
)

// buildFlows derives per-edge specific cost and emission by summing the
// production-side and consumption-side contributions at the two endpoints.
// Buses contribute zero, so every edge's rates are the flow parameters of
// the component attachment pricing it.
func (r *Resultier) buildFlows() {
	for _, a := range r.attachments {
		key := results.EdgeKey{From: a.From, To: a.To}
		rates := r.res.Flows[key]
		rates.SpecificCost += a.Flow.Cost
		rates.SpecificEmission += a.Flow.Emission
		r.res.Flows[key] = rates
	}
}

// buildGlobals recombines the lower layers into the network aggregate:
// total emissions as Σ net flow × specific emission per edge, total cost
// straight from the objective (this backend needs no already-existing
// capacity correction), and the capex/opex split.
func (r *Resultier) buildGlobals() {
	var g results.Globals

	if r.net.Solution != nil {
		g.TotalCost = r.net.Solution.Objective
	}

	for _, a := range r.attachments {
		flown := r.solvedFlow(a.From, a.To).Sum()
		key := results.EdgeKey{From: a.From, To: a.To}
		g.TotalEmissions += flown * r.res.Flows[key].SpecificEmission
		g.Opex += flown * r.res.Flows[key].SpecificCost
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
// Variable-size topology nodes stay nil, idle zero-capacity nodes report 0.
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
