package techloc

import (
	"sort"

	"github.com/katalvlaran/fluxcast/results"
)

// buildAttachments reconstructs the canonical edge list. Conversion input is
// re-derived through the efficiency, secondary outputs through their ratios.
// Connector expansions fold: a link delivering into a synthetic location is
// rerouted to the auxiliary link's real destination, so the intermediate
// never appears as an endpoint.
func (r *Resultier) buildAttachments() {
	// Auxiliary links by sending (synthetic) location.
	aux := make(map[string]TransmissionLink)
	for _, l := range r.m.Links {
		if l.Auxiliary {
			aux[l.From] = l
		}
	}

	names := make([]string, 0, len(r.m.Techs))
	for name := range r.m.Techs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := r.m.Techs[name]
		switch t.Function {
		case FuncSupply:
			r.attachments = append(r.attachments, attachment{
				From:   t.Name,
				To:     t.Location,
				Series: r.techFlow(t.Name),
				Rates:  results.Rates{SpecificCost: t.MarginalCost, SpecificEmission: t.CarbonRate},
			})

		case FuncDemand:
			r.attachments = append(r.attachments, attachment{
				From:   t.Location,
				To:     t.Name,
				Series: r.techFlow(t.Name),
				Rates:  results.Rates{SpecificCost: t.MarginalCost, SpecificEmission: t.CarbonRate},
			})

		case FuncConversion:
			out := r.techFlow(t.Name)
			r.attachments = append(r.attachments,
				attachment{From: t.LocationIn, To: t.Name, Series: out.Scale(1 / t.Efficiency)},
				attachment{
					From:   t.Name,
					To:     t.Location,
					Series: out,
					Rates:  results.Rates{SpecificCost: t.MarginalCost, SpecificEmission: t.CarbonRate},
				},
			)
			if t.Location2 != "" {
				r.attachments = append(r.attachments, attachment{
					From: t.Name, To: t.Location2, Series: out.Scale(t.Ratio2),
				})
			}
			if t.Location3 != "" {
				r.attachments = append(r.attachments, attachment{
					From: t.Name, To: t.Location3, Series: out.Scale(t.Ratio3),
				})
			}

		case FuncStorage:
			// StorageP positive means discharging toward the location.
			p := r.storageP(t.Name)
			charge := r.zeros()
			discharge := r.zeros()
			for i, v := range p {
				if v > 0 {
					discharge[i] = v
				} else {
					charge[i] = -v
				}
			}
			r.attachments = append(r.attachments,
				attachment{From: t.Location, To: t.Name, Series: charge},
				attachment{
					From:   t.Name,
					To:     t.Location,
					Series: discharge,
					Rates:  results.Rates{SpecificCost: t.MarginalCost, SpecificEmission: t.CarbonRate},
				},
			)
		}
	}

	for _, l := range r.m.Links {
		if l.Auxiliary {
			continue
		}

		flow := r.linkFlow(LinkLeg{Name: l.Name, From: l.From})
		to := l.To
		eff := l.Efficiency
		if a, folded := aux[l.To]; folded {
			// Fold the synthetic intermediate: the energy really arrives at
			// the auxiliary link's destination.
			to = a.To
			eff *= a.Efficiency
		}

		// Transmission is priced per sending-side unit: rates on the edge
		// entering the link.
		r.attachments = append(r.attachments,
			attachment{
				From:   l.From,
				To:     l.Name,
				Series: flow,
				Rates:  results.Rates{SpecificCost: l.MarginalCost, SpecificEmission: l.CarbonRate},
			},
			attachment{From: l.Name, To: to, Series: flow.Scale(eff)},
		)
	}
}

// buildLoads accumulates every attachment onto its two endpoints with the
// canonical signs. Nodes no attachment touches get explicit zero loads.
func (r *Resultier) buildLoads() {
	for _, a := range r.attachments {
		from := r.load(a.From)
		from.Outflow = from.Outflow.Add(a.Series)
		r.res.Loads[a.From] = from

		to := r.load(a.To)
		to.Inflow = to.Inflow.Add(a.Series.Neg())
		r.res.Loads[a.To] = to
	}

	for name := range r.res.Uids {
		if _, ok := r.res.Loads[name]; !ok {
			r.res.Loads[name] = results.Load{Inflow: r.zeros(), Outflow: r.zeros()}
		}
	}
}

func (r *Resultier) load(name string) results.Load {
	if l, ok := r.res.Loads[name]; ok {
		return l
	}

	return results.Load{Inflow: r.zeros(), Outflow: r.zeros()}
}

// buildSoc copies the solved state-of-charge series per storage tech; zeros
// when no solution is attached.
func (r *Resultier) buildSoc() {
	for name, t := range r.m.Techs {
		if t.Function != FuncStorage {
			continue
		}
		if r.m.Solution != nil {
			if e, ok := r.m.Solution.Soc[name]; ok {
				r.res.Soc[name] = e.Clone()

				continue
			}
		}
		r.res.Soc[name] = r.zeros()
	}
}
