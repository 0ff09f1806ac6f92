package gridopt

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/results"
)

// buildAttachments reconstructs the canonical edge list from the native
// records, renormalizing signs and rebuilding what translation folded away:
// collapsed transformers regain their input edge (derived as output power
// divided by the conversion efficiency) and pruned supply chains regain
// their source and bus edges. Rates ride on the attachment that prices the
// flow in the native vocabulary.
func (r *Resultier) buildAttachments() {
	for _, g := range r.net.Generators {
		p := r.generatorP(g.Name)

		col, collapsed := r.net.Collapsed[g.Name]
		if !collapsed {
			// Plain source: one producing edge onto its bus.
			r.attachments = append(r.attachments, attachment{
				From:   g.Name,
				To:     g.Bus,
				Series: p,
				Rates:  results.Rates{SpecificCost: g.MarginalCost, SpecificEmission: g.CarbonRate},
			})

			continue
		}

		// Collapsed transformer: output edge carries the folded rates, the
		// input edge is re-derived through the conversion efficiency.
		in := p.Scale(1 / col.Efficiency)
		r.attachments = append(r.attachments,
			attachment{
				From:   g.Name,
				To:     g.Bus,
				Series: p,
				Rates:  results.Rates{SpecificCost: g.MarginalCost, SpecificEmission: g.CarbonRate},
			},
			attachment{From: col.InputBus, To: g.Name, Series: in},
		)

		if col.PrunedBus != "" && len(col.PrunedSources) > 0 {
			// The pruned chain's flows are fully determined (everything the
			// dead bus received went into the collapsed transformer), but its
			// rates were re-attributed downstream and cannot be split back
			// out per source.
			r.d.Infof(g.Name, "pruned chain flows reconstructed; its rates stay aggregated on the collapsed transformer")
			if len(col.PrunedSources) == 1 {
				r.attachments = append(r.attachments, attachment{
					From:   col.PrunedSources[0].Name,
					To:     col.PrunedBus,
					Series: in.Clone(),
				})
			} else {
				// Several pruned sources: the per-source split is unknowable,
				// so each gets a zero series and only identity survives.
				r.d.Warnf(g.Name, "several pruned sources share one chain; per-source flows are not recoverable")
				for _, ps := range col.PrunedSources {
					r.attachments = append(r.attachments, attachment{
						From:   ps.Name,
						To:     col.PrunedBus,
						Series: r.zeros(),
					})
				}
			}
		}
	}

	for _, l := range r.net.Loads {
		// Native demand is positive; the canonical edge runs bus → sink.
		r.attachments = append(r.attachments, attachment{
			From:   l.Bus,
			To:     l.Name,
			Series: r.loadP(l.Name),
		})
	}

	for _, l := range r.net.Links {
		in := r.linkIn(LinkKey{Name: l.Name, From: l.From})
		out := r.linkOut(LinkEnd{Name: l.Name, To: l.To})

		if l.Carrier == "" {
			// Connector leg: priced per input unit, rates on the input edge.
			r.attachments = append(r.attachments,
				attachment{
					From:   l.From,
					To:     l.Name,
					Series: in,
					Rates:  results.Rates{SpecificCost: l.MarginalCost, SpecificEmission: l.CarbonRate},
				},
				attachment{From: l.Name, To: l.To, Series: out},
			)

			continue
		}

		// Transformer link: priced per unit of primary output, rates on the
		// primary output edge; extra legs are unpriced.
		r.attachments = append(r.attachments,
			attachment{From: l.From, To: l.Name, Series: in},
			attachment{
				From:   l.Name,
				To:     l.To,
				Series: out,
				Rates:  results.Rates{SpecificCost: l.MarginalCost, SpecificEmission: l.CarbonRate},
			},
		)
		if l.To2 != "" {
			r.attachments = append(r.attachments, attachment{
				From: l.Name, To: l.To2,
				Series: r.linkOut(LinkEnd{Name: l.Name, To: l.To2}),
			})
		}
		if l.To3 != "" {
			r.attachments = append(r.attachments, attachment{
				From: l.Name, To: l.To3,
				Series: r.linkOut(LinkEnd{Name: l.Name, To: l.To3}),
			})
		}
	}

	for _, s := range r.net.Stores {
		// StoreP positive means charging. Split into the two canonical
		// directions: bus → store while charging, store → bus while
		// discharging. The marginal cost prices the discharge side.
		p := r.storeP(s.Name)
		charge := r.zeros()
		discharge := r.zeros()
		for i, v := range p {
			if v > 0 {
				charge[i] = v
			} else {
				discharge[i] = -v
			}
		}
		r.attachments = append(r.attachments,
			attachment{From: s.Bus, To: s.Name, Series: charge},
			attachment{
				From:   s.Name,
				To:     s.Bus,
				Series: discharge,
				Rates:  results.Rates{SpecificCost: s.MarginalCost},
			},
		)
	}
}

// buildLoads accumulates every attachment onto its two endpoints with the
// canonical signs: inflow ≤ 0 at the receiving node, outflow ≥ 0 at the
// producing node. Nodes no attachment touches get explicit zero loads.
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

// load returns the accumulated load for name, allocating zero series on
// first touch.
func (r *Resultier) load(name string) results.Load {
	if l, ok := r.res.Loads[name]; ok {
		return l
	}

	return results.Load{Inflow: r.zeros(), Outflow: r.zeros()}
}

// buildSoc copies the solved state-of-charge series per store; zeros when no
// solution is attached.
func (r *Resultier) buildSoc() {
	for _, s := range r.net.Stores {
		if r.net.Solution != nil {
			if e, ok := r.net.Solution.StoreE[s.Name]; ok {
				r.res.Soc[s.Name] = e.Clone()

				continue
			}
		}
		r.res.Soc[s.Name] = r.zeros()
	}
}

func (r *Resultier) zeros() core.Series {
	return core.Zeros(r.net.Timesteps)
}
