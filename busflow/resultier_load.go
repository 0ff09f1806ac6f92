package busflow

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/results"
)

// buildLoads splits every solved attachment into the two canonical
// directions per node: series entering a node accumulate negatively on its
// inflow, series leaving accumulate positively on its outflow. This backend
// already reports magnitudes in the canonical convention, so no sign flip is
// needed — the accumulation below is the shared normalization path.
func (r *Resultier) buildLoads() {
	n := r.net.Timesteps

	load := func(name string) results.Load {
		if l, ok := r.res.Loads[name]; ok {
			return l
		}

		return results.Load{Inflow: core.Zeros(n), Outflow: core.Zeros(n)}
	}

	for _, a := range r.attachments {
		series := r.solvedFlow(a.From, a.To)

		out := load(a.From)
		out.Outflow = out.Outflow.Add(series)
		r.res.Loads[a.From] = out

		in := load(a.To)
		in.Inflow = in.Inflow.Add(series.Neg())
		r.res.Loads[a.To] = in
	}

	// Nodes with no attachments touched (isolated buses) still get zero loads.
	for name := range r.res.Uids {
		if _, ok := r.res.Loads[name]; !ok {
			r.res.Loads[name] = results.Load{Inflow: core.Zeros(n), Outflow: core.Zeros(n)}
		}
	}
}

// buildSoc extracts state-of-charge series for every storage, normalized the
// same way loads are (non-negative energy level per timestep).
func (r *Resultier) buildSoc() {
	for _, s := range r.net.Storages {
		if r.net.Solution != nil {
			if soc, ok := r.net.Solution.Soc[s.Name]; ok {
				r.res.Soc[s.Name] = soc.Clone()

				continue
			}
		}
		r.res.Soc[s.Name] = core.Zeros(r.net.Timesteps)
	}
}
