package gridopt

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
	"github.com/katalvlaran/fluxcast/results"
)

// Resultier extracts the uniform result schema from an optimized (or
// freshly translated) Network, renormalizing this backend's inverted sign
// convention back to the canonical one. The full result is built once at
// construction and memoized.
type Resultier struct {
	net *Network
	d   *diag.Collector
	res *results.Result

	// attachments is the canonical-level edge list reconstructed from the
	// native records, each carrying the solved series (zeros without a
	// solution) and the specific rates priced on that edge.
	attachments []attachment
}

// attachment is one directed edge with its solved series (non-negative, in
// the From→To direction, already renormalized) and specific rates.
type attachment struct {
	From   string
	To     string
	Series core.Series
	Rates  results.Rates
}

// NewResultier reconstructs canonical identities from native names —
// including the transformers this backend only knows as generators and the
// supply chains pruned during translation — and extracts loads, capacities,
// flows, state of charge and global aggregates.
func NewResultier(net *Network) (*Resultier, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}

	r := &Resultier{
		net: net,
		d:   diag.NewCollector(),
		res: results.NewResult(),
	}

	if err := r.buildIdentity(); err != nil {
		return nil, err
	}
	r.buildAttachments()
	r.buildLoads()
	r.buildCapacities()
	r.buildFlows()
	r.buildSoc()
	r.buildGlobals()
	r.buildCharacteristics()

	return r, nil
}

// buildIdentity recovers every node identity from native string names.
// Collapsed transformers keep their canonical kind tag because the name is
// the serialized canonical uid — the backend's own vocabulary ("generator")
// never leaks into identities. Pruned chains are restored from the collapse
// bookkeeping.
func (r *Resultier) buildIdentity() error {
	add := func(name string) error {
		if name == "" {
			return nil
		}
		if _, seen := r.res.Uids[name]; seen {
			return nil
		}
		u, err := core.ParseUid(name)
		if err != nil {
			return err
		}
		r.res.Uids[name] = u

		return nil
	}

	for _, b := range r.net.Buses {
		if err := add(b.Name); err != nil {
			return err
		}
	}
	for _, g := range r.net.Generators {
		if err := add(g.Name); err != nil {
			return err
		}
	}
	for _, l := range r.net.Loads {
		if err := add(l.Name); err != nil {
			return err
		}
	}
	for _, l := range r.net.Links {
		if err := add(l.Name); err != nil {
			return err
		}
	}
	for _, s := range r.net.Stores {
		if err := add(s.Name); err != nil {
			return err
		}
	}
	for _, col := range r.net.Collapsed {
		if err := add(col.PrunedBus); err != nil {
			return err
		}
		for _, p := range col.PrunedSources {
			if err := add(p.Name); err != nil {
				return err
			}
		}
	}

	return nil
}

// series lookups against the solution; zeros when absent.

func (r *Resultier) generatorP(name string) core.Series {
	if r.net.Solution != nil {
		if s, ok := r.net.Solution.GeneratorP[name]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.net.Timesteps)
}

func (r *Resultier) loadP(name string) core.Series {
	if r.net.Solution != nil {
		if s, ok := r.net.Solution.LoadP[name]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.net.Timesteps)
}

func (r *Resultier) linkIn(key LinkKey) core.Series {
	if r.net.Solution != nil {
		if s, ok := r.net.Solution.LinkIn[key]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.net.Timesteps)
}

func (r *Resultier) linkOut(key LinkEnd) core.Series {
	if r.net.Solution != nil {
		if s, ok := r.net.Solution.LinkOut[key]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.net.Timesteps)
}

func (r *Resultier) storeP(name string) core.Series {
	if r.net.Solution != nil {
		if s, ok := r.net.Solution.StoreP[name]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.net.Timesteps)
}

// Uids returns node-name → structured identity.
func (r *Resultier) Uids() map[string]core.Uid { return r.res.Uids }

// Loads returns node-name → inflow/outflow series (canonical signs).
func (r *Resultier) Loads() map[string]results.Load { return r.res.Loads }

// Capacities returns node-name → installed/original capacity.
func (r *Resultier) Capacities() map[string]results.Capacity { return r.res.Capacities }

// CarrierCapacities returns node-name → secondary carrier → derived capacity.
func (r *Resultier) CarrierCapacities() map[string]map[string]float64 {
	return r.res.CarrierCapacities
}

// Flows returns edge → specific cost/emission rates.
func (r *Resultier) Flows() map[results.EdgeKey]results.Rates { return r.res.Flows }

// StateOfCharge returns storage-name → SOC series.
func (r *Resultier) StateOfCharge() map[string]core.Series { return r.res.Soc }

// Globals returns the network-wide aggregate.
func (r *Resultier) Globals() results.Globals { return r.res.Globals }

// Characteristics returns node-name → mean utilization fraction.
func (r *Resultier) Characteristics() map[string]*float64 { return r.res.Characteristics }

// Diagnostics returns the collector of this extraction run.
func (r *Resultier) Diagnostics() *diag.Collector { return r.d }

// compile-time contract check
var _ results.Resultier = (*Resultier)(nil)
