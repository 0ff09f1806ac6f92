package busflow

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
	"github.com/katalvlaran/fluxcast/results"
)

// Resultier extracts the uniform result schema from an optimized (or
// freshly translated) Network. The full result is built once at
// construction; every accessor returns the memoized maps, so repeated calls
// on the same network are guaranteed identical.
type Resultier struct {
	net *Network
	d   *diag.Collector
	res *results.Result

	// attachments is the canonical-level edge list reconstructed from the
	// native records; every later layer (loads, flows, globals) walks it.
	attachments []attachment
}

// attachment is one directed component↔bus edge with the native flow
// parameters that price it.
type attachment struct {
	From string
	To   string
	Flow Flow
}

// NewResultier reconstructs canonical identities from the network's native
// names and extracts loads, capacities, flows, state of charge and global
// aggregates. A network without a Solution extracts zero flows and the
// translated capacities (the zero-optimization round trip).
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
	r.buildLoads()
	r.buildCapacities()
	r.buildFlows()
	r.buildSoc()
	r.buildGlobals()
	r.buildCharacteristics()

	return r, nil
}

// buildIdentity recovers every node identity from native string names and
// assembles the attachment list all later layers depend on. Link records
// share their connector's name, so the two directions collapse onto one
// identity entry.
func (r *Resultier) buildIdentity() error {
	add := func(name string) error {
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
	for _, s := range r.net.Sources {
		if err := add(s.Name); err != nil {
			return err
		}
		r.attachments = append(r.attachments, attachment{From: s.Name, To: s.Target, Flow: s.Flow})
	}
	for _, s := range r.net.Sinks {
		if err := add(s.Name); err != nil {
			return err
		}
		r.attachments = append(r.attachments, attachment{From: s.Origin, To: s.Name, Flow: s.Flow})
	}
	for _, c := range r.net.Converters {
		if err := add(c.Name); err != nil {
			return err
		}
		r.attachments = append(r.attachments, attachment{From: c.Input, To: c.Name, Flow: c.InFlow})
		for _, out := range c.Outputs {
			r.attachments = append(r.attachments, attachment{From: c.Name, To: out.Bus, Flow: out.Flow})
		}
	}
	for _, s := range r.net.Storages {
		if err := add(s.Name); err != nil {
			return err
		}
		r.attachments = append(r.attachments,
			attachment{From: s.Bus, To: s.Name, Flow: s.Flow},
			attachment{From: s.Name, To: s.Bus, Flow: s.Flow})
	}
	for _, l := range r.net.Links {
		if err := add(l.Name); err != nil {
			return err
		}
		r.attachments = append(r.attachments,
			attachment{From: l.From, To: l.Name, Flow: l.Flow},
			attachment{From: l.Name, To: l.To, Flow: Flow{}})
	}

	return nil
}

// solvedFlow returns the solved series for one attachment, or zeros when no
// solution is attached (or the solver left the attachment unused).
func (r *Resultier) solvedFlow(from, to string) core.Series {
	if r.net.Solution != nil {
		if s, ok := r.net.Solution.Flows[FlowKey{From: from, To: to}]; ok {
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
