package techloc

import (
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
	"github.com/katalvlaran/fluxcast/results"
)

// Resultier extracts the uniform result schema from an optimized (or freshly
// translated) Model. Synthetic entities introduced by the connector
// expansion fold back onto their canonical connector and appear in no result
// map. The full result is built once at construction and memoized.
type Resultier struct {
	m   *Model
	d   *diag.Collector
	res *results.Result

	// attachments is the canonical-level edge list, each edge carrying its
	// solved series (zeros without a solution) and specific rates.
	attachments []attachment

	// synthetic holds the uid strings of intermediate locations, resolved
	// once so identity and load passes agree on what to fold away.
	synthetic map[string]bool
}

// attachment is one directed canonical edge with its non-negative solved
// series in the From→To direction.
type attachment struct {
	From   string
	To     string
	Series core.Series
	Rates  results.Rates
}

// NewResultier reconstructs canonical identities from native names and
// extracts loads, capacities, flows, state of charge and global aggregates.
func NewResultier(m *Model) (*Resultier, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	r := &Resultier{
		m:         m,
		d:         diag.NewCollector(),
		res:       results.NewResult(),
		synthetic: make(map[string]bool),
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

// buildIdentity parses every native name. Locations tagged Origin=Synthetic
// are recorded for folding and excluded from the result maps; auxiliary
// links carry a synthetic name and are likewise excluded.
func (r *Resultier) buildIdentity() error {
	for name := range r.m.Locations {
		u, err := core.ParseUid(name)
		if err != nil {
			return err
		}
		if u.Origin == core.OriginSynthetic {
			r.synthetic[name] = true

			continue
		}
		r.res.Uids[name] = u
	}

	for name := range r.m.Techs {
		u, err := core.ParseUid(name)
		if err != nil {
			return err
		}
		r.res.Uids[name] = u
	}

	for _, l := range r.m.Links {
		if r.synthetic[l.Name] {
			continue
		}
		if _, seen := r.res.Uids[l.Name]; seen {
			continue
		}
		u, err := core.ParseUid(l.Name)
		if err != nil {
			return err
		}
		r.res.Uids[l.Name] = u
	}

	return nil
}

// series lookups against the solution; zeros when absent.

func (r *Resultier) techFlow(name string) core.Series {
	if r.m.Solution != nil {
		if s, ok := r.m.Solution.TechFlow[name]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.m.Timesteps)
}

func (r *Resultier) storageP(name string) core.Series {
	if r.m.Solution != nil {
		if s, ok := r.m.Solution.StorageP[name]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.m.Timesteps)
}

func (r *Resultier) linkFlow(leg LinkLeg) core.Series {
	if r.m.Solution != nil {
		if s, ok := r.m.Solution.LinkFlow[leg]; ok {
			return s.Clone()
		}
	}

	return core.Zeros(r.m.Timesteps)
}

func (r *Resultier) zeros() core.Series {
	return core.Zeros(r.m.Timesteps)
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
