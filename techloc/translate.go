package techloc

import (
	"fmt"

	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/diag"
)

// DefaultModelName is used when no WithModelName option is given.
const DefaultModelName = "model"

// Option configures a translation run.
type Option func(*options)

type options struct {
	modelName string
}

func defaultOptions() options {
	return options{modelName: DefaultModelName}
}

// WithModelName sets the model name used in the on-disk path convention
// {root}/Techloc/{model-name}/....
func WithModelName(name string) Option {
	return func(o *options) { o.modelName = name }
}

// Translate maps the canonical model into a backend-native Model.
//
// Components are mapped in the fixed dependency order buses → connectors →
// sinks → sources → transformers → storages, lexicographic within each
// group. The global emission cap and the per-storage cyclic flag are native
// here, so the consistency pass has nothing to resolve; the big lossy cases
// on this backend are per-carrier rate accumulation and the single storage
// efficiency.
func Translate(es *core.EnergySystem, opts ...Option) (*Model, *diag.Collector, error) {
	d := diag.NewCollector()
	if es == nil {
		return nil, d, ErrNilSystem
	}
	if err := es.Validate(); err != nil {
		return nil, d, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Model{
		Name:          o.modelName,
		FormatVersion: CurrentFormat,
		Timesteps:     es.Timesteps,
		Techs:         make(map[string]Tech),
		Locations:     make(map[string]Location),
		Timeseries:    make(map[string]core.Series),
	}

	for _, b := range es.Buses() {
		loc := mapBus(b)
		m.Locations[loc.Name] = loc
	}

	for _, c := range es.Connectors() {
		links, mid, err := mapConnector(c, d)
		if err != nil {
			return nil, d, err
		}
		m.Links = append(m.Links, links...)
		m.Locations[mid.Name] = mid
	}

	for _, s := range es.Sinks() {
		tech, err := mapSink(s, d)
		if err != nil {
			return nil, d, err
		}
		tech.DemandParam = m.demandParam(s.U.Name)
		m.Timeseries[tech.DemandParam] = s.Demand.Clone()
		m.addTech(tech)
	}

	for _, s := range es.Sources() {
		tech, err := mapSource(s, d)
		if err != nil {
			return nil, d, err
		}
		m.addTech(tech)
	}

	for _, t := range es.Transformers() {
		tech, err := mapTransformer(t, d)
		if err != nil {
			return nil, d, err
		}
		m.addTech(tech)
	}

	for _, s := range es.Storages() {
		tech, err := mapStorage(s, d)
		if err != nil {
			return nil, d, err
		}
		m.addTech(tech)
	}

	if es.GlobalEmissionCap != nil {
		limit := *es.GlobalEmissionCap
		m.EmissionCap = &limit
	}

	return m, d, nil
}

// addTech registers a tech and lists it at its home location.
func (m *Model) addTech(t Tech) {
	m.Techs[t.Name] = t
	loc := m.Locations[t.Location]
	loc.Techs = append(loc.Techs, t.Name)
	m.Locations[t.Location] = loc
}

// demandParam derives a filesystem-safe timeseries name from the component's
// short name (uid short names never contain the separator). Collisions
// between sinks sharing a short name get a numeric suffix.
func (m *Model) demandParam(short string) string {
	param := "demand@" + short
	for i := 2; ; i++ {
		if _, taken := m.Timeseries[param]; !taken {
			return param
		}
		param = fmt.Sprintf("demand@%s~%d", short, i)
	}
}
