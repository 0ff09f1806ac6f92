package busflow_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fluxcast/busflow"
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/trans"
)

func uid(name string, kind core.ComponentKind) core.Uid {
	return core.Uid{Name: name, Kind: kind}
}

// minimalSystem builds the one-bus / one-source / one-sink network used by
// several scenarios: source capacity 20 at cost 10 per unit, sink with a
// fixed demand of 11 over a single timestep.
func minimalSystem(t *testing.T) *core.EnergySystem {
	t.Helper()
	es := core.NewEnergySystem(1)
	require.NoError(t, es.AddNode(core.Bus{U: uid("grid", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Source{
		U:       uid("gen", core.KindSource),
		Bus:     uid("grid", core.KindBus),
		Outflow: core.Edge{Installed: 20, MaxCapacity: 20, Cost: 10},
	}))
	require.NoError(t, es.AddNode(core.Sink{
		U:      uid("demand", core.KindSink),
		Bus:    uid("grid", core.KindBus),
		Inflow: core.Edge{MaxCapacity: 15},
		Demand: core.Series{11},
	}))

	return es
}

// TestTranslateMinimal verifies the mapped shape of the minimal network.
func TestTranslateMinimal(t *testing.T) {
	net, d, err := busflow.Translate(minimalSystem(t))
	require.NoError(t, err)
	require.False(t, d.HasWarnings())

	require.Len(t, net.Buses, 1)
	require.Len(t, net.Sources, 1)
	require.Len(t, net.Sinks, 1)

	src := net.Sources[0]
	require.Equal(t, 20.0, src.Flow.Capacity)
	require.Equal(t, 10.0, src.Flow.Cost)
	require.False(t, src.Flow.Expandable)

	sink := net.Sinks[0]
	require.Equal(t, core.Series{11}, sink.Flow.Fixed)
}

// TestTranslateNilSystem verifies the nil guard.
func TestTranslateNilSystem(t *testing.T) {
	_, _, err := busflow.Translate(nil)
	require.ErrorIs(t, err, busflow.ErrNilSystem)
}

// TestTranslateDeterministic verifies two translations of the same model are
// structurally identical.
func TestTranslateDeterministic(t *testing.T) {
	es := minimalSystem(t)
	a, _, err := busflow.Translate(es)
	require.NoError(t, err)
	b, _, err := busflow.Translate(es)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

// TestTranslateInfiniteCapacity verifies the expandable normalization plus
// its diagnostic.
func TestTranslateInfiniteCapacity(t *testing.T) {
	es := core.NewEnergySystem(1)
	require.NoError(t, es.AddNode(core.Bus{U: uid("grid", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Source{
		U:       uid("backstop", core.KindSource),
		Bus:     uid("grid", core.KindBus),
		Outflow: core.Edge{MaxCapacity: math.Inf(1), Cost: 100},
	}))

	net, d, err := busflow.Translate(es)
	require.NoError(t, err)
	require.True(t, d.HasWarnings())
	src := net.Sources[0]
	require.Equal(t, 0.0, src.Flow.Capacity)
	require.True(t, src.Flow.Expandable)
}

// TestTranslateFourOutputTransformer verifies the structural abort happens
// before any backend entity is created.
func TestTranslateFourOutputTransformer(t *testing.T) {
	es := core.NewEnergySystem(1)
	require.NoError(t, es.AddNode(core.Bus{U: uid("in", core.KindBus)}))
	tr := core.Transformer{
		U:      uid("quad", core.KindTransformer),
		Inputs: []core.Uid{uid("in", core.KindBus)},
		InFlow: core.Edge{MaxCapacity: 10},
	}
	for _, c := range []string{"a", "b", "c", "d"} {
		bus := uid("bus-"+c, core.KindBus)
		require.NoError(t, es.AddNode(core.Bus{U: bus}))
		tr.Outputs = append(tr.Outputs, core.Output{
			Bus: bus, Carrier: c, Efficiency: 0.2, Flow: core.Edge{MaxCapacity: 2},
		})
	}
	require.NoError(t, es.AddNode(tr))

	net, _, err := busflow.Translate(es)
	require.ErrorIs(t, err, trans.ErrTooManyOutputs)
	require.Nil(t, net)
}

// TestTranslateConnector verifies the two-directional-link expansion with
// efficiencies on the carrying direction only.
func TestTranslateConnector(t *testing.T) {
	es := core.NewEnergySystem(1)
	require.NoError(t, es.AddNode(core.Bus{U: uid("north", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Bus{U: uid("south", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Connector{
		U:            uid("tie", core.KindConnector),
		BusA:         uid("north", core.KindBus),
		BusB:         uid("south", core.KindBus),
		EfficiencyAB: 0.95,
		EfficiencyBA: 0.85,
		FlowAB:       core.Edge{MaxCapacity: 40},
		FlowBA:       core.Edge{MaxCapacity: 40},
	}))

	net, _, err := busflow.Translate(es)
	require.NoError(t, err)
	require.Len(t, net.Links, 2)
	require.Equal(t, net.Links[0].Name, net.Links[1].Name)
	require.Equal(t, 0.95, net.Links[0].Efficiency)
	require.Equal(t, 0.85, net.Links[1].Efficiency)
	require.Equal(t, net.Links[0].From, net.Links[1].To)
}

// TestTranslateEmissionCap verifies the native whole-network cap.
func TestTranslateEmissionCap(t *testing.T) {
	es := core.NewEnergySystem(1, core.WithEmissionCap(500))
	net, d, err := busflow.Translate(es)
	require.NoError(t, err)
	require.NotNil(t, net.EmissionCap)
	require.Equal(t, 500.0, *net.EmissionCap)
	require.False(t, d.HasWarnings())
}

// TestTranslateStorageNative verifies asymmetric efficiency and per-storage
// cyclic flags survive untouched.
func TestTranslateStorageNative(t *testing.T) {
	es := core.NewEnergySystem(1)
	require.NoError(t, es.AddNode(core.Bus{U: uid("grid", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Storage{
		U:                 uid("batt", core.KindStorage),
		Bus:               uid("grid", core.KindBus),
		Capacity:          30,
		InitialSoc:        10,
		InflowEfficiency:  0.9,
		OutflowEfficiency: 0.8,
		Cyclic:            true,
		Flow:              core.Edge{MaxCapacity: 10},
	}))

	net, d, err := busflow.Translate(es)
	require.NoError(t, err)
	require.False(t, d.HasWarnings())
	st := net.Storages[0]
	require.Equal(t, 0.9, st.InflowEfficiency)
	require.Equal(t, 0.8, st.OutflowEfficiency)
	require.True(t, st.Cyclic)
}
