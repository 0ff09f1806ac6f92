package busflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fluxcast/busflow"
	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/results"
)

// names of the minimal system's entities as uid strings.
func minimalNames() (gen, grid, demand string) {
	return uid("gen", core.KindSource).String(),
		uid("grid", core.KindBus).String(),
		uid("demand", core.KindSink).String()
}

// TestRoundTripWithoutSolver verifies the zero-optimization round trip:
// translated-then-extracted capacities, costs and emissions equal the
// canonical input, with all flow series zero.
func TestRoundTripWithoutSolver(t *testing.T) {
	net, _, err := busflow.Translate(minimalSystem(t))
	require.NoError(t, err)

	res, err := busflow.NewResultier(net)
	require.NoError(t, err)
	gen, grid, _ := minimalNames()

	caps := res.Capacities()
	require.InDelta(t, 20.0, *caps[gen].Installed, 1e-9)
	require.InDelta(t, 20.0, *caps[gen].Original, 1e-9)
	require.Nil(t, caps[grid].Installed, "bus size is not physically meaningful")

	flows := res.Flows()
	require.InDelta(t, 10.0, flows[results.EdgeKey{From: gen, To: grid}].SpecificCost, 1e-9)
	require.InDelta(t, 0.0, flows[results.EdgeKey{From: gen, To: grid}].SpecificEmission, 1e-9)

	require.Equal(t, 0.0, res.Globals().TotalCost)
	require.Equal(t, 0.0, res.Globals().TotalEmissions)
	require.Equal(t, core.Zeros(1), res.Loads()[gen].Outflow)
}

// TestDispatchScenario is the concrete scenario: source capacity 20 at cost
// 10 per unit, fixed demand 11 — total cost 110 and net edge flow 11.
func TestDispatchScenario(t *testing.T) {
	net, _, err := busflow.Translate(minimalSystem(t))
	require.NoError(t, err)
	gen, grid, demand := minimalNames()

	net.Solution = &busflow.Solution{
		Objective: 110,
		Flows: map[busflow.FlowKey]core.Series{
			{From: gen, To: grid}:    {11},
			{From: grid, To: demand}: {11},
		},
	}

	res, err := busflow.NewResultier(net)
	require.NoError(t, err)

	require.InDelta(t, 110.0, res.Globals().TotalCost, 1e-9)
	require.InDelta(t, 110.0, res.Globals().Opex, 1e-9)

	loads := res.Loads()
	require.InDelta(t, 11.0, loads[gen].Net().Sum(), 1e-9)
	require.InDelta(t, -11.0, loads[demand].Net().Sum(), 1e-9)

	// Canonical sign convention across the board.
	for name, l := range loads {
		for i := range l.Inflow {
			require.LessOrEqual(t, l.Inflow[i], 0.0, "inflow sign for %s", name)
			require.GreaterOrEqual(t, l.Outflow[i], 0.0, "outflow sign for %s", name)
		}
	}

	// Utilization: 11 of 20 installed.
	char := res.Characteristics()[gen]
	require.NotNil(t, char)
	require.InDelta(t, 0.55, *char, 1e-9)
}

// TestMemoization verifies the idempotence contract: accessors called twice
// return identical contents.
func TestMemoization(t *testing.T) {
	net, _, err := busflow.Translate(minimalSystem(t))
	require.NoError(t, err)
	res, err := busflow.NewResultier(net)
	require.NoError(t, err)

	require.Equal(t, res.Capacities(), res.Capacities())
	require.Equal(t, res.Loads(), res.Loads())
	require.Equal(t, res.Globals(), res.Globals())
	require.Equal(t, res.Flows(), res.Flows())
}

// TestMultiOutputCapacities verifies re-derived secondary capacities equal
// primary capacity × ratio, primary excluded from the secondary series.
func TestMultiOutputCapacities(t *testing.T) {
	es := core.NewEnergySystem(1)
	for _, b := range []string{"fuel", "heatnet", "powernet"} {
		require.NoError(t, es.AddNode(core.Bus{U: uid(b, core.KindBus)}))
	}
	tr := core.Transformer{
		U:      uid("chp-plant", core.KindTransformer),
		Inputs: []core.Uid{uid("fuel", core.KindBus)},
		InFlow: core.Edge{MaxCapacity: 100},
		Outputs: []core.Output{
			{Bus: uid("powernet", core.KindBus), Carrier: "power", Efficiency: 0.3,
				Flow: core.Edge{Installed: 15, MaxCapacity: 15}},
			{Bus: uid("heatnet", core.KindBus), Carrier: "heat", Efficiency: 0.6,
				Flow: core.Edge{Installed: 30, MaxCapacity: 30}},
		},
	}
	tr.U.NodeType = "chp"
	require.NoError(t, es.AddNode(tr))

	net, _, err := busflow.Translate(es)
	require.NoError(t, err)
	res, err := busflow.NewResultier(net)
	require.NoError(t, err)

	name := tr.U.String()
	caps := res.Capacities()
	// Primary carrier is "heat" (lexicographically first).
	require.InDelta(t, 30.0, *caps[name].Installed, 1e-9)

	derived := res.CarrierCapacities()[name]
	require.Len(t, derived, 1)
	require.NotContains(t, derived, "heat", "primary excluded from secondary series")
	// power = primary 30 × ratio (0.3/0.6).
	require.InDelta(t, 15.0, derived["power"], 1e-9)
}

// TestStorageSocScenario is the concrete scenario: capacity 30, initial SOC
// 10, symmetric efficiency 1.0, zero idle loss — SOC stays within [0, 30].
func TestStorageSocScenario(t *testing.T) {
	es := core.NewEnergySystem(4)
	require.NoError(t, es.AddNode(core.Bus{U: uid("grid", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Storage{
		U:                 uid("batt", core.KindStorage),
		Bus:               uid("grid", core.KindBus),
		Capacity:          30,
		InitialSoc:        10,
		InflowEfficiency:  1.0,
		OutflowEfficiency: 1.0,
		Flow:              core.Edge{MaxCapacity: 10},
	}))

	net, _, err := busflow.Translate(es)
	require.NoError(t, err)

	battName := uid("batt", core.KindStorage).String()
	net.Solution = &busflow.Solution{
		Soc: map[string]core.Series{battName: {10, 18, 30, 22}},
	}

	res, err := busflow.NewResultier(net)
	require.NoError(t, err)

	soc := res.StateOfCharge()[battName]
	require.Len(t, soc, 4)
	for i, v := range soc {
		require.GreaterOrEqual(t, v, 0.0, "step %d", i)
		require.LessOrEqual(t, v, 30.0, "step %d", i)
	}
}

// TestConnectorLoads verifies flow direction is attributed correctly through
// the connector's two directional records.
func TestConnectorLoads(t *testing.T) {
	es := core.NewEnergySystem(1)
	require.NoError(t, es.AddNode(core.Bus{U: uid("north", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Bus{U: uid("south", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Connector{
		U:            uid("tie", core.KindConnector),
		BusA:         uid("north", core.KindBus),
		BusB:         uid("south", core.KindBus),
		EfficiencyAB: 0.9,
		EfficiencyBA: 0.9,
		FlowAB:       core.Edge{MaxCapacity: 40},
		FlowBA:       core.Edge{MaxCapacity: 40},
	}))

	net, _, err := busflow.Translate(es)
	require.NoError(t, err)

	tie := uid("tie", core.KindConnector).String()
	north := uid("north", core.KindBus).String()
	south := uid("south", core.KindBus).String()
	net.Solution = &busflow.Solution{
		Flows: map[busflow.FlowKey]core.Series{
			{From: north, To: tie}: {10},
			{From: tie, To: south}: {9}, // 0.9 efficiency
		},
	}

	res, err := busflow.NewResultier(net)
	require.NoError(t, err)

	tieLoad := res.Loads()[tie]
	require.InDelta(t, -10.0, tieLoad.Inflow.Sum(), 1e-9)
	require.InDelta(t, 9.0, tieLoad.Outflow.Sum(), 1e-9)
}
