package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fluxcast/core"
)

func busUid(name string) core.Uid {
	return core.Uid{Name: name, Kind: core.KindBus}
}

// TestAddNodeDuplicate verifies duplicate uid strings are rejected.
func TestAddNodeDuplicate(t *testing.T) {
	es := core.NewEnergySystem(4)
	require.NoError(t, es.AddNode(core.Bus{U: busUid("grid")}))
	require.ErrorIs(t, es.AddNode(core.Bus{U: busUid("grid")}), core.ErrDuplicateNode)
	require.ErrorIs(t, es.AddNode(nil), core.ErrNilNode)
}

// TestAccessorsSorted verifies deterministic lexicographic enumeration.
func TestAccessorsSorted(t *testing.T) {
	es := core.NewEnergySystem(4)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, es.AddNode(core.Bus{U: busUid(name)}))
	}
	buses := es.Buses()
	require.Len(t, buses, 3)
	require.Equal(t, "alpha", buses[0].U.Name)
	require.Equal(t, "mid", buses[1].U.Name)
	require.Equal(t, "zeta", buses[2].U.Name)
}

// TestValidateUnknownBus verifies dangling bus references are reported.
func TestValidateUnknownBus(t *testing.T) {
	es := core.NewEnergySystem(4)
	src := core.Source{
		U:       core.Uid{Name: "gen", Kind: core.KindSource},
		Bus:     busUid("nowhere"),
		Outflow: core.Edge{MaxCapacity: 10},
	}
	require.NoError(t, es.AddNode(src))
	require.ErrorIs(t, es.Validate(), core.ErrUnknownBus)
}

// TestValidateAggregates verifies several independent failures surface together.
func TestValidateAggregates(t *testing.T) {
	es := core.NewEnergySystem(2)
	require.NoError(t, es.AddNode(core.Bus{U: busUid("b")}))
	require.NoError(t, es.AddNode(core.Sink{
		U:      core.Uid{Name: "load", Kind: core.KindSink},
		Bus:    busUid("b"),
		Inflow: core.Edge{MinCapacity: 5, MaxCapacity: 1}, // inverted bounds
		Demand: core.Series{1, 2, 3},                      // wrong length
	}))
	err := es.Validate()
	require.ErrorIs(t, err, core.ErrCapacityBounds)
	require.ErrorIs(t, err, core.ErrSeriesLength)
}

// TestValidateStorageEfficiency verifies (0,1] efficiency bounds.
func TestValidateStorageEfficiency(t *testing.T) {
	es := core.NewEnergySystem(2)
	require.NoError(t, es.AddNode(core.Bus{U: busUid("b")}))
	require.NoError(t, es.AddNode(core.Storage{
		U:                 core.Uid{Name: "batt", Kind: core.KindStorage},
		Bus:               busUid("b"),
		Capacity:          10,
		InflowEfficiency:  1.2, // out of range
		OutflowEfficiency: 0.9,
		Flow:              core.Edge{MaxCapacity: 5},
	}))
	require.ErrorIs(t, es.Validate(), core.ErrBadEfficiency)
}

// TestEdgeUnbounded verifies the infinity helpers.
func TestEdgeUnbounded(t *testing.T) {
	e := core.Edge{MaxCapacity: math.Inf(1)}
	require.True(t, e.Unbounded())
	require.False(t, e.Expandable())
	e.Expansion = &core.Expansion{Max: 100, Cost: 2}
	require.True(t, e.Expandable())
}

// TestWithEmissionCap verifies the system option.
func TestWithEmissionCap(t *testing.T) {
	es := core.NewEnergySystem(4, core.WithEmissionCap(250))
	require.NotNil(t, es.GlobalEmissionCap)
	require.Equal(t, 250.0, *es.GlobalEmissionCap)
}
