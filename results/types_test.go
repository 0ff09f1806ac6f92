package results_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/results"
)

// TestCharacteristic covers the utilization contract: [0,1] fraction,
// 0 for idle zero-capacity nodes, nil for variable-size nodes.
func TestCharacteristic(t *testing.T) {
	require.Nil(t, results.Characteristic(5, nil))

	zero := results.Characteristic(0, results.Float(0))
	require.NotNil(t, zero)
	require.Equal(t, 0.0, *zero)

	half := results.Characteristic(10, results.Float(20))
	require.NotNil(t, half)
	require.InDelta(t, 0.5, *half, 1e-12)

	// Negative means (inflow series) use magnitude.
	neg := results.Characteristic(-10, results.Float(20))
	require.InDelta(t, 0.5, *neg, 1e-12)

	// Clamped to 1 even if the solver overshoots within tolerance.
	over := results.Characteristic(25, results.Float(20))
	require.Equal(t, 1.0, *over)
}

// TestLoadNet verifies inflow/outflow recombination.
func TestLoadNet(t *testing.T) {
	l := results.Load{
		Inflow:  core.Series{-1, -2, 0},
		Outflow: core.Series{3, 0, 5},
	}
	require.Equal(t, core.Series{2, -2, 5}, l.Net())
}

// TestNewResultAllocated verifies all maps are usable immediately.
func TestNewResultAllocated(t *testing.T) {
	r := results.NewResult()
	r.Uids["x"] = core.Uid{Name: "x", Kind: core.KindBus}
	r.Flows[results.EdgeKey{From: "a", To: "b"}] = results.Rates{SpecificCost: 1}
	r.CarrierCapacities["t"] = map[string]float64{"power": 5}
	require.Len(t, r.Uids, 1)
	require.Len(t, r.Flows, 1)
}

// TestDumpDeterministic verifies map dumps are sorted for stable diffs.
func TestDumpDeterministic(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1}
	out := results.Dump(m)
	require.Less(t, strings.Index(out, "a"), strings.Index(out, "b"))
	require.Equal(t, out, results.Dump(m))
}
