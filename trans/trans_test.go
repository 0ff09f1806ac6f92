package trans_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/trans"
)

func transformer(name string, inputs int, carriers ...string) core.Transformer {
	t := core.Transformer{U: core.Uid{Name: name, Kind: core.KindTransformer}}
	for i := 0; i < inputs; i++ {
		t.Inputs = append(t.Inputs, core.Uid{Name: "in", Kind: core.KindBus})
	}
	for _, c := range carriers {
		t.Outputs = append(t.Outputs, core.Output{
			Bus:        core.Uid{Name: "bus-" + c, Kind: core.KindBus},
			Carrier:    c,
			Efficiency: 0.5,
		})
	}

	return t
}

// TestValidateTransformerArity covers every structural arity rule.
func TestValidateTransformerArity(t *testing.T) {
	cases := []struct {
		name string
		in   core.Transformer
		err  error
	}{
		{"NoInput", transformer("t", 0, "heat"), trans.ErrNoInput},
		{"MultiInput", transformer("t", 2, "heat"), trans.ErrMultipleInputs},
		{"NoOutputs", transformer("t", 1), trans.ErrNoOutputs},
		{"FourOutputs", transformer("t", 1, "a", "b", "c", "d"), trans.ErrTooManyOutputs},
		{"DuplicateCarrier", transformer("t", 1, "heat", "heat"), trans.ErrDuplicateCarrier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := trans.ValidateTransformer(tc.in)
			require.ErrorIs(t, err, tc.err)

			var ce trans.ComponentError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, tc.in.U, ce.Component)
		})
	}

	require.NoError(t, trans.ValidateTransformer(transformer("ok", 1, "heat", "power")))
}

// TestPrimaryCarrierLexicographic verifies the election is lexicographic and
// the secondaries stay sorted.
func TestPrimaryCarrierLexicographic(t *testing.T) {
	tr := transformer("chp", 1, "power", "heat", "steam")
	primary, secondaries, err := trans.PrimaryCarrier(tr)
	require.NoError(t, err)
	require.Equal(t, "heat", primary.Carrier)
	require.Len(t, secondaries, 2)
	require.Equal(t, "power", secondaries[0].Carrier)
	require.Equal(t, "steam", secondaries[1].Carrier)
}

// TestClassify verifies the generator-like vs link-like split.
func TestClassify(t *testing.T) {
	single := transformer("boiler", 1, "heat")
	require.Equal(t, trans.GeneratorLike, trans.Classify(single))

	multi := transformer("chp", 1, "heat", "power")
	require.Equal(t, trans.LinkLike, trans.Classify(multi))

	tagged := transformer("mini-chp", 1, "heat")
	tagged.U.NodeType = "chp"
	require.Equal(t, trans.LinkLike, trans.Classify(tagged))
}

// TestNormalizeCapacity covers the infinite-capacity policy.
func TestNormalizeCapacity(t *testing.T) {
	u := core.Uid{Name: "gen", Kind: core.KindSource}

	t.Run("Finite", func(t *testing.T) {
		spec, approx, err := trans.NormalizeCapacity(u, core.Edge{Installed: 20, MaxCapacity: 20})
		require.NoError(t, err)
		require.False(t, approx)
		require.Equal(t, 20.0, spec.Existing)
		require.False(t, spec.Expandable)
	})

	t.Run("InfiniteBecomesExpandable", func(t *testing.T) {
		spec, approx, err := trans.NormalizeCapacity(u, core.Edge{MaxCapacity: math.Inf(1)})
		require.NoError(t, err)
		require.True(t, approx)
		require.True(t, spec.Expandable)
		require.Equal(t, 0.0, spec.Existing)
	})

	t.Run("InfiniteExpansionBound", func(t *testing.T) {
		e := core.Edge{MaxCapacity: 10, Expansion: &core.Expansion{Max: math.Inf(1), Cost: 5}}
		spec, approx, err := trans.NormalizeCapacity(u, e)
		require.NoError(t, err)
		require.True(t, approx)
		require.True(t, spec.Expandable)
		require.False(t, spec.ExpansionBounded)
		require.Equal(t, 5.0, spec.ExpansionCost)
	})

	t.Run("InfiniteWithNonConvex", func(t *testing.T) {
		e := core.Edge{MaxCapacity: math.Inf(1), NonConvex: &core.NonConvex{StartupCost: 1}}
		_, _, err := trans.NormalizeCapacity(u, e)
		require.ErrorIs(t, err, trans.ErrInfiniteNonConvex)
	})

	t.Run("MaxCapacityAsExisting", func(t *testing.T) {
		spec, _, err := trans.NormalizeCapacity(u, core.Edge{MaxCapacity: 15})
		require.NoError(t, err)
		require.Equal(t, 15.0, spec.Existing)
	})
}

// TestGeometricMean verifies the asymmetric-efficiency collapse.
func TestGeometricMean(t *testing.T) {
	require.InDelta(t, 0.9, trans.GeometricMean(0.81, 1.0), 1e-12)
	require.Equal(t, 1.0, trans.GeometricMean(1.0, 1.0))
}

// TestSecondaryRatioAndAccumulate verifies ratio derivation and cost folding.
func TestSecondaryRatioAndAccumulate(t *testing.T) {
	primary := core.Output{Carrier: "heat", Efficiency: 0.6, Flow: core.Edge{Cost: 2, Emission: 1}}
	secondary := core.Output{Carrier: "power", Efficiency: 0.3, Flow: core.Edge{Cost: 4, Emission: 3}}

	require.InDelta(t, 0.5, trans.SecondaryRatio(primary, secondary), 1e-12)

	cost, emission := trans.AccumulateOnPrimary(primary, []core.Output{secondary})
	require.Equal(t, 6.0, cost)
	require.Equal(t, 4.0, emission)
}
