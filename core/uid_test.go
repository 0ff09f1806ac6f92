package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fluxcast/core"
)

// TestUidRoundTrip verifies that String and ParseUid are exact inverses.
func TestUidRoundTrip(t *testing.T) {
	u := core.Uid{
		Name:      "PV Plant 1",
		Latitude:  52.52,
		Longitude: 13.405,
		Region:    "DE",
		Sector:    "power",
		Carrier:   "electricity",
		NodeType:  "renewable",
		Kind:      core.KindSource,
		Origin:    core.OriginCanonical,
	}
	parsed, err := core.ParseUid(u.String())
	require.NoError(t, err)
	require.Equal(t, u, parsed)
}

// TestUidRoundTripSynthetic verifies the origin tag survives serialization.
func TestUidRoundTripSynthetic(t *testing.T) {
	u := core.Uid{
		Name:   "conn-mid",
		Kind:   core.KindBus,
		Origin: core.OriginSynthetic,
	}
	parsed, err := core.ParseUid(u.String())
	require.NoError(t, err)
	require.Equal(t, core.OriginSynthetic, parsed.Origin)
}

// TestParseUidIdempotent verifies parse→serialize→parse stability.
func TestParseUidIdempotent(t *testing.T) {
	u := core.Uid{Name: "hub", Region: "N", Carrier: "heat", Kind: core.KindBus}
	first, err := core.ParseUid(u.String())
	require.NoError(t, err)
	second, err := core.ParseUid(first.String())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestParseUidErrors exercises the malformed-string branches.
func TestParseUidErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		err  error
	}{
		{"TooFewSegments", "a/b/c", core.ErrUidSegments},
		{"BadKind", "n/0/0/r/s/c/t/rocket/canonical", core.ErrUnknownKind},
		{"BadOrigin", "n/0/0/r/s/c/t/bus/ghost", core.ErrUnknownOrigin},
		{"EmptyName", "/0/0/r/s/c/t/bus/canonical", core.ErrEmptyName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.ParseUid(tc.in)
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseUid(%q) error = %v; want %v", tc.in, err, tc.err)
			}
		})
	}
}

// TestUidValidateSeparator verifies fields containing the separator are rejected.
func TestUidValidateSeparator(t *testing.T) {
	u := core.Uid{Name: "a/b", Kind: core.KindBus}
	require.ErrorIs(t, u.Validate(), core.ErrUidSeparator)
}

// TestKindTags verifies every kind tag parses back to itself.
func TestKindTags(t *testing.T) {
	kinds := []core.ComponentKind{
		core.KindBus, core.KindSource, core.KindSink,
		core.KindTransformer, core.KindStorage, core.KindConnector,
	}
	for _, k := range kinds {
		parsed, err := core.ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, parsed)
	}
}
