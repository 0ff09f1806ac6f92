package techloc_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fluxcast/core"
	"github.com/katalvlaran/fluxcast/techloc"
)

// richSystem builds a network touching every persisted shape: locations,
// all four tech functions, a connector expansion and an emission cap.
func richSystem(t *testing.T) *core.EnergySystem {
	t.Helper()
	es := core.NewEnergySystem(3, core.WithEmissionCap(1000))
	require.NoError(t, es.AddNode(core.Bus{U: uid("north", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Bus{U: uid("south", core.KindBus)}))
	require.NoError(t, es.AddNode(core.Source{
		U:       uid("gen", core.KindSource),
		Bus:     uid("north", core.KindBus),
		Outflow: core.Edge{Installed: 20, MaxCapacity: 20, Cost: 10, Emission: 0.5},
	}))
	require.NoError(t, es.AddNode(core.Sink{
		U:      uid("city", core.KindSink),
		Bus:    uid("south", core.KindBus),
		Inflow: core.Edge{MaxCapacity: 15},
		Demand: core.Series{11, 7, 13.5},
	}))
	require.NoError(t, es.AddNode(core.Storage{
		U:                 uid("batt", core.KindStorage),
		Bus:               uid("south", core.KindBus),
		Capacity:          30,
		InitialSoc:        10,
		InflowEfficiency:  0.9,
		OutflowEfficiency: 0.9,
		Cyclic:            true,
		Flow:              core.Edge{MaxCapacity: 10},
	}))
	require.NoError(t, es.AddNode(core.Connector{
		U:            uid("tie", core.KindConnector),
		BusA:         uid("north", core.KindBus),
		BusB:         uid("south", core.KindBus),
		EfficiencyAB: 0.95,
		EfficiencyBA: 0.85,
		FlowAB:       core.Edge{MaxCapacity: 40},
		FlowBA:       core.Edge{MaxCapacity: 40},
	}))

	return es
}

// TestWriteReadRoundTrip verifies a persisted model restores identically.
func TestWriteReadRoundTrip(t *testing.T) {
	m, _, err := techloc.Translate(richSystem(t), techloc.WithModelName("trip"))
	require.NoError(t, err)

	root := t.TempDir()
	require.NoError(t, techloc.WriteDir(m, root))

	dir := techloc.Dir(root, "trip")
	for _, f := range []string{"model.yaml", "techs.yaml", "locations.yaml", "ts_demand@city.csv"} {
		_, statErr := os.Stat(filepath.Join(dir, f))
		require.NoError(t, statErr, f)
	}

	back, err := techloc.ReadDir(root, "trip")
	require.NoError(t, err)

	require.Equal(t, m.Name, back.Name)
	require.Equal(t, m.FormatVersion, back.FormatVersion)
	require.Equal(t, m.Timesteps, back.Timesteps)
	require.Equal(t, m.EmissionCap, back.EmissionCap)
	require.Equal(t, m.Techs, back.Techs)
	require.Equal(t, m.Locations, back.Locations)
	require.Equal(t, m.Links, back.Links)
	require.Equal(t, m.Timeseries, back.Timeseries)
	require.Nil(t, back.Solution)
}

// TestWriteDirNilModel verifies the nil guard.
func TestWriteDirNilModel(t *testing.T) {
	require.ErrorIs(t, techloc.WriteDir(nil, t.TempDir()), techloc.ErrNilModel)
}

// TestReadDirMajorVersionMismatch verifies files from an incompatible major
// format version are rejected.
func TestReadDirMajorVersionMismatch(t *testing.T) {
	m, _, err := techloc.Translate(minimalSystem(t), techloc.WithModelName("old"))
	require.NoError(t, err)

	root := t.TempDir()
	require.NoError(t, techloc.WriteDir(m, root))

	path := filepath.Join(techloc.Dir(root, "old"), "model.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), m.FormatVersion.String(), "99.0.0", 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0o644))

	_, err = techloc.ReadDir(root, "old")
	require.ErrorIs(t, err, techloc.ErrFormatVersion)
}

// TestReadDirBadTimeseries verifies a malformed csv header is rejected.
func TestReadDirBadTimeseries(t *testing.T) {
	m, _, err := techloc.Translate(minimalSystem(t), techloc.WithModelName("bad"))
	require.NoError(t, err)

	root := t.TempDir()
	require.NoError(t, techloc.WriteDir(m, root))

	path := filepath.Join(techloc.Dir(root, "bad"), "ts_demand@demand.csv")
	require.NoError(t, os.WriteFile(path, []byte("time,power\n0,11\n"), 0o644))

	_, err = techloc.ReadDir(root, "bad")
	require.ErrorIs(t, err, techloc.ErrBadTimeseries)
}

// TestReadDirMissing verifies reading a model that was never written fails.
func TestReadDirMissing(t *testing.T) {
	_, err := techloc.ReadDir(t.TempDir(), "ghost")
	require.Error(t, err)
}
