package techloc

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fluxcast/core"
)

const (
	backendDirName = "Techloc"
	modelFileName  = "model.yaml"
	techsFileName  = "techs.yaml"
	locsFileName   = "locations.yaml"
	tsPrefix       = "ts_"
	tsSuffix       = ".csv"
)

// modelFile is the on-disk form of the model-level fields. Techs and
// locations live in their own files; timeseries live in one csv each.
type modelFile struct {
	Name          string             `yaml:"name"`
	FormatVersion string             `yaml:"format_version"`
	Timesteps     int                `yaml:"timesteps"`
	EmissionCap   *float64           `yaml:"emission_cap,omitempty"`
	Links         []TransmissionLink `yaml:"links,omitempty"`
}

// Dir returns the directory a model with the given name occupies under root.
func Dir(root, name string) string {
	return filepath.Join(root, backendDirName, name)
}

// WriteDir persists m under {root}/Techloc/{m.Name}/: model.yaml, techs.yaml,
// locations.yaml, and one ts_{param}.csv per timeseries. The solution is a
// runtime attachment and is not persisted.
func WriteDir(m *Model, root string) error {
	if m == nil {
		return ErrNilModel
	}

	dir := Dir(root, m.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("techloc: create model dir: %w", err)
	}

	mf := modelFile{
		Name:          m.Name,
		FormatVersion: m.FormatVersion.String(),
		Timesteps:     m.Timesteps,
		EmissionCap:   m.EmissionCap,
		Links:         m.Links,
	}
	if err := writeYaml(filepath.Join(dir, modelFileName), mf); err != nil {
		return err
	}
	if err := writeYaml(filepath.Join(dir, techsFileName), m.Techs); err != nil {
		return err
	}
	if err := writeYaml(filepath.Join(dir, locsFileName), m.Locations); err != nil {
		return err
	}

	params := make([]string, 0, len(m.Timeseries))
	for p := range m.Timeseries {
		params = append(params, p)
	}
	sort.Strings(params)
	for _, p := range params {
		if err := writeTimeseries(filepath.Join(dir, tsPrefix+p+tsSuffix), m.Timeseries[p]); err != nil {
			return err
		}
	}

	return nil
}

// ReadDir restores the model named name from under root. Files written by a
// different major format version are rejected with ErrFormatVersion.
func ReadDir(root, name string) (*Model, error) {
	dir := Dir(root, name)

	var mf modelFile
	if err := readYaml(filepath.Join(dir, modelFileName), &mf); err != nil {
		return nil, err
	}

	version, err := semver.Parse(mf.FormatVersion)
	if err != nil {
		return nil, fmt.Errorf("techloc: parse format version: %w", err)
	}
	if version.Major != CurrentFormat.Major {
		return nil, fmt.Errorf("%w: file %s, supported %s", ErrFormatVersion, version, CurrentFormat)
	}

	m := &Model{
		Name:          mf.Name,
		FormatVersion: version,
		Timesteps:     mf.Timesteps,
		EmissionCap:   mf.EmissionCap,
		Links:         mf.Links,
		Techs:         make(map[string]Tech),
		Locations:     make(map[string]Location),
		Timeseries:    make(map[string]core.Series),
	}
	if err = readYaml(filepath.Join(dir, techsFileName), &m.Techs); err != nil {
		return nil, err
	}
	if err = readYaml(filepath.Join(dir, locsFileName), &m.Locations); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("techloc: list model dir: %w", err)
	}
	for _, e := range entries {
		fname := e.Name()
		if e.IsDir() || !strings.HasPrefix(fname, tsPrefix) || !strings.HasSuffix(fname, tsSuffix) {
			continue
		}
		param := strings.TrimSuffix(strings.TrimPrefix(fname, tsPrefix), tsSuffix)
		series, serr := readTimeseries(filepath.Join(dir, fname))
		if serr != nil {
			return nil, serr
		}
		m.Timeseries[param] = series
	}

	return m, nil
}

func writeYaml(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("techloc: marshal %s: %w", filepath.Base(path), err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("techloc: write %s: %w", filepath.Base(path), err)
	}

	return nil
}

func readYaml(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("techloc: read %s: %w", filepath.Base(path), err)
	}
	if err = yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("techloc: unmarshal %s: %w", filepath.Base(path), err)
	}

	return nil
}

// writeTimeseries renders one series as "step,value" rows.
func writeTimeseries(path string, s core.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("techloc: create %s: %w", filepath.Base(path), err)
	}

	w := csv.NewWriter(f)
	rows := [][]string{{"step", "value"}}
	for i, v := range s {
		rows = append(rows, []string{strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)})
	}
	if err = w.WriteAll(rows); err != nil {
		f.Close()

		return fmt.Errorf("techloc: write %s: %w", filepath.Base(path), err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("techloc: close %s: %w", filepath.Base(path), err)
	}

	return nil
}

// readTimeseries parses one "step,value" file back into a series, placing
// every row by its step index so row order does not matter.
func readTimeseries(path string) (core.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("techloc: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("techloc: parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 || len(rows[0]) != 2 || rows[0][0] != "step" || rows[0][1] != "value" {
		return nil, fmt.Errorf("%w: %s: missing step,value header", ErrBadTimeseries, filepath.Base(path))
	}

	series := core.Zeros(len(rows) - 1)
	for _, row := range rows[1:] {
		step, serr := strconv.Atoi(row[0])
		if serr != nil {
			return nil, fmt.Errorf("%w: %s: step %q", ErrBadTimeseries, filepath.Base(path), row[0])
		}
		if step < 0 || step >= len(series) {
			return nil, fmt.Errorf("%w: %s: step %d out of range", ErrBadTimeseries, filepath.Base(path), step)
		}
		v, serr := strconv.ParseFloat(row[1], 64)
		if serr != nil {
			return nil, fmt.Errorf("%w: %s: value %q", ErrBadTimeseries, filepath.Base(path), row[1])
		}
		series[step] = v
	}

	return series, nil
}
