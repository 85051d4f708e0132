package fuzzydose

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Preset is a named family of the four fuzzy sets the controller needs.
type Preset struct {
	Name     string
	TempLow  MembershipFunction // Temperature is LOW (°C)
	TempHigh MembershipFunction // Temperature is HIGH (°C)
	DoseLow  MembershipFunction // Dose is LOW (ml)
	DoseHigh MembershipFunction // Dose is HIGH (ml)
}

// Validate checks that all four sets are constructed and the name is set.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidArgumentf("preset name must not be empty")
	}
	sets := []struct {
		name string
		mf   MembershipFunction
	}{
		{"temp_low", p.TempLow},
		{"temp_high", p.TempHigh},
		{"dose_low", p.DoseLow},
		{"dose_high", p.DoseHigh},
	}
	for _, s := range sets {
		if s.mf.IsZero() {
			return invalidArgumentf("preset %q: %s is not defined", p.Name, s.name)
		}
	}
	return nil
}

// Built-in presets. They are read-only: MembershipFunction exposes no way to
// mutate its points, so sharing them across goroutines needs no locking.
var (
	// DefaultPreset is the standard table family.
	DefaultPreset = Preset{
		Name: "default",
		TempLow: MustMembershipFunction(
			Point{37, 0.2}, Point{37.5, 1}, Point{38, 0.5}, Point{38.5, 0.2},
			Point{39, 0}, Point{39.5, 0}, Point{40, 0},
		),
		TempHigh: MustMembershipFunction(
			Point{37, 0}, Point{37.5, 0}, Point{38, 0.2}, Point{38.5, 0.5},
			Point{39, 0.8}, Point{39.5, 1}, Point{40, 1},
		),
		DoseLow: MustMembershipFunction(
			Point{0, 1}, Point{2, 0.8}, Point{5, 0.5}, Point{8, 0.2}, Point{10, 0},
		),
		DoseHigh: MustMembershipFunction(
			Point{0, 0}, Point{2, 0.2}, Point{5, 0.5}, Point{8, 0.8}, Point{10, 1},
		),
	}

	// AlternativePreset shifts LOW toward lower temperatures and uses a
	// coarser dose grid.
	AlternativePreset = Preset{
		Name: "alternative",
		TempLow: MustMembershipFunction(
			Point{36.5, 1}, Point{37, 0.8}, Point{37.5, 0.4}, Point{38, 0.1}, Point{38.5, 0},
		),
		TempHigh: MustMembershipFunction(
			Point{38, 0}, Point{38.5, 0.3}, Point{39, 0.7}, Point{39.5, 1}, Point{40, 1},
		),
		DoseLow: MustMembershipFunction(
			Point{0, 1}, Point{3, 0.7}, Point{6, 0.4}, Point{9, 0.1}, Point{10, 0},
		),
		DoseHigh: MustMembershipFunction(
			Point{0, 0}, Point{3, 0.3}, Point{6, 0.6}, Point{9, 0.9}, Point{10, 1},
		),
	}
)

// Presets returns the built-in presets in menu order.
func Presets() []Preset {
	return []Preset{DefaultPreset, AlternativePreset}
}

// LookupPreset finds a built-in preset by name or by menu number
// ("1" = default, "2" = alternative).
func LookupPreset(name string) (Preset, error) {
	return findPreset(Presets(), name)
}

// FindPreset looks a preset up in an arbitrary list by name (case-insensitive)
// or 1-based position.
func FindPreset(presets []Preset, name string) (Preset, error) {
	return findPreset(presets, name)
}

func findPreset(presets []Preset, name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, p := range presets {
		if strings.ToLower(p.Name) == key || strconv.Itoa(i+1) == key {
			return p, nil
		}
	}

	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return Preset{}, errors.WithHintf(
		invalidArgumentf("unknown preset %q", name),
		"available presets: %s", strings.Join(names, ", "))
}

// presetFile is the on-disk YAML layout read by LoadPresets.
type presetFile struct {
	Presets []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name     string       `yaml:"name"`
	TempLow  [][2]float64 `yaml:"temp_low"`
	TempHigh [][2]float64 `yaml:"temp_high"`
	DoseLow  [][2]float64 `yaml:"dose_low"`
	DoseHigh [][2]float64 `yaml:"dose_high"`
}

// LoadPresets reads custom presets from YAML:
//
//	presets:
//	  - name: pediatric
//	    temp_low:  [[36.5, 1], [37.5, 0.5], [38.5, 0]]
//	    temp_high: [[37.5, 0], [38.5, 0.5], [39.5, 1]]
//	    dose_low:  [[0, 1], [10, 0]]
//	    dose_high: [[0, 0], [10, 1]]
//
// Every table is validated like NewMembershipFunction. Names must be unique.
func LoadPresets(r io.Reader) ([]Preset, error) {
	var file presetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalidArgumentf("preset file is empty")
		}
		return nil, errors.Wrap(err, "failed to decode preset file")
	}
	if len(file.Presets) == 0 {
		return nil, invalidArgumentf("preset file defines no presets")
	}

	seen := make(map[string]bool, len(file.Presets))
	presets := make([]Preset, 0, len(file.Presets))

	for i, entry := range file.Presets {
		p, err := entry.build()
		if err != nil {
			return nil, errors.Wrapf(err, "preset %d", i)
		}

		key := strings.ToLower(p.Name)
		if seen[key] {
			return nil, invalidArgumentf("duplicate preset name %q", p.Name)
		}
		seen[key] = true

		presets = append(presets, p)
	}

	return presets, nil
}

func (e presetEntry) build() (Preset, error) {
	p := Preset{Name: strings.TrimSpace(e.Name)}
	if p.Name == "" {
		return Preset{}, invalidArgumentf("preset name must not be empty")
	}

	tables := []struct {
		name string
		raw  [][2]float64
		dst  *MembershipFunction
	}{
		{"temp_low", e.TempLow, &p.TempLow},
		{"temp_high", e.TempHigh, &p.TempHigh},
		{"dose_low", e.DoseLow, &p.DoseLow},
		{"dose_high", e.DoseHigh, &p.DoseHigh},
	}

	for _, t := range tables {
		points := make([]Point, len(t.raw))
		for i, xy := range t.raw {
			points[i] = Point{X: xy[0], Mu: xy[1]}
		}

		mf, err := NewMembershipFunction(points...)
		if err != nil {
			return Preset{}, errors.Wrapf(err, "%s: %s", p.Name, t.name)
		}
		*t.dst = mf
	}

	return p, nil
}
