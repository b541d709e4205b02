package config

import "sort"

var Presets = map[string]*Config{
	"placeholder": {
		Size: 5, Distribution: "uniform", Precision: "float64", Function: "square",
		Sweep:  SweepConfig{Min: 2, Max: 16},
		Output: OutputConfig{Format: "csv", Digits: 4},
	},
	"runge": {
		Size: 16, Distribution: "uniform", Precision: "float64", Function: "runge",
		Sweep:  SweepConfig{Min: 4, Max: 40},
		Output: OutputConfig{Format: "csv", Digits: 3},
	},
	"spectral": {
		Size: 16, Distribution: "chebyshev", Precision: "float64", Function: "sin",
		Sweep:  SweepConfig{Min: 2, Max: 32},
		Output: OutputConfig{Format: "json", Digits: 6},
	},
	"trajectory": {
		Size: 10, Distribution: "legendre", Precision: "float64", Function: "exp",
		Sweep:  SweepConfig{Min: 2, Max: 20},
		Output: OutputConfig{Format: "json", Digits: 6},
	},
	"embedded": {
		Size: 8, Distribution: "chebyshev", Precision: "float32", Function: "cubic",
		Sweep:  SweepConfig{Min: 2, Max: 12},
		Output: OutputConfig{Format: "csv", Digits: 4},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
