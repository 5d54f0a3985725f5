package config

import "github.com/blokeley/montecarlo/internal/tolerance"

// Presets are named, ready-to-run configurations per model.

func kineticExample() *Config {
	// Mass 10 +/- 1, velocity 5 +/- 0.2 at the default process
	// capability.
	mass := tolerance.NewParameter("mass", 10, 1)
	velocity := tolerance.NewParameter("velocity", 5, 0.2)
	usl := 135.0
	return &Config{
		Model:  "kinetic_energy",
		Trials: 1000000,
		Bins:   100,
		USL:    &usl,
		Inputs: []InputConfig{
			{Name: mass.Name, Kind: "normal", Params: map[string]float64{"mean": mass.Target, "std": mass.Std()}},
			{Name: velocity.Name, Kind: "normal", Params: map[string]float64{"mean": velocity.Target, "std": velocity.Std()}},
		},
	}
}

func kineticQuick() *Config {
	cfg := kineticExample()
	cfg.Trials = 10000
	cfg.Bins = 30
	return cfg
}

func identityUniform() *Config {
	return &Config{
		Model:  "identity",
		Trials: 10000,
		Bins:   20,
		Inputs: []InputConfig{
			{Name: "x", Kind: "uniform", Params: map[string]float64{"min": 0, "max": 1}},
		},
	}
}

func identityConverge() *Config {
	return &Config{
		Model:     "identity",
		Tolerance: 0.01,
		Batch:     1000,
		Bins:      20,
		Inputs: []InputConfig{
			{Name: "x", Kind: "normal", Params: map[string]float64{"mean": 5, "std": 1}},
		},
	}
}

var presets = map[string]map[string]func() *Config{
	"kinetic_energy": {
		"example": kineticExample,
		"quick":   kineticQuick,
	},
	"identity": {
		"uniform":  identityUniform,
		"converge": identityConverge,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(model, name string) *Config {
	byName, ok := presets[model]
	if !ok {
		return nil
	}
	fn, ok := byName[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names available for a model.
func ListPresets(model string) []string {
	byName, ok := presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
