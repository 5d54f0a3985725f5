package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blokeley/montecarlo/internal/dist"
)

const (
	DefaultModel  = "identity"
	DefaultTrials = 10000
	DefaultBins   = 20
)

type Config struct {
	Model      string        `yaml:"model"`
	Trials     int           `yaml:"trials"`
	Batch      int           `yaml:"batch"`
	Tolerance  float64       `yaml:"tolerance"`
	BestEffort bool          `yaml:"best_effort"`
	MaxBatches int           `yaml:"max_batches"`
	Seed       int64         `yaml:"seed"`
	Bins       int           `yaml:"bins"`
	Edges      []float64     `yaml:"edges"`
	LSL        *float64      `yaml:"lsl"`
	USL        *float64      `yaml:"usl"`
	Inputs     []InputConfig `yaml:"inputs"`
}

type InputConfig struct {
	Name   string             `yaml:"name"`
	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:  DefaultModel,
		Trials: DefaultTrials,
		Bins:   DefaultBins,
		Inputs: []InputConfig{
			{Name: "x", Kind: "uniform", Params: map[string]float64{"min": 0, "max": 1}},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Specs resolves the configured inputs into distribution specs.
func (c *Config) Specs() ([]dist.Spec, error) {
	specs := make([]dist.Spec, 0, len(c.Inputs))
	for _, in := range c.Inputs {
		kind, err := dist.ParseKind(in.Kind)
		if err != nil {
			return nil, err
		}
		spec := dist.NewSpec(kind, in.Params)
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseInput parses a compact input flag of the form
// "kind:param=value,param=value", e.g. "normal:mean=10,std=0.25".
func ParseInput(s string) (InputConfig, error) {
	kind, rest, found := strings.Cut(s, ":")
	if !found || kind == "" {
		return InputConfig{}, fmt.Errorf("input %q: want kind:param=value,...", s)
	}
	if _, err := dist.ParseKind(kind); err != nil {
		return InputConfig{}, err
	}
	params := make(map[string]float64)
	for _, pair := range strings.Split(rest, ",") {
		name, val, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return InputConfig{}, fmt.Errorf("input %q: bad parameter %q", s, pair)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return InputConfig{}, fmt.Errorf("input %q: parameter %q: %v", s, name, err)
		}
		params[name] = f
	}
	return InputConfig{Kind: kind, Params: params}, nil
}
