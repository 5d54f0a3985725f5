package dist

import (
	"errors"
	"math"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, name := range Kinds() {
		kind, err := ParseKind(name)
		if err != nil {
			t.Errorf("ParseKind(%q): %v", name, err)
		}
		if kind.String() != name {
			t.Errorf("round trip failed: %q -> %v -> %q", name, kind, kind.String())
		}
	}

	if _, err := ParseKind("cauchy"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"valid normal", NewSpec(Normal, map[string]float64{"mean": 0, "std": 1}), false},
		{"zero std normal", NewSpec(Normal, map[string]float64{"mean": 0, "std": 0}), false},
		{"negative std", NewSpec(Normal, map[string]float64{"mean": 0, "std": -1}), true},
		{"missing std", NewSpec(Normal, map[string]float64{"mean": 0}), true},
		{"NaN mean", NewSpec(Normal, map[string]float64{"mean": math.NaN(), "std": 1}), true},
		{"valid uniform", NewSpec(Uniform, map[string]float64{"min": 0, "max": 1}), false},
		{"inverted uniform", NewSpec(Uniform, map[string]float64{"min": 1, "max": 0}), true},
		{"empty uniform", NewSpec(Uniform, map[string]float64{"min": 1, "max": 1}), true},
		{"valid lognormal", NewSpec(LogNormal, map[string]float64{"mu": 0, "sigma": 0.5}), false},
		{"zero sigma", NewSpec(LogNormal, map[string]float64{"mu": 0, "sigma": 0}), true},
		{"valid exponential", NewSpec(Exponential, map[string]float64{"rate": 2}), false},
		{"zero rate", NewSpec(Exponential, map[string]float64{"rate": 0}), true},
		{"valid triangular", NewSpec(Triangular, map[string]float64{"min": 0, "mode": 1, "max": 2}), false},
		{"mode outside", NewSpec(Triangular, map[string]float64{"min": 0, "mode": 3, "max": 2}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error does not wrap ErrInvalidParameter: %v", err)
			}
		})
	}
}

func TestParameterErrorNamesParameter(t *testing.T) {
	spec := NewSpec(Normal, map[string]float64{"mean": 0, "std": -1})
	err := spec.Validate()

	var perr *ParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParameterError, got %T", err)
	}
	if perr.Name != "std" {
		t.Errorf("expected offending parameter std, got %q", perr.Name)
	}
}

func TestAnalyticMoments(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		mean     float64
		variance float64
	}{
		{"normal", NewSpec(Normal, map[string]float64{"mean": 5, "std": 2}), 5, 4},
		{"uniform", NewSpec(Uniform, map[string]float64{"min": 0, "max": 1}), 0.5, 1.0 / 12},
		{"exponential", NewSpec(Exponential, map[string]float64{"rate": 4}), 0.25, 0.0625},
		{"triangular", NewSpec(Triangular, map[string]float64{"min": 0, "mode": 1, "max": 2}), 1, 1.0 / 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, err := Mean(tt.spec)
			if err != nil {
				t.Fatalf("Mean: %v", err)
			}
			if math.Abs(mean-tt.mean) > 1e-12 {
				t.Errorf("mean: expected %v, got %v", tt.mean, mean)
			}
			variance, err := Variance(tt.spec)
			if err != nil {
				t.Fatalf("Variance: %v", err)
			}
			if math.Abs(variance-tt.variance) > 1e-12 {
				t.Errorf("variance: expected %v, got %v", tt.variance, variance)
			}
		})
	}
}
