package dist

import (
	"fmt"
	"math"
)

// Kind identifies a supported parametric distribution. The set is
// closed; adding a kind means adding its parameter schema and its draw
// rule in sampler.go.
type Kind int

const (
	Normal Kind = iota
	Uniform
	LogNormal
	Exponential
	Triangular
)

var kindNames = map[Kind]string{
	Normal:      "normal",
	Uniform:     "uniform",
	LogNormal:   "lognormal",
	Exponential: "exponential",
	Triangular:  "triangular",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown distribution kind: %s", name)
}

func Kinds() []string {
	return []string{"normal", "uniform", "lognormal", "exponential", "triangular"}
}

// Spec names a distribution and its parameters. Immutable once built;
// construct with NewSpec and validate before sampling.
type Spec struct {
	Kind   Kind
	Params map[string]float64
}

func NewSpec(kind Kind, params map[string]float64) Spec {
	p := make(map[string]float64, len(params))
	for k, v := range params {
		p[k] = v
	}
	return Spec{Kind: kind, Params: p}
}

func (s Spec) param(name string) (float64, error) {
	v, ok := s.Params[name]
	if !ok {
		return 0, &ParameterError{Kind: s.Kind, Name: name, Reason: "missing"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParameterError{Kind: s.Kind, Name: name, Value: v, Reason: "not finite"}
	}
	return v, nil
}

// Validate checks the parameter set against the schema for the spec's
// kind. It reports the first offending parameter by name.
func (s Spec) Validate() error {
	switch s.Kind {
	case Normal:
		if _, err := s.param("mean"); err != nil {
			return err
		}
		std, err := s.param("std")
		if err != nil {
			return err
		}
		if std < 0 {
			return &ParameterError{Kind: s.Kind, Name: "std", Value: std, Reason: "must be >= 0"}
		}
	case Uniform:
		min, err := s.param("min")
		if err != nil {
			return err
		}
		max, err := s.param("max")
		if err != nil {
			return err
		}
		if max <= min {
			return &ParameterError{Kind: s.Kind, Name: "max", Value: max, Reason: "must be > min"}
		}
	case LogNormal:
		if _, err := s.param("mu"); err != nil {
			return err
		}
		sigma, err := s.param("sigma")
		if err != nil {
			return err
		}
		if sigma <= 0 {
			return &ParameterError{Kind: s.Kind, Name: "sigma", Value: sigma, Reason: "must be > 0"}
		}
	case Exponential:
		rate, err := s.param("rate")
		if err != nil {
			return err
		}
		if rate <= 0 {
			return &ParameterError{Kind: s.Kind, Name: "rate", Value: rate, Reason: "must be > 0"}
		}
	case Triangular:
		min, err := s.param("min")
		if err != nil {
			return err
		}
		mode, err := s.param("mode")
		if err != nil {
			return err
		}
		max, err := s.param("max")
		if err != nil {
			return err
		}
		if max <= min {
			return &ParameterError{Kind: s.Kind, Name: "max", Value: max, Reason: "must be > min"}
		}
		if mode < min || mode > max {
			return &ParameterError{Kind: s.Kind, Name: "mode", Value: mode, Reason: "must lie in [min, max]"}
		}
	default:
		return &ParameterError{Kind: s.Kind, Name: "kind", Reason: "unsupported"}
	}
	return nil
}

// Mean returns the analytic expectation of a validated spec.
func Mean(s Spec) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	switch s.Kind {
	case Normal:
		return s.Params["mean"], nil
	case Uniform:
		return (s.Params["min"] + s.Params["max"]) / 2, nil
	case LogNormal:
		mu, sigma := s.Params["mu"], s.Params["sigma"]
		return math.Exp(mu + sigma*sigma/2), nil
	case Exponential:
		return 1 / s.Params["rate"], nil
	case Triangular:
		return (s.Params["min"] + s.Params["mode"] + s.Params["max"]) / 3, nil
	}
	return 0, &ParameterError{Kind: s.Kind, Name: "kind", Reason: "unsupported"}
}

// Variance returns the analytic variance of a validated spec.
func Variance(s Spec) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	switch s.Kind {
	case Normal:
		std := s.Params["std"]
		return std * std, nil
	case Uniform:
		w := s.Params["max"] - s.Params["min"]
		return w * w / 12, nil
	case LogNormal:
		mu, sigma := s.Params["mu"], s.Params["sigma"]
		s2 := sigma * sigma
		return (math.Exp(s2) - 1) * math.Exp(2*mu+s2), nil
	case Exponential:
		rate := s.Params["rate"]
		return 1 / (rate * rate), nil
	case Triangular:
		a, c, b := s.Params["min"], s.Params["mode"], s.Params["max"]
		return (a*a + b*b + c*c - a*b - a*c - b*c) / 18, nil
	}
	return 0, &ParameterError{Kind: s.Kind, Name: "kind", Reason: "unsupported"}
}
