// Package tolerance supports tolerance analysis of manufactured
// parameters: a nominal target with a symmetric tolerance band is
// turned into a normal distribution whose spread is set by the process
// capability index, and simulation outputs are judged against
// specification limits in parts per million.
package tolerance

import "github.com/blokeley/montecarlo/internal/dist"

// DefaultCp is the process capability index assumed when none is
// given. General practice requires Cp of at least 1.33. Only centred
// distributions are modeled, so Cp is used rather than Cpk.
const DefaultCp = 1.33

// Parameter describes a toleranced quantity. For asymmetric tolerances
// build a dist.Spec directly.
type Parameter struct {
	Name   string
	Target float64
	Tol    float64
	Cp     float64
}

func NewParameter(name string, target, tol float64) Parameter {
	return Parameter{Name: name, Target: target, Tol: tol, Cp: DefaultCp}
}

// LSL returns the lower specification limit.
func (p Parameter) LSL() float64 { return p.Target - p.Tol }

// USL returns the upper specification limit.
func (p Parameter) USL() float64 { return p.Target + p.Tol }

// Std derives the process standard deviation from the specification
// width and capability: std = (USL - LSL) / (6 * Cp).
func (p Parameter) Std() float64 {
	cp := p.Cp
	if cp == 0 {
		cp = DefaultCp
	}
	return (p.USL() - p.LSL()) / (6 * cp)
}

// Spec returns the normal distribution spec for this parameter.
func (p Parameter) Spec() dist.Spec {
	return dist.NewSpec(dist.Normal, map[string]float64{
		"mean": p.Target,
		"std":  p.Std(),
	})
}
