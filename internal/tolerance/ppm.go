package tolerance

import (
	"math"

	"github.com/blokeley/montecarlo/internal/stats"
)

// PPMAbove returns the parts per million of xs strictly above max.
func PPMAbove(xs []float64, max float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	n := 0
	for _, x := range xs {
		if x > max {
			n++
		}
	}
	return 1e6 * float64(n) / float64(len(xs))
}

// PPMBelow returns the parts per million of xs strictly below min.
func PPMBelow(xs []float64, min float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	n := 0
	for _, x := range xs {
		if x < min {
			n++
		}
	}
	return 1e6 * float64(n) / float64(len(xs))
}

// Report summarizes simulation outputs against optional specification
// limits. PPM fields are NaN when the corresponding limit is absent.
type Report struct {
	Mean     float64
	StdDev   float64
	PPMBelow float64
	PPMAbove float64
}

// Describe builds a Report from running statistics and the raw
// outputs. Pass NaN for a limit that does not apply.
func Describe(s stats.Snapshot, outputs []float64, lsl, usl float64) Report {
	r := Report{
		Mean:     s.Mean,
		StdDev:   s.StdDev,
		PPMBelow: math.NaN(),
		PPMAbove: math.NaN(),
	}
	if !math.IsNaN(lsl) {
		r.PPMBelow = PPMBelow(outputs, lsl)
	}
	if !math.IsNaN(usl) {
		r.PPMAbove = PPMAbove(outputs, usl)
	}
	return r
}
