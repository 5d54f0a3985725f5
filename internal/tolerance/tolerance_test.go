package tolerance

import (
	"math"
	"testing"

	"github.com/onsi/gomega"

	"github.com/blokeley/montecarlo/internal/dist"
	"github.com/blokeley/montecarlo/internal/stats"
)

func linspace(from, to float64, n int) []float64 {
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func TestPPMAbove(t *testing.T) {
	// 100 of 1000 equispaced values lie above 900.
	arr := linspace(0, 1000, 1000)
	if got := PPMAbove(arr, 900); got != 100000 {
		t.Errorf("expected 100000 ppm above 900, got %v", got)
	}
}

func TestPPMBelow(t *testing.T) {
	arr := linspace(0, 1000, 1000)
	if got := PPMBelow(arr, 100); got != 100000 {
		t.Errorf("expected 100000 ppm below 100, got %v", got)
	}
}

func TestPPMEmpty(t *testing.T) {
	if got := PPMAbove(nil, 1); got != 0 {
		t.Errorf("expected 0 ppm for empty input, got %v", got)
	}
}

func TestParameterLimits(t *testing.T) {
	p := NewParameter("mass", 20, 2)

	if p.LSL() != 18 {
		t.Errorf("expected LSL 18, got %v", p.LSL())
	}
	if p.USL() != 22 {
		t.Errorf("expected USL 22, got %v", p.USL())
	}
	want := 2.0 / (3 * DefaultCp)
	if math.Abs(p.Std()-want) > 1e-12 {
		t.Errorf("expected std %v, got %v", want, p.Std())
	}
}

func TestParameterVariates(t *testing.T) {
	g := gomega.NewWithT(t)

	p := NewParameter("my parameter", 20, 2)
	spec := p.Spec()
	if spec.Kind != dist.Normal {
		t.Fatalf("expected normal spec, got %v", spec.Kind)
	}

	xs, err := dist.New(42).Sample(spec, 100000)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	var r stats.Running
	r.PushAll(xs)

	g.Expect(r.Mean()).To(gomega.BeNumerically("~", 20.0, 0.01))
	g.Expect(r.StdDev()).To(gomega.BeNumerically("~", 2.0/(3*DefaultCp), 0.01))
}

func TestDescribe(t *testing.T) {
	xs := linspace(0, 1000, 1000)
	var r stats.Running
	r.PushAll(xs)

	report := Describe(r.Snapshot(), xs, 100, 900)

	if report.PPMBelow != 100000 {
		t.Errorf("expected 100000 ppm below, got %v", report.PPMBelow)
	}
	if report.PPMAbove != 100000 {
		t.Errorf("expected 100000 ppm above, got %v", report.PPMAbove)
	}

	noLimits := Describe(r.Snapshot(), xs, math.NaN(), math.NaN())
	if !math.IsNaN(noLimits.PPMBelow) || !math.IsNaN(noLimits.PPMAbove) {
		t.Error("expected NaN ppm when limits are absent")
	}
}
