package dist

import (
	"errors"
	"math"
	"testing"

	"github.com/onsi/gomega"
)

func TestSampleCount(t *testing.T) {
	s := New(1)
	spec := NewSpec(Uniform, map[string]float64{"min": 0, "max": 1})

	for _, n := range []int{1, 7, 1000} {
		xs, err := s.Sample(spec, n)
		if err != nil {
			t.Fatalf("Sample(%d): %v", n, err)
		}
		if len(xs) != n {
			t.Errorf("expected %d samples, got %d", n, len(xs))
		}
	}
}

func TestSampleInvalidCount(t *testing.T) {
	s := New(1)
	spec := NewSpec(Uniform, map[string]float64{"min": 0, "max": 1})

	for _, n := range []int{0, -1, -100} {
		_, err := s.Sample(spec, n)
		if !errors.Is(err, ErrInvalidSampleCount) {
			t.Errorf("Sample(%d): expected ErrInvalidSampleCount, got %v", n, err)
		}
	}
}

func TestSampleInvalidSpec(t *testing.T) {
	s := New(1)
	spec := NewSpec(Normal, map[string]float64{"mean": 0, "std": -1})

	_, err := s.Sample(spec, 100)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestSeededReproducibility(t *testing.T) {
	spec := NewSpec(Normal, map[string]float64{"mean": 0, "std": 1})

	a, err := New(42).Sample(spec, 100)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(42).Sample(spec, 100)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at index %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestReseed(t *testing.T) {
	spec := NewSpec(Uniform, map[string]float64{"min": 0, "max": 1})

	s := New(7)
	first, _ := s.Sample(spec, 10)
	s.Reseed(7)
	second, _ := s.Sample(spec, 10)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("reseed did not reset generator state at index %d", i)
		}
	}
}

func TestUniformBounds(t *testing.T) {
	s := New(3)
	spec := NewSpec(Uniform, map[string]float64{"min": -2, "max": 5})

	xs, err := s.Sample(spec, 10000)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range xs {
		if x < -2 || x >= 5 {
			t.Fatalf("uniform sample %v outside [-2, 5)", x)
		}
	}
}

func TestTriangularBounds(t *testing.T) {
	s := New(4)
	spec := NewSpec(Triangular, map[string]float64{"min": 1, "mode": 2, "max": 4})

	xs, err := s.Sample(spec, 10000)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range xs {
		if x < 1 || x > 4 {
			t.Fatalf("triangular sample %v outside [1, 4]", x)
		}
	}
}

// Empirical moments of large samples should match the analytic moments
// for every supported kind.
func TestEmpiricalMatchesAnalytic(t *testing.T) {
	g := gomega.NewWithT(t)
	s := New(99)

	specs := []Spec{
		NewSpec(Normal, map[string]float64{"mean": 5, "std": 1}),
		NewSpec(Uniform, map[string]float64{"min": 0, "max": 1}),
		NewSpec(LogNormal, map[string]float64{"mu": 0, "sigma": 0.25}),
		NewSpec(Exponential, map[string]float64{"rate": 2}),
		NewSpec(Triangular, map[string]float64{"min": 0, "mode": 1, "max": 2}),
	}

	const n = 200000
	for _, spec := range specs {
		xs, err := s.Sample(spec, n)
		if err != nil {
			t.Fatalf("%s: %v", spec.Kind, err)
		}

		sum := 0.0
		for _, x := range xs {
			sum += x
		}
		mean := sum / n

		sumSq := 0.0
		for _, x := range xs {
			d := x - mean
			sumSq += d * d
		}
		variance := sumSq / (n - 1)

		wantMean, _ := Mean(spec)
		wantVar, _ := Variance(spec)

		tolMean := 5 * math.Sqrt(wantVar/n)
		g.Expect(mean).To(gomega.BeNumerically("~", wantMean, tolMean),
			"%s mean", spec.Kind)
		g.Expect(variance).To(gomega.BeNumerically("~", wantVar, 0.05*wantVar+1e-9),
			"%s variance", spec.Kind)
	}
}
