package stats

import "testing"

func TestHistogramInvalidEdges(t *testing.T) {
	tests := []struct {
		name  string
		edges []float64
	}{
		{"empty", nil},
		{"single edge", []float64{1}},
		{"non-increasing", []float64{0, 1, 1, 2}},
		{"decreasing", []float64{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewHistogram(tt.edges); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestHistogramBinning(t *testing.T) {
	h, err := NewHistogram([]float64{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("NewHistogram: %v", err)
	}

	h.AddAll([]float64{0, 0.5, 1.0, 1.5, 2.0, 2.5, 3.0})

	counts := h.Counts()
	want := []int64{2, 2, 3}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("bin %d: expected %d, got %d", i, want[i], counts[i])
		}
	}
}

func TestHistogramClampsOutliers(t *testing.T) {
	h, err := NewHistogram([]float64{0, 1, 2})
	if err != nil {
		t.Fatalf("NewHistogram: %v", err)
	}

	h.Add(-100)
	h.Add(100)

	counts := h.Counts()
	if counts[0] != 1 || counts[1] != 1 {
		t.Errorf("expected outliers clamped into edge bins, got %v", counts)
	}
}

func TestHistogramTotalConservation(t *testing.T) {
	h, err := NewAutoHistogram(10, -5, 5)
	if err != nil {
		t.Fatalf("NewAutoHistogram: %v", err)
	}

	n := 0
	for x := -7.0; x < 7.0; x += 0.1 {
		h.Add(x)
		n++
	}

	if h.Total() != int64(n) {
		t.Fatalf("expected total %d, got %d", n, h.Total())
	}
	var sum int64
	for _, c := range h.Counts() {
		sum += c
	}
	if sum != int64(n) {
		t.Errorf("bin counts sum to %d, expected %d", sum, n)
	}
}

func TestAutoHistogramDegenerateRange(t *testing.T) {
	h, err := NewAutoHistogram(5, 2.0, 2.0)
	if err != nil {
		t.Fatalf("NewAutoHistogram: %v", err)
	}
	h.Add(2.0)
	if h.Total() != 1 {
		t.Errorf("expected constant value to land in a bin")
	}
}

func TestHistogramMerge(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	a, _ := NewHistogram(edges)
	b, _ := NewHistogram(edges)

	a.AddAll([]float64{0.5, 1.5})
	b.AddAll([]float64{1.5, 2.5, 2.5})

	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if a.Total() != 5 {
		t.Errorf("expected total 5 after merge, got %d", a.Total())
	}
	counts := a.Counts()
	want := []int64{1, 2, 2}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("bin %d: expected %d, got %d", i, want[i], counts[i])
		}
	}

	c, _ := NewHistogram([]float64{0, 5, 10})
	if err := a.Merge(c); err == nil {
		t.Error("expected error merging histograms with different edges")
	}
}
