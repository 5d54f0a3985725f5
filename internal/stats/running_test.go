package stats

import (
	"math"
	"testing"
)

func directMean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func directVariance(xs []float64) float64 {
	m := directMean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs)-1)
}

func TestRunningMatchesDirect(t *testing.T) {
	xs := []float64{2.5, -1.0, 4.75, 0.0, 3.25, -2.5, 1.125, 9.0}

	var r Running
	r.PushAll(xs)

	if r.Count() != int64(len(xs)) {
		t.Fatalf("expected count %d, got %d", len(xs), r.Count())
	}
	if math.Abs(r.Mean()-directMean(xs)) > 1e-12 {
		t.Errorf("mean: expected %v, got %v", directMean(xs), r.Mean())
	}
	if math.Abs(r.Variance()-directVariance(xs)) > 1e-12 {
		t.Errorf("variance: expected %v, got %v", directVariance(xs), r.Variance())
	}
}

func TestRunningIncrementalEqualsBatch(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 100, -50, 0.5}

	var whole Running
	whole.PushAll(xs)

	var parts Running
	parts.PushAll(xs[:4])
	parts.PushAll(xs[4:9])
	parts.PushAll(xs[9:])

	if math.Abs(whole.Mean()-parts.Mean()) > 1e-12 {
		t.Errorf("mean differs: %v vs %v", whole.Mean(), parts.Mean())
	}
	if math.Abs(whole.Variance()-parts.Variance()) > 1e-9 {
		t.Errorf("variance differs: %v vs %v", whole.Variance(), parts.Variance())
	}
}

func TestRunningConstantValues(t *testing.T) {
	var r Running
	for i := 0; i < 1000; i++ {
		r.Push(3.14)
	}
	if r.Variance() > 1e-12 {
		t.Errorf("expected ~0 variance for constant input, got %v", r.Variance())
	}
	if r.Mean() != 3.14 {
		t.Errorf("expected mean 3.14, got %v", r.Mean())
	}
}

func TestRunningUndefinedBelowTwo(t *testing.T) {
	var r Running
	if !math.IsNaN(r.Mean()) {
		t.Errorf("expected NaN mean at count 0, got %v", r.Mean())
	}
	r.Push(1.0)
	if !math.IsNaN(r.Variance()) {
		t.Errorf("expected NaN variance at count 1, got %v", r.Variance())
	}
	if !math.IsNaN(r.StdErr()) {
		t.Errorf("expected NaN std error at count 1, got %v", r.StdErr())
	}
}

func TestRunningStdErr(t *testing.T) {
	var r Running
	r.PushAll([]float64{1, 2, 3, 4, 5})

	want := math.Sqrt(r.Variance() / 5)
	if math.Abs(r.StdErr()-want) > 1e-12 {
		t.Errorf("expected std error %v, got %v", want, r.StdErr())
	}
}

func TestMergeEqualsConcatenation(t *testing.T) {
	a := []float64{1.5, 2.5, 3.5, -4.0, 8.25}
	b := []float64{0.0, -1.25, 7.75, 2.0, 2.0, 11.5}

	var left, right, whole Running
	left.PushAll(a)
	right.PushAll(b)
	whole.PushAll(append(append([]float64{}, a...), b...))

	left.Merge(right)

	if left.Count() != whole.Count() {
		t.Fatalf("expected count %d, got %d", whole.Count(), left.Count())
	}
	if math.Abs(left.Mean()-whole.Mean()) > 1e-12 {
		t.Errorf("mean differs after merge: %v vs %v", left.Mean(), whole.Mean())
	}
	if math.Abs(left.Variance()-whole.Variance()) > 1e-9 {
		t.Errorf("variance differs after merge: %v vs %v", left.Variance(), whole.Variance())
	}
}

func TestMergeEmptySides(t *testing.T) {
	var empty, filled Running
	filled.PushAll([]float64{1, 2, 3})

	snap := filled.Snapshot()

	filled.Merge(empty)
	if filled.Count() != 3 || filled.Mean() != snap.Mean {
		t.Errorf("merging empty changed the accumulator")
	}

	var target Running
	target.Merge(filled)
	if target.Count() != 3 || math.Abs(target.Mean()-snap.Mean) > 1e-12 {
		t.Errorf("merging into empty lost data")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	var r Running
	r.PushAll([]float64{3, 1, 4, 1, 5, 9, 2, 6})

	restored := Restore(r.Snapshot())

	if restored.Count() != r.Count() {
		t.Fatalf("count: expected %d, got %d", r.Count(), restored.Count())
	}
	if math.Abs(restored.Mean()-r.Mean()) > 1e-12 {
		t.Errorf("mean: expected %v, got %v", r.Mean(), restored.Mean())
	}
	if math.Abs(restored.Variance()-r.Variance()) > 1e-9 {
		t.Errorf("variance: expected %v, got %v", r.Variance(), restored.Variance())
	}
}
