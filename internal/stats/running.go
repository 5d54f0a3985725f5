package stats

import "math"

// Running holds sufficient statistics for mean and variance, updated
// one observation at a time with Welford's algorithm. The zero value
// is ready to use.
type Running struct {
	count int64
	mean  float64
	m2    float64
}

func (r *Running) Push(x float64) {
	r.count++
	delta := x - r.mean
	r.mean += delta / float64(r.count)
	r.m2 += delta * (x - r.mean)
}

func (r *Running) PushAll(xs []float64) {
	for _, x := range xs {
		r.Push(x)
	}
}

func (r *Running) Count() int64 { return r.count }

func (r *Running) Mean() float64 {
	if r.count == 0 {
		return math.NaN()
	}
	return r.mean
}

// Variance returns the sample variance (Bessel-corrected). Undefined
// below two observations, reported as NaN.
func (r *Running) Variance() float64 {
	if r.count < 2 {
		return math.NaN()
	}
	return r.m2 / float64(r.count-1)
}

func (r *Running) StdDev() float64 {
	return math.Sqrt(r.Variance())
}

// StdErr returns the standard error of the mean, sqrt(variance/count).
func (r *Running) StdErr() float64 {
	if r.count < 2 {
		return math.NaN()
	}
	return math.Sqrt(r.Variance() / float64(r.count))
}

// Merge folds other into r using the parallel combine rule, so that two
// accumulators built from disjoint streams equal one accumulator built
// from the concatenation.
func (r *Running) Merge(other Running) {
	if other.count == 0 {
		return
	}
	if r.count == 0 {
		*r = other
		return
	}
	n1 := float64(r.count)
	n2 := float64(other.count)
	n := n1 + n2
	delta := other.mean - r.mean
	r.mean += delta * n2 / n
	r.m2 += other.m2 + delta*delta*n1*n2/n
	r.count += other.count
}

// Snapshot is an immutable copy of the accumulated moments in plain
// numeric form.
type Snapshot struct {
	Count    int64
	Mean     float64
	Variance float64
	StdDev   float64
	StdErr   float64
}

// Restore rebuilds an accumulator from a snapshot so partial results
// can be merged after the fact.
func Restore(s Snapshot) Running {
	if s.Count == 0 {
		return Running{}
	}
	r := Running{count: s.Count, mean: s.Mean}
	if s.Count >= 2 {
		r.m2 = s.Variance * float64(s.Count-1)
	}
	return r
}

func (r *Running) Snapshot() Snapshot {
	return Snapshot{
		Count:    r.count,
		Mean:     r.Mean(),
		Variance: r.Variance(),
		StdDev:   r.StdDev(),
		StdErr:   r.StdErr(),
	}
}
