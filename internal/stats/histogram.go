package stats

import (
	"fmt"
	"sort"
)

// Histogram accumulates counts over a fixed set of bin edges.
// Observations below the first edge or above the last are clamped into
// the outermost bins so total mass is conserved.
type Histogram struct {
	edges  []float64
	counts []int64
	total  int64
}

// NewHistogram builds a histogram over explicit edges. len(edges) must
// be at least 2 and edges must be strictly increasing.
func NewHistogram(edges []float64) (*Histogram, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("histogram needs at least 2 edges, got %d", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("histogram edges must be strictly increasing at index %d", i)
		}
	}
	h := &Histogram{
		edges:  make([]float64, len(edges)),
		counts: make([]int64, len(edges)-1),
	}
	copy(h.edges, edges)
	return h, nil
}

// NewAutoHistogram builds bins equal-width bins spanning [min, max].
func NewAutoHistogram(bins int, min, max float64) (*Histogram, error) {
	if bins < 1 {
		return nil, fmt.Errorf("histogram needs at least 1 bin, got %d", bins)
	}
	if max <= min {
		// Degenerate range, e.g. constant outputs. Widen so the
		// single value lands in a real bin.
		max = min + 1
	}
	edges := make([]float64, bins+1)
	width := (max - min) / float64(bins)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max
	return NewHistogram(edges)
}

// Add counts x into its bin. Bins are left-closed [lo, hi) except the
// last, which also includes the final edge.
func (h *Histogram) Add(x float64) {
	idx := sort.SearchFloat64s(h.edges, x)
	var bin int
	switch {
	case idx == 0:
		bin = 0
	case idx == len(h.edges):
		bin = len(h.counts) - 1
	case h.edges[idx] == x:
		bin = idx
		if bin >= len(h.counts) {
			bin = len(h.counts) - 1
		}
	default:
		bin = idx - 1
	}
	h.counts[bin]++
	h.total++
}

func (h *Histogram) AddAll(xs []float64) {
	for _, x := range xs {
		h.Add(x)
	}
}

func (h *Histogram) Edges() []float64 {
	out := make([]float64, len(h.edges))
	copy(out, h.edges)
	return out
}

func (h *Histogram) Counts() []int64 {
	out := make([]int64, len(h.counts))
	copy(out, h.counts)
	return out
}

func (h *Histogram) Total() int64 { return h.total }

// Bin is one (lower edge, upper edge, count) triple.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int64
}

// Bins exports the histogram as plain numeric rows for reporting.
func (h *Histogram) Bins() []Bin {
	out := make([]Bin, len(h.counts))
	for i, c := range h.counts {
		out[i] = Bin{Lo: h.edges[i], Hi: h.edges[i+1], Count: c}
	}
	return out
}

// Merge adds the counts of other into h. Both histograms must share
// identical edges.
func (h *Histogram) Merge(other *Histogram) error {
	if other == nil {
		return nil
	}
	if len(h.edges) != len(other.edges) {
		return fmt.Errorf("cannot merge histograms with %d and %d edges", len(h.edges), len(other.edges))
	}
	for i := range h.edges {
		if h.edges[i] != other.edges[i] {
			return fmt.Errorf("cannot merge histograms with different edges at index %d", i)
		}
	}
	for i := range h.counts {
		h.counts[i] += other.counts[i]
	}
	h.total += other.total
	return nil
}
