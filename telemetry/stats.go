package telemetry

import (
	"math"
	"sort"
)

// Stats summarizes the distribution of one operation's recorded durations.
// All values are in milliseconds.
type Stats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	P50     float64 `json:"p50"`
	P95     float64 `json:"p95"`
	P99     float64 `json:"p99"`
}

// ComputeStats derives Stats from an unsorted set of durations. It returns
// nil when durations is empty; absence of data is not an error.
//
// Percentiles use the nearest-rank method over the ascending-sorted values,
// so min <= p50 <= p95 <= p99 <= max holds by construction.
func ComputeStats(durations []float64) *Stats {
	n := len(durations)
	if n == 0 {
		return nil
	}

	sorted := make([]float64, n)
	copy(sorted, durations)
	sort.Float64s(sorted)

	var total float64
	for _, d := range sorted {
		total += d
	}

	return &Stats{
		Count:   n,
		Average: total / float64(n),
		Min:     sorted[0],
		Max:     sorted[n-1],
		P50:     percentile(sorted, 50),
		P95:     percentile(sorted, 95),
		P99:     percentile(sorted, 99),
	}
}

// percentile selects the nearest-rank percentile from an ascending-sorted
// slice. The rank index max(0, ceil(p/100*n)-1) always lands on an existing
// element; values are never interpolated.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
