package telemetry

import "testing"

func TestComputeStats_Empty(t *testing.T) {
	if got := ComputeStats(nil); got != nil {
		t.Errorf("ComputeStats(nil) = %+v, want nil", got)
	}
	if got := ComputeStats([]float64{}); got != nil {
		t.Errorf("ComputeStats(empty) = %+v, want nil", got)
	}
}

func TestComputeStats_SingleValue(t *testing.T) {
	stats := ComputeStats([]float64{42})
	if stats == nil {
		t.Fatal("ComputeStats returned nil for one value")
	}

	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1", stats.Count)
	}
	for name, got := range map[string]float64{
		"Average": stats.Average,
		"Min":     stats.Min,
		"Max":     stats.Max,
		"P50":     stats.P50,
		"P95":     stats.P95,
		"P99":     stats.P99,
	} {
		if got != 42 {
			t.Errorf("%s = %v, want 42", name, got)
		}
	}
}

func TestComputeStats_KnownDistribution(t *testing.T) {
	// 1..100 in shuffled-ish order; sorting is the calculator's job.
	durations := make([]float64, 0, 100)
	for i := 100; i >= 1; i-- {
		durations = append(durations, float64(i))
	}

	stats := ComputeStats(durations)
	if stats == nil {
		t.Fatal("ComputeStats returned nil")
	}

	if stats.Count != 100 {
		t.Errorf("Count = %d, want 100", stats.Count)
	}
	if stats.Average != 50.5 {
		t.Errorf("Average = %v, want 50.5", stats.Average)
	}
	if stats.Min != 1 {
		t.Errorf("Min = %v, want 1", stats.Min)
	}
	if stats.Max != 100 {
		t.Errorf("Max = %v, want 100", stats.Max)
	}

	// Nearest-rank: index ceil(p/100*100)-1 selects an existing element.
	if stats.P50 != 50 {
		t.Errorf("P50 = %v, want 50", stats.P50)
	}
	if stats.P95 != 95 {
		t.Errorf("P95 = %v, want 95", stats.P95)
	}
	if stats.P99 != 99 {
		t.Errorf("P99 = %v, want 99", stats.P99)
	}
}

func TestComputeStats_PercentileOrdering(t *testing.T) {
	cases := [][]float64{
		{5},
		{3, 1},
		{10, 20, 30},
		{7, 7, 7, 7},
		{0.5, 100, 2.25, 9, 9, 64, 31.5},
	}

	for _, durations := range cases {
		stats := ComputeStats(durations)
		if stats == nil {
			t.Fatalf("ComputeStats(%v) returned nil", durations)
		}

		if stats.Count != len(durations) {
			t.Errorf("Count = %d, want %d", stats.Count, len(durations))
		}
		if !(stats.Min <= stats.P50 && stats.P50 <= stats.P95 && stats.P95 <= stats.P99 && stats.P99 <= stats.Max) {
			t.Errorf("ordering violated for %v: min=%v p50=%v p95=%v p99=%v max=%v",
				durations, stats.Min, stats.P50, stats.P95, stats.P99, stats.Max)
		}
	}
}

func TestComputeStats_SmallSlicePercentiles(t *testing.T) {
	// For n=2: p50 -> index 0, p95/p99 -> index 1.
	stats := ComputeStats([]float64{10, 20})
	if stats.P50 != 10 {
		t.Errorf("P50 = %v, want 10", stats.P50)
	}
	if stats.P95 != 20 {
		t.Errorf("P95 = %v, want 20", stats.P95)
	}
	if stats.P99 != 20 {
		t.Errorf("P99 = %v, want 20", stats.P99)
	}
}

func TestPercentile_IndexClamping(t *testing.T) {
	// A tiny percentile must clamp to the first element, not index -1.
	sorted := []float64{1, 2, 3}
	if got := percentile(sorted, 0.1); got != 1 {
		t.Errorf("percentile(0.1) = %v, want 1", got)
	}
	if got := percentile(sorted, 100); got != 3 {
		t.Errorf("percentile(100) = %v, want 3", got)
	}
}
