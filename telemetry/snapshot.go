package telemetry

import (
	"sort"
	"time"
)

// slowestOperationCount caps the slowest-operations list in a snapshot.
const slowestOperationCount = 10

// PercentileSet holds the percentile trio tracked per operation name.
type PercentileSet struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// Snapshot is an immutable aggregate view of the metric log at capture time.
//
// Metrics is a copy, not a reference: trimming or clearing the live log
// after a snapshot is taken never retroactively alters it.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// Metrics is the full metric list at capture time, oldest first.
	Metrics []Metric `json:"metrics"`

	// Averages maps each operation name present at capture time to its
	// average duration in milliseconds.
	Averages map[string]float64 `json:"averages"`

	// Percentiles maps each operation name to its p50/p95/p99 durations.
	Percentiles map[string]PercentileSet `json:"percentiles"`

	// SlowestOperations holds the ten highest-duration metrics, descending.
	// Ties keep their original insertion order.
	SlowestOperations []Metric `json:"slowestOperations"`
}

// buildSnapshot aggregates an already-copied metric list into a Snapshot.
func buildSnapshot(metrics []Metric, now time.Time) *Snapshot {
	durationsByName := make(map[string][]float64)
	for _, m := range metrics {
		durationsByName[m.Name] = append(durationsByName[m.Name], m.DurationMs)
	}

	averages := make(map[string]float64, len(durationsByName))
	percentiles := make(map[string]PercentileSet, len(durationsByName))
	for name, durations := range durationsByName {
		stats := ComputeStats(durations)
		averages[name] = stats.Average
		percentiles[name] = PercentileSet{P50: stats.P50, P95: stats.P95, P99: stats.P99}
	}

	slowest := make([]Metric, len(metrics))
	copy(slowest, metrics)
	sort.SliceStable(slowest, func(i, j int) bool {
		return slowest[i].DurationMs > slowest[j].DurationMs
	})
	if len(slowest) > slowestOperationCount {
		slowest = slowest[:slowestOperationCount]
	}

	return &Snapshot{
		Timestamp:         now,
		Metrics:           metrics,
		Averages:          averages,
		Percentiles:       percentiles,
		SlowestOperations: slowest,
	}
}

// snapshotLog is a fixed-capacity ring buffer over snapshot history, oldest
// evicted first. Callers hold the engine lock.
type snapshotLog struct {
	entries []*Snapshot
	head    int // next write position
	count   int
	max     int
}

func newSnapshotLog(max int) *snapshotLog {
	if max <= 0 {
		max = defaultMaxSnapshots
	}
	return &snapshotLog{
		entries: make([]*Snapshot, max),
		max:     max,
	}
}

func (l *snapshotLog) append(s *Snapshot) {
	l.entries[l.head] = s
	l.head = (l.head + 1) % l.max
	if l.count < l.max {
		l.count++
	}
}

// all returns retained snapshots in chronological order.
func (l *snapshotLog) all() []*Snapshot {
	result := make([]*Snapshot, l.count)

	if l.count < l.max {
		copy(result, l.entries[:l.count])
	} else {
		for i := 0; i < l.count; i++ {
			result[i] = l.entries[(l.head+i)%l.max]
		}
	}

	return result
}

// recent returns up to n of the newest snapshots in chronological order.
func (l *snapshotLog) recent(n int) []*Snapshot {
	if n > l.count {
		n = l.count
	}
	if n == 0 {
		return nil
	}

	result := make([]*Snapshot, n)
	for i := 0; i < n; i++ {
		// head-1 is the newest entry, head-2 the one before it.
		idx := (l.head - 1 - i + l.max) % l.max
		result[n-1-i] = l.entries[idx]
	}

	return result
}

func (l *snapshotLog) len() int {
	return l.count
}

func (l *snapshotLog) clear() {
	l.entries = make([]*Snapshot, l.max)
	l.head = 0
	l.count = 0
}
