package telemetry

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap"
)

// Defaults applied by DefaultConfig and NewWithConfig.
const (
	defaultMaxMetrics          = 10000
	defaultMaxSnapshots        = 100
	defaultRegressionThreshold = 0.15
)

// Live histogram tuning: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMinMicros = 1
	histogramMaxMicros = 3600000000
	histogramSigFigs   = 3
)

// Config contains construction-time settings for an Engine. Zero-valued
// fields fall back to their defaults.
type Config struct {
	// MaxMetrics bounds the in-memory metric log (default 10000). Once the
	// bound is reached, each new observation evicts the oldest one.
	MaxMetrics int

	// MaxSnapshots bounds the retained snapshot history (default 100).
	MaxSnapshots int

	// RegressionThreshold is the fractional average-duration increase above
	// which DetectRegressions reports (default 0.15).
	RegressionThreshold float64

	// Benchmarks seeds the registry. Defaults to DefaultBenchmarks().
	Benchmarks []Benchmark

	// StrictDurations drops negative and non-finite durations at Record
	// time instead of storing them as supplied. Off by default: permissive
	// ingestion is the documented contract, and rejection is opt-in.
	StrictDurations bool

	// Logger receives debug-level engine events. Defaults to a nop logger.
	Logger *zap.Logger
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxMetrics:          defaultMaxMetrics,
		MaxSnapshots:        defaultMaxSnapshots,
		RegressionThreshold: defaultRegressionThreshold,
		Benchmarks:          DefaultBenchmarks(),
	}
}

// Engine records timed observations and derives statistics, snapshots,
// benchmark evaluations, and regression alerts from them. Everything is held
// in memory; nothing persists across process restarts.
//
// Engine is safe for concurrent use: one RWMutex guards the metric log, the
// snapshot history, the benchmark registry, and the live histogram.
type Engine struct {
	mu sync.RWMutex

	metrics    *metricLog
	snapshots  *snapshotLog
	benchmarks map[string]Benchmark

	regressionThreshold float64
	strictDurations     bool

	// Engine-wide duration distribution, independent of snapshots. Serves
	// approximate live percentiles; exact per-name statistics go through
	// CalculateStats.
	liveHist *hdrhistogram.Histogram

	logger *zap.Logger
}

// New creates an engine with DefaultConfig.
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an engine with custom settings.
func NewWithConfig(cfg Config) *Engine {
	if cfg.MaxMetrics <= 0 {
		cfg.MaxMetrics = defaultMaxMetrics
	}
	if cfg.MaxSnapshots <= 0 {
		cfg.MaxSnapshots = defaultMaxSnapshots
	}
	if cfg.RegressionThreshold == 0 {
		cfg.RegressionThreshold = defaultRegressionThreshold
	}
	if cfg.Benchmarks == nil {
		cfg.Benchmarks = DefaultBenchmarks()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	benchmarks := make(map[string]Benchmark, len(cfg.Benchmarks))
	for _, b := range cfg.Benchmarks {
		benchmarks[b.Name] = b
	}

	return &Engine{
		metrics:             newMetricLog(cfg.MaxMetrics),
		snapshots:           newSnapshotLog(cfg.MaxSnapshots),
		benchmarks:          benchmarks,
		regressionThreshold: cfg.RegressionThreshold,
		strictDurations:     cfg.StrictDurations,
		liveHist:            hdrhistogram.New(histogramMinMicros, histogramMaxMicros, histogramSigFigs),
		logger:              cfg.Logger,
	}
}

// Record appends one observation stamped with the current time. The caller's
// metadata map is shallow-copied so later mutation of it cannot reach the
// stored metric.
//
// In the default permissive mode the duration is stored exactly as supplied,
// negative or non-finite included. With Config.StrictDurations set, such
// values are dropped and logged instead.
func (e *Engine) Record(name string, durationMs float64, category Category, metadata map[string]any) {
	e.record(name, durationMs, category, copyMetadata(metadata))
}

// record stores an observation whose metadata map is already owned by the
// engine.
func (e *Engine) record(name string, durationMs float64, category Category, metadata map[string]any) {
	if e.strictDurations && !validDuration(durationMs) {
		e.logger.Warn("dropping invalid duration",
			zap.String("metric", name),
			zap.Float64("durationMs", durationMs))
		return
	}

	m := Metric{
		Name:       name,
		DurationMs: durationMs,
		Timestamp:  time.Now(),
		Category:   category,
		Metadata:   metadata,
	}

	e.mu.Lock()
	e.metrics.append(m)
	e.recordLive(durationMs)
	e.mu.Unlock()
}

// validDuration reports whether d is finite and non-negative.
func validDuration(d float64) bool {
	return d >= 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

// copyMetadata shallow-copies a caller-supplied metadata map. Nil stays nil.
func copyMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	copied := make(map[string]any, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return copied
}

// recordLive feeds the engine-wide histogram. Non-finite values cannot be
// represented and are skipped; everything else is clamped to the recordable
// range. Caller holds the write lock.
func (e *Engine) recordLive(durationMs float64) {
	if math.IsNaN(durationMs) || math.IsInf(durationMs, 0) {
		return
	}

	micros := int64(durationMs * 1000)
	if micros < histogramMinMicros {
		micros = histogramMinMicros
	}
	if micros > histogramMaxMicros {
		micros = histogramMaxMicros
	}
	_ = e.liveHist.RecordValue(micros)
}

// CalculateStats derives distribution statistics for one operation name.
// It returns nil when nothing has been recorded under that name.
func (e *Engine) CalculateStats(name string) *Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ComputeStats(e.metrics.durationsByName(name))
}

// CheckBenchmark evaluates a single duration against the benchmark
// registered under name. Unknown names always pass: operations without a
// policy are never flagged.
func (e *Engine) CheckBenchmark(name string, durationMs float64) BenchmarkResult {
	e.mu.RLock()
	b, ok := e.benchmarks[name]
	e.mu.RUnlock()

	if !ok {
		return BenchmarkResult{Passed: true, Status: StatusOK}
	}
	return b.Check(durationMs)
}

// RegisterBenchmark inserts or overwrites the registry entry for b.Name.
func (e *Engine) RegisterBenchmark(b Benchmark) {
	e.mu.Lock()
	e.benchmarks[b.Name] = b
	e.mu.Unlock()
}

// Benchmarks returns the registered benchmarks sorted by name.
func (e *Engine) Benchmarks() []Benchmark {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]Benchmark, 0, len(e.benchmarks))
	for _, b := range e.benchmarks {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// SetRegressionThreshold replaces the fractional increase above which
// DetectRegressions reports. No validation is applied.
func (e *Engine) SetRegressionThreshold(threshold float64) {
	e.mu.Lock()
	e.regressionThreshold = threshold
	e.mu.Unlock()
}

// RegressionThreshold returns the current detection threshold.
func (e *Engine) RegressionThreshold() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.regressionThreshold
}

// CreateSnapshot materializes the current metric log into an immutable
// aggregate and appends it to the bounded history. Snapshots are produced
// only by this call; the engine has no background cadence.
func (e *Engine) CreateSnapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := buildSnapshot(e.metrics.all(), time.Now())
	e.snapshots.append(snap)

	e.logger.Debug("snapshot created",
		zap.Int("metrics", len(snap.Metrics)),
		zap.Int("retained", e.snapshots.len()))

	return snap
}

// DetectRegressions compares the two most recent snapshots and reports
// operations whose average duration grew by more than the regression
// threshold. Fewer than two retained snapshots is a normal cold-start state
// and yields an empty list, not an error.
func (e *Engine) DetectRegressions() []RegressionAlert {
	e.mu.RLock()
	defer e.mu.RUnlock()

	recent := e.snapshots.recent(2)
	if len(recent) < 2 {
		return []RegressionAlert{}
	}

	alerts := detectRegressions(recent[1], recent[0], e.regressionThreshold, e.benchmarks)
	if len(alerts) > 0 {
		e.logger.Debug("regressions detected", zap.Int("count", len(alerts)))
	}

	return alerts
}

// Metrics returns a copy of the retained metric log, oldest first.
func (e *Engine) Metrics() []Metric {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics.all()
}

// MetricsByName returns retained metrics recorded under name, oldest first.
func (e *Engine) MetricsByName(name string) []Metric {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics.byName(name)
}

// MetricsByCategory returns retained metrics in the given category, oldest
// first.
func (e *Engine) MetricsByCategory(category Category) []Metric {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics.byCategory(category)
}

// MetricCount returns the number of retained metrics.
func (e *Engine) MetricCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics.len()
}

// Snapshots returns the retained snapshot history in chronological order.
func (e *Engine) Snapshots() []*Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshots.all()
}

// SnapshotCount returns the number of retained snapshots.
func (e *Engine) SnapshotCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshots.len()
}

// LiveStats is the engine-wide duration distribution accumulated across
// every recorded observation. Values are approximate (HDR histogram at 3
// significant figures) and in milliseconds.
type LiveStats struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P90   float64 `json:"p90"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Max   float64 `json:"max"`
}

// LiveStats returns approximate engine-wide duration statistics without
// taking a snapshot.
func (e *Engine) LiveStats() LiveStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return LiveStats{
		Count: e.liveHist.TotalCount(),
		Mean:  e.liveHist.Mean() / 1000,
		P50:   float64(e.liveHist.ValueAtQuantile(50)) / 1000,
		P90:   float64(e.liveHist.ValueAtQuantile(90)) / 1000,
		P95:   float64(e.liveHist.ValueAtQuantile(95)) / 1000,
		P99:   float64(e.liveHist.ValueAtQuantile(99)) / 1000,
		Max:   float64(e.liveHist.Max()) / 1000,
	}
}

// Clear discards every retained metric. Snapshot history, benchmarks, and
// the live histogram survive, so a cleared engine can still detect
// regressions across previously captured windows.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.metrics.clear()
	e.mu.Unlock()
}

// Reset restores the engine to its post-construction state: metrics,
// snapshot history, and the live histogram are all discarded. The benchmark
// registry and regression threshold are kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.metrics.clear()
	e.snapshots.clear()
	e.liveHist.Reset()
	e.mu.Unlock()
}
