package telemetry

// BenchmarkStatus classifies a measured duration against a benchmark.
type BenchmarkStatus string

const (
	// StatusOK means the duration stayed at or under the warning threshold.
	StatusOK BenchmarkStatus = "ok"

	// StatusWarning means the duration exceeded the warning threshold.
	StatusWarning BenchmarkStatus = "warning"

	// StatusCritical means the duration exceeded the critical threshold.
	StatusCritical BenchmarkStatus = "critical"
)

// Benchmark is a named three-tier threshold policy for one operation.
//
// The engine does not enforce TargetMs <= WarningMs <= CriticalMs. Callers
// own that ordering; Check stays deterministic even when it is violated.
type Benchmark struct {
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	TargetMs   float64  `json:"targetMs"`
	WarningMs  float64  `json:"warningThresholdMs"`
	CriticalMs float64  `json:"criticalThresholdMs"`
}

// BenchmarkResult is the outcome of checking one duration against the
// registry. Passed is true exactly when Status is StatusOK.
type BenchmarkResult struct {
	Passed bool            `json:"passed"`
	Status BenchmarkStatus `json:"status"`
}

// Check evaluates a measured duration against b's thresholds. Values equal
// to a threshold do not cross it.
func (b Benchmark) Check(durationMs float64) BenchmarkResult {
	status := StatusOK
	switch {
	case durationMs > b.CriticalMs:
		status = StatusCritical
	case durationMs > b.WarningMs:
		status = StatusWarning
	}
	return BenchmarkResult{Passed: status == StatusOK, Status: status}
}

// DefaultBenchmarks returns the stock thresholds installed by New. The slice
// is freshly allocated on every call so engine instances never share
// benchmark state.
func DefaultBenchmarks() []Benchmark {
	return []Benchmark{
		{Name: "contract-detection", Category: CategoryGeneration, TargetMs: 50, WarningMs: 150, CriticalMs: 400},
		{Name: "form-generation", Category: CategoryGeneration, TargetMs: 100, WarningMs: 200, CriticalMs: 500},
		{Name: "ui-render", Category: CategoryRender, TargetMs: 200, WarningMs: 500, CriticalMs: 1000},
		{Name: "state-update", Category: CategoryUpdate, TargetMs: 100, WarningMs: 300, CriticalMs: 600},
		{Name: "contract-deployment", Category: CategoryNetwork, TargetMs: 1000, WarningMs: 3000, CriticalMs: 8000},
		{Name: "network-request", Category: CategoryNetwork, TargetMs: 500, WarningMs: 1500, CriticalMs: 4000},
	}
}
