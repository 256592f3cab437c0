// Package telemetry records timed operations and derives statistics,
// snapshots, benchmark evaluations, and regression alerts from them.
//
// The engine is a bounded in-memory bookkeeping layer: instrumented callers
// feed it (name, duration, category, metadata) observations, and everything
// else - per-name statistics, point-in-time snapshots, regression detection
// between successive snapshots - is derived on demand. Nothing persists
// across process restarts; export a report if you need durability.
//
// # Recording
//
// Durations arrive in milliseconds, measured by the caller or by the
// measurement helpers:
//
//	engine := telemetry.New()
//
//	// Direct ingestion of an already-measured duration.
//	engine.Record("form-generation", 123.4, telemetry.CategoryGeneration, nil)
//
//	// Wrapping a unit of work. The record always happens, and a failure is
//	// tagged with error=true before the error is returned unchanged.
//	err := engine.Measure("contract-detection", telemetry.CategoryGeneration, func() error {
//	    return detect(src)
//	}, nil)
//
// # Snapshots and regressions
//
// Snapshots are taken only on request; the caller decides the cadence:
//
//	engine.CreateSnapshot()
//	// ... more work, typically after an engine.Clear() per window ...
//	engine.CreateSnapshot()
//
//	for _, alert := range engine.DetectRegressions() {
//	    fmt.Printf("%s slowed by %.0f%%\n", alert.MetricName, alert.PercentageChange*100)
//	}
//
// # Statistics
//
// CalculateStats sorts the matching durations and reads exact nearest-rank
// percentiles from them. LiveStats serves approximate engine-wide
// percentiles from an HDR histogram without touching the metric log.
package telemetry
