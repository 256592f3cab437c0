package telemetry

import (
	"math"
	"testing"
)

// recordWindow records count observations of name at durationMs, snapshots,
// and clears the log so the next window starts fresh.
func recordWindow(e *Engine, name string, durationMs float64, count int) {
	for i := 0; i < count; i++ {
		e.Record(name, durationMs, CategoryGeneration, nil)
	}
	e.CreateSnapshot()
	e.Clear()
}

func TestEngine_DetectRegressionsColdStart(t *testing.T) {
	engine := New()

	if got := engine.DetectRegressions(); len(got) != 0 {
		t.Errorf("alerts with no snapshots = %v, want empty", got)
	}

	engine.Record("op", 100, CategoryUpdate, nil)
	engine.CreateSnapshot()

	if got := engine.DetectRegressions(); len(got) != 0 {
		t.Errorf("alerts with one snapshot = %v, want empty", got)
	}
}

func TestEngine_DetectRegressionsFlagsIncrease(t *testing.T) {
	engine := New()

	recordWindow(engine, "form-generation", 100, 10)
	recordWindow(engine, "form-generation", 180, 10)

	alerts := engine.DetectRegressions()
	if len(alerts) != 1 {
		t.Fatalf("len(alerts) = %d, want 1", len(alerts))
	}

	alert := alerts[0]
	if alert.MetricName != "form-generation" {
		t.Errorf("MetricName = %q, want form-generation", alert.MetricName)
	}
	if alert.PreviousAverage != 100 {
		t.Errorf("PreviousAverage = %v, want 100", alert.PreviousAverage)
	}
	if alert.CurrentAverage != 180 {
		t.Errorf("CurrentAverage = %v, want 180", alert.CurrentAverage)
	}
	if math.Abs(alert.PercentageChange-0.8) > 1e-9 {
		t.Errorf("PercentageChange = %v, want 0.8", alert.PercentageChange)
	}
}

func TestEngine_DetectRegressionsBelowThreshold(t *testing.T) {
	engine := New()

	// A 5% increase stays under the default 15% threshold.
	recordWindow(engine, "form-generation", 100, 10)
	recordWindow(engine, "form-generation", 105, 10)

	if alerts := engine.DetectRegressions(); len(alerts) != 0 {
		t.Errorf("alerts = %v, want empty", alerts)
	}
}

func TestEngine_DetectRegressionsIgnoresImprovements(t *testing.T) {
	engine := New()

	recordWindow(engine, "op", 500, 5)
	recordWindow(engine, "op", 50, 5)

	// A large decrease never alerts.
	if alerts := engine.DetectRegressions(); len(alerts) != 0 {
		t.Errorf("alerts = %v, want empty", alerts)
	}
}

func TestEngine_DetectRegressionsUnchangedAverages(t *testing.T) {
	engine := New()

	recordWindow(engine, "op", 100, 5)
	recordWindow(engine, "op", 100, 5)

	if alerts := engine.DetectRegressions(); len(alerts) != 0 {
		t.Errorf("alerts = %v, want empty", alerts)
	}
}

func TestEngine_DetectRegressionsSkipsNewMetrics(t *testing.T) {
	engine := New()

	recordWindow(engine, "existing", 100, 5)

	engine.Record("existing", 100, CategoryGeneration, nil)
	engine.Record("brand-new", 99999, CategoryGeneration, nil)
	engine.CreateSnapshot()

	// brand-new has no prior average, so it cannot regress yet.
	if alerts := engine.DetectRegressions(); len(alerts) != 0 {
		t.Errorf("alerts = %v, want empty", alerts)
	}
}

func TestEngine_DetectRegressionsSeverity(t *testing.T) {
	engine := New()
	engine.RegisterBenchmark(Benchmark{Name: "slow-op", CriticalMs: 400})

	// 100 -> 200 doubles the average but stays under critical.
	recordWindow(engine, "slow-op", 100, 5)
	recordWindow(engine, "slow-op", 200, 5)

	alerts := engine.DetectRegressions()
	if len(alerts) != 1 {
		t.Fatalf("len(alerts) = %d, want 1", len(alerts))
	}
	if alerts[0].Severity != StatusWarning {
		t.Errorf("Severity = %q, want %q", alerts[0].Severity, StatusWarning)
	}

	// 200 -> 500 exceeds the registered critical threshold.
	recordWindow(engine, "slow-op", 500, 5)

	alerts = engine.DetectRegressions()
	if len(alerts) != 1 {
		t.Fatalf("len(alerts) = %d, want 1", len(alerts))
	}
	if alerts[0].Severity != StatusCritical {
		t.Errorf("Severity = %q, want %q", alerts[0].Severity, StatusCritical)
	}
}

func TestEngine_DetectRegressionsSeverityWithoutBenchmark(t *testing.T) {
	engine := New()

	recordWindow(engine, "unregistered-op", 1000, 5)
	recordWindow(engine, "unregistered-op", 9000, 5)

	alerts := engine.DetectRegressions()
	if len(alerts) != 1 {
		t.Fatalf("len(alerts) = %d, want 1", len(alerts))
	}
	// Without a benchmark the severity can only be a warning.
	if alerts[0].Severity != StatusWarning {
		t.Errorf("Severity = %q, want %q", alerts[0].Severity, StatusWarning)
	}
}

func TestEngine_SetRegressionThreshold(t *testing.T) {
	engine := New()
	engine.SetRegressionThreshold(0.5)

	// 40% over the previous average stays under the raised threshold.
	recordWindow(engine, "op", 100, 5)
	recordWindow(engine, "op", 140, 5)

	if alerts := engine.DetectRegressions(); len(alerts) != 0 {
		t.Errorf("alerts at threshold 0.5 = %v, want empty", alerts)
	}

	engine.SetRegressionThreshold(0.1)

	if alerts := engine.DetectRegressions(); len(alerts) != 1 {
		t.Errorf("len(alerts) at threshold 0.1 = %d, want 1", len(alerts))
	}
}

func TestEngine_DetectRegressionsSortedByName(t *testing.T) {
	engine := New()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		engine.Record(name, 100, CategoryUpdate, nil)
	}
	engine.CreateSnapshot()
	engine.Clear()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		engine.Record(name, 300, CategoryUpdate, nil)
	}
	engine.CreateSnapshot()

	alerts := engine.DetectRegressions()
	if len(alerts) != 3 {
		t.Fatalf("len(alerts) = %d, want 3", len(alerts))
	}
	for i, want := range []string{"alpha", "mid", "zeta"} {
		if alerts[i].MetricName != want {
			t.Errorf("alerts[%d].MetricName = %q, want %q", i, alerts[i].MetricName, want)
		}
	}
}
