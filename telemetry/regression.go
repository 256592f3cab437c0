package telemetry

import "sort"

// RegressionAlert flags a significant average-duration increase between the
// two most recent snapshots for one operation name. Alerts are derived fresh
// on every detection call and never stored by the engine.
type RegressionAlert struct {
	MetricName       string          `json:"metricName"`
	PreviousAverage  float64         `json:"previousAverage"`
	CurrentAverage   float64         `json:"currentAverage"`
	PercentageChange float64         `json:"percentageChange"`
	Severity         BenchmarkStatus `json:"severity"`
}

// detectRegressions compares the newest snapshot's per-name averages against
// the previous snapshot's. Only increases above threshold are reported;
// decreases never alert, and names absent from the previous snapshot are
// skipped because a first appearance cannot regress. Names are visited in
// sorted order so the alert list is deterministic.
func detectRegressions(current, previous *Snapshot, threshold float64, benchmarks map[string]Benchmark) []RegressionAlert {
	names := make([]string, 0, len(current.Averages))
	for name := range current.Averages {
		names = append(names, name)
	}
	sort.Strings(names)

	alerts := make([]RegressionAlert, 0)
	for _, name := range names {
		currentAvg := current.Averages[name]
		previousAvg, ok := previous.Averages[name]
		if !ok {
			continue
		}

		change := (currentAvg - previousAvg) / previousAvg
		if change > threshold {
			severity := StatusWarning
			if b, ok := benchmarks[name]; ok && currentAvg > b.CriticalMs {
				severity = StatusCritical
			}

			alerts = append(alerts, RegressionAlert{
				MetricName:       name,
				PreviousAverage:  previousAvg,
				CurrentAverage:   currentAvg,
				PercentageChange: change,
				Severity:         severity,
			})
		}
	}

	return alerts
}
