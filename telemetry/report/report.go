// Package report turns telemetry snapshots into structured performance
// reports and renders them as JSON, CSV, HTML, or Markdown.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/opspulse/pulse/telemetry"
)

// DefaultTitle is used when Generate is called with an empty title.
const DefaultTitle = "Performance Report"

// Average-duration budgets, in milliseconds, that trigger per-category
// recommendations.
const (
	renderAverageBudgetMs     = 500
	generationAverageBudgetMs = 200
	updateAverageBudgetMs     = 300
)

const noMetricsRecommendation = "No metrics recorded"
const allClearRecommendation = "Performance is within acceptable ranges."

// MetricRef names one observation and its duration, without the rest of the
// metric payload.
type MetricRef struct {
	Name       string  `json:"name"`
	DurationMs float64 `json:"durationMs"`
}

// Summary aggregates every metric captured by the snapshot.
type Summary struct {
	TotalMetrics      int       `json:"totalMetrics"`
	TotalDurationMs   float64   `json:"totalDurationMs"`
	AverageDurationMs float64   `json:"averageDurationMs"`
	SlowestMetric     MetricRef `json:"slowestMetric"`
	FastestMetric     MetricRef `json:"fastestMetric"`
}

// CategoryStats summarizes the durations of one category's metrics.
type CategoryStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	P95     float64 `json:"p95"`
	P99     float64 `json:"p99"`
}

// Report is an immutable synthesis of one snapshot plus the regressions the
// caller chose to include. It is a pure function of its inputs: later engine
// activity never alters an already-generated report.
type Report struct {
	Title             string                               `json:"title"`
	GeneratedAt       time.Time                            `json:"generatedAt"`
	Summary           Summary                              `json:"summary"`
	ByCategory        map[telemetry.Category]CategoryStats `json:"byCategory"`
	SlowestOperations []telemetry.Metric                   `json:"slowestOperations"`
	Regressions       []telemetry.RegressionAlert          `json:"regressions"`
	Recommendations   []string                             `json:"recommendations"`
}

// Generate builds a Report from a snapshot and an optional regression list.
// A nil or metric-less snapshot yields the canonical empty report rather
// than an error. An empty title falls back to DefaultTitle.
func Generate(snapshot *telemetry.Snapshot, regressions []telemetry.RegressionAlert, title string) *Report {
	if title == "" {
		title = DefaultTitle
	}

	// Detach from the caller's slice so the report stays immutable, and
	// normalize nil to empty for the serialized forms.
	alerts := make([]telemetry.RegressionAlert, len(regressions))
	copy(alerts, regressions)

	if snapshot == nil || len(snapshot.Metrics) == 0 {
		return emptyReport(title, alerts)
	}

	metrics := snapshot.Metrics

	var total float64
	slowest, fastest := 0, 0
	for i, m := range metrics {
		total += m.DurationMs
		// Strict comparisons keep the first occurrence on ties.
		if m.DurationMs > metrics[slowest].DurationMs {
			slowest = i
		}
		if m.DurationMs < metrics[fastest].DurationMs {
			fastest = i
		}
	}

	byCategory := categoryStats(metrics)

	slowestOps := make([]telemetry.Metric, len(snapshot.SlowestOperations))
	copy(slowestOps, snapshot.SlowestOperations)

	return &Report{
		Title:       title,
		GeneratedAt: time.Now(),
		Summary: Summary{
			TotalMetrics:      len(metrics),
			TotalDurationMs:   total,
			AverageDurationMs: total / float64(len(metrics)),
			SlowestMetric:     MetricRef{Name: metrics[slowest].Name, DurationMs: metrics[slowest].DurationMs},
			FastestMetric:     MetricRef{Name: metrics[fastest].Name, DurationMs: metrics[fastest].DurationMs},
		},
		ByCategory:        byCategory,
		SlowestOperations: slowestOps,
		Regressions:       alerts,
		Recommendations:   recommendations(byCategory, alerts),
	}
}

// emptyReport is the canonical no-data report: zero summary values, N/A
// metric names, and a single fixed recommendation.
func emptyReport(title string, alerts []telemetry.RegressionAlert) *Report {
	return &Report{
		Title:       title,
		GeneratedAt: time.Now(),
		Summary: Summary{
			SlowestMetric: MetricRef{Name: "N/A"},
			FastestMetric: MetricRef{Name: "N/A"},
		},
		ByCategory:        map[telemetry.Category]CategoryStats{},
		SlowestOperations: []telemetry.Metric{},
		Regressions:       alerts,
		Recommendations:   []string{noMetricsRecommendation},
	}
}

// categoryStats groups metric durations by category and summarizes each
// group with the engine's stats calculator.
func categoryStats(metrics []telemetry.Metric) map[telemetry.Category]CategoryStats {
	grouped := make(map[telemetry.Category][]float64)
	for _, m := range metrics {
		grouped[m.Category] = append(grouped[m.Category], m.DurationMs)
	}

	byCategory := make(map[telemetry.Category]CategoryStats, len(grouped))
	for category, durations := range grouped {
		stats := telemetry.ComputeStats(durations)
		byCategory[category] = CategoryStats{
			Count:   stats.Count,
			Average: stats.Average,
			Min:     stats.Min,
			Max:     stats.Max,
			P95:     stats.P95,
			P99:     stats.P99,
		}
	}
	return byCategory
}

// recommendations evaluates each advisory rule independently, in a fixed
// order, appending at most one line per rule. When nothing fires, the
// all-clear line is the sole entry.
func recommendations(byCategory map[telemetry.Category]CategoryStats, alerts []telemetry.RegressionAlert) []string {
	recs := make([]string, 0, 4)

	if s, ok := byCategory[telemetry.CategoryRender]; ok && s.Average > renderAverageBudgetMs {
		recs = append(recs, "Rendering is slow on average. Reduce per-frame work or virtualize long lists.")
	}
	if s, ok := byCategory[telemetry.CategoryGeneration]; ok && s.Average > generationAverageBudgetMs {
		recs = append(recs, "Generation is slow on average. Cache generated artifacts or produce them lazily.")
	}
	if s, ok := byCategory[telemetry.CategoryUpdate]; ok && s.Average > updateAverageBudgetMs {
		recs = append(recs, "State updates are slow on average. Batch updates or memoize derived state.")
	}

	var critical []string
	for _, alert := range alerts {
		if alert.Severity == telemetry.StatusCritical {
			critical = append(critical, alert.MetricName)
		}
	}
	if len(critical) > 0 {
		recs = append(recs, fmt.Sprintf("Critical regressions detected: %s. Investigate recent changes to these operations.", strings.Join(critical, ", ")))
	}

	for _, category := range sortedCategories(byCategory) {
		s := byCategory[category]
		// Division by a zero average is deliberate: +Inf compares true and
		// NaN compares false, matching the permissive ingestion policy.
		if (s.P99-s.Average)/s.Average > 1 {
			recs = append(recs, fmt.Sprintf("High duration variance in %s operations. Investigate intermittent outliers.", category))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, allClearRecommendation)
	}
	return recs
}

// sortedCategories returns the map's keys in lexical order so every rendering
// of the same report is byte-identical.
func sortedCategories(byCategory map[telemetry.Category]CategoryStats) []telemetry.Category {
	categories := make([]telemetry.Category, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}
