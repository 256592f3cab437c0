package report

import (
	"fmt"
	"strings"
	"time"
)

// Section titles shared by the textual renderings. Consumers match on these
// exact strings, so they are constants rather than scattered literals.
const (
	sectionSummary         = "Summary"
	sectionByCategory      = "Performance by Category"
	sectionSlowest         = "Slowest Operations"
	sectionRegressions     = "Performance Regressions"
	sectionRecommendations = "Recommendations"
)

// ExportCSV renders the report as CSV-style sections separated by blank
// lines. The slowest-operations, regressions, and recommendations sections
// are omitted entirely when their source list is empty.
func ExportCSV(r *Report) string {
	sections := []string{
		csvHeader(r),
		csvSummary(r),
		csvByCategory(r),
	}
	if len(r.SlowestOperations) > 0 {
		sections = append(sections, csvSlowest(r))
	}
	if len(r.Regressions) > 0 {
		sections = append(sections, csvRegressions(r))
	}
	if len(r.Recommendations) > 0 {
		sections = append(sections, csvRecommendations(r))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func csvHeader(r *Report) string {
	return "Report," + csvField(r.Title) + "\nGenerated," + r.GeneratedAt.Format(time.RFC3339)
}

func csvSummary(r *Report) string {
	var b strings.Builder
	b.WriteString(sectionSummary + "\n")
	fmt.Fprintf(&b, "Total Metrics,%d\n", r.Summary.TotalMetrics)
	fmt.Fprintf(&b, "Total Duration (ms),%.2f\n", r.Summary.TotalDurationMs)
	fmt.Fprintf(&b, "Average Duration (ms),%.2f\n", r.Summary.AverageDurationMs)
	fmt.Fprintf(&b, "Slowest Metric,%s,%.2f\n", csvField(r.Summary.SlowestMetric.Name), r.Summary.SlowestMetric.DurationMs)
	fmt.Fprintf(&b, "Fastest Metric,%s,%.2f", csvField(r.Summary.FastestMetric.Name), r.Summary.FastestMetric.DurationMs)
	return b.String()
}

func csvByCategory(r *Report) string {
	var b strings.Builder
	b.WriteString(sectionByCategory + "\n")
	b.WriteString("Category,Count,Average (ms),Min (ms),Max (ms),P95 (ms),P99 (ms)")
	for _, category := range sortedCategories(r.ByCategory) {
		s := r.ByCategory[category]
		fmt.Fprintf(&b, "\n%s,%d,%.2f,%.2f,%.2f,%.2f,%.2f", category, s.Count, s.Average, s.Min, s.Max, s.P95, s.P99)
	}
	return b.String()
}

func csvSlowest(r *Report) string {
	var b strings.Builder
	b.WriteString(sectionSlowest + "\n")
	b.WriteString("Name,Category,Duration (ms),Timestamp")
	for _, m := range r.SlowestOperations {
		fmt.Fprintf(&b, "\n%s,%s,%.2f,%s", csvField(m.Name), m.Category, m.DurationMs, m.Timestamp.Format(time.RFC3339))
	}
	return b.String()
}

func csvRegressions(r *Report) string {
	var b strings.Builder
	b.WriteString(sectionRegressions + "\n")
	b.WriteString("Metric,Previous Average (ms),Current Average (ms),Change (%),Severity")
	for _, alert := range r.Regressions {
		fmt.Fprintf(&b, "\n%s,%.2f,%.2f,%.2f,%s", csvField(alert.MetricName), alert.PreviousAverage, alert.CurrentAverage, alert.PercentageChange*100, alert.Severity)
	}
	return b.String()
}

func csvRecommendations(r *Report) string {
	var b strings.Builder
	b.WriteString(sectionRecommendations)
	for _, rec := range r.Recommendations {
		b.WriteString("\n- " + rec)
	}
	return b.String()
}

// csvField quotes a value when it contains a comma, quote, or newline.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
