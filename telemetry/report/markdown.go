package report

import (
	"fmt"
	"strings"
	"time"
)

// markdownSlowestCap bounds the slowest-operations table. The snapshot
// already caps the list at ten entries; the cap here keeps hand-built
// reports from producing unbounded tables.
const markdownSlowestCap = 10

// ExportMarkdown renders the report with #/## headers and pipe tables, in
// the same section order as the CSV rendering and with the same conditional
// omission of empty sections.
func ExportMarkdown(r *Report) string {
	sections := []string{
		"# " + r.Title + "\n\nGenerated: " + r.GeneratedAt.Format(time.RFC3339),
		mdSummary(r),
		mdByCategory(r),
	}
	if len(r.SlowestOperations) > 0 {
		sections = append(sections, mdSlowest(r))
	}
	if len(r.Regressions) > 0 {
		sections = append(sections, mdRegressions(r))
	}
	if len(r.Recommendations) > 0 {
		sections = append(sections, mdRecommendations(r))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func mdSummary(r *Report) string {
	var b strings.Builder
	b.WriteString("## " + sectionSummary + "\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| Total Metrics | %d |\n", r.Summary.TotalMetrics)
	fmt.Fprintf(&b, "| Total Duration | %.2f ms |\n", r.Summary.TotalDurationMs)
	fmt.Fprintf(&b, "| Average Duration | %.2f ms |\n", r.Summary.AverageDurationMs)
	fmt.Fprintf(&b, "| Slowest Metric | %s (%.2f ms) |\n", mdCell(r.Summary.SlowestMetric.Name), r.Summary.SlowestMetric.DurationMs)
	fmt.Fprintf(&b, "| Fastest Metric | %s (%.2f ms) |", mdCell(r.Summary.FastestMetric.Name), r.Summary.FastestMetric.DurationMs)
	return b.String()
}

func mdByCategory(r *Report) string {
	var b strings.Builder
	b.WriteString("## " + sectionByCategory + "\n\n")
	b.WriteString("| Category | Count | Average (ms) | Min (ms) | Max (ms) | P95 (ms) | P99 (ms) |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |")
	for _, category := range sortedCategories(r.ByCategory) {
		s := r.ByCategory[category]
		fmt.Fprintf(&b, "\n| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f |", category, s.Count, s.Average, s.Min, s.Max, s.P95, s.P99)
	}
	return b.String()
}

func mdSlowest(r *Report) string {
	rows := r.SlowestOperations
	if len(rows) > markdownSlowestCap {
		rows = rows[:markdownSlowestCap]
	}

	var b strings.Builder
	b.WriteString("## " + sectionSlowest + "\n\n")
	b.WriteString("| Name | Category | Duration (ms) |\n")
	b.WriteString("| --- | --- | --- |")
	for _, m := range rows {
		fmt.Fprintf(&b, "\n| %s | %s | %.2f |", mdCell(m.Name), m.Category, m.DurationMs)
	}
	return b.String()
}

func mdRegressions(r *Report) string {
	var b strings.Builder
	b.WriteString("## " + sectionRegressions + "\n\n")
	b.WriteString("| Metric | Previous (ms) | Current (ms) | Change | Severity |\n")
	b.WriteString("| --- | --- | --- | --- | --- |")
	for _, alert := range r.Regressions {
		fmt.Fprintf(&b, "\n| %s | %.2f | %.2f | %+.2f%% | %s |", mdCell(alert.MetricName), alert.PreviousAverage, alert.CurrentAverage, alert.PercentageChange*100, alert.Severity)
	}
	return b.String()
}

func mdRecommendations(r *Report) string {
	var b strings.Builder
	b.WriteString("## " + sectionRecommendations + "\n")
	for _, rec := range r.Recommendations {
		b.WriteString("\n- " + rec)
	}
	return b.String()
}

// mdCell escapes pipes so a value cannot break out of its table cell.
func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
