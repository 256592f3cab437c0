package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/opspulse/pulse/telemetry"
	"github.com/opspulse/pulse/telemetry/report"
)

const lineWidth = 56

// Printer writes console summaries of reports, replay progress, and probe
// verdicts.
type Printer struct {
	writer  io.Writer
	scheme  *Scheme
	noColor bool
}

// PrinterConfig contains configuration for a Printer.
type PrinterConfig struct {
	// Writer receives the output. Nil selects stdout.
	Writer io.Writer

	// NoColor forces colors off even on a terminal.
	NoColor bool
}

// NewPrinter creates a printer. Colors turn on only when the writer is a
// terminal and noColor is unset.
func NewPrinter(cfg PrinterConfig) *Printer {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}

	noColor := !ColorsEnabled(cfg.Writer, cfg.NoColor)
	scheme := DefaultScheme()
	if noColor {
		scheme = NoColorScheme()
	}

	return &Printer{writer: cfg.Writer, scheme: scheme, noColor: noColor}
}

// PrintReport renders a report as a sectioned console summary.
func (p *Printer) PrintReport(r *report.Report) {
	if r == nil {
		p.writeln("No report available")
		return
	}

	line := strings.Repeat("─", lineWidth)

	p.writeln("")
	p.writeln(p.scheme.Title.Sprint(line))
	p.writeln(fmt.Sprintf("%s - %s", p.scheme.Section.Sprint(r.Title), p.headline(r)))
	p.writeln(p.scheme.Title.Sprint(line))
	p.writeln("")

	p.writeln(fmt.Sprintf("Generated:     %s", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	p.writeln(fmt.Sprintf("Metrics:       %s", p.scheme.Value.Sprintf("%d", r.Summary.TotalMetrics)))
	p.writeln(fmt.Sprintf("Avg Duration:  %s", p.scheme.Value.Sprint(formatMs(r.Summary.AverageDurationMs))))
	p.writeln(fmt.Sprintf("Slowest:       %s (%s)", p.scheme.Highlight.Sprint(r.Summary.SlowestMetric.Name), formatMs(r.Summary.SlowestMetric.DurationMs)))
	p.writeln(fmt.Sprintf("Fastest:       %s (%s)", p.scheme.Highlight.Sprint(r.Summary.FastestMetric.Name), formatMs(r.Summary.FastestMetric.DurationMs)))
	p.writeln("")

	if len(r.ByCategory) > 0 {
		p.writeln(p.scheme.Section.Sprint("Categories:"))
		for _, category := range sortedCategories(r.ByCategory) {
			stats := r.ByCategory[category]
			p.writeln(fmt.Sprintf("  %-12s %4d ops   avg %10s   p95 %10s   p99 %10s",
				category, stats.Count, formatMs(stats.Average), formatMs(stats.P95), formatMs(stats.P99)))
		}
		p.writeln("")
	}

	if len(r.SlowestOperations) > 0 {
		p.writeln(p.scheme.Section.Sprint("Slowest Operations:"))
		for i, m := range r.SlowestOperations {
			p.writeln(fmt.Sprintf("  %2d. %-28s %10s  (%s)", i+1, m.Name, formatMs(m.DurationMs), m.Category))
		}
		p.writeln("")
	}

	if len(r.Regressions) > 0 {
		p.writeln(p.scheme.Section.Sprint("Regressions:"))
		for _, alert := range r.Regressions {
			p.writeln(fmt.Sprintf("  %s %s: %s -> %s (%s)",
				StatusIcon(alert.Severity, p.noColor),
				alert.MetricName,
				formatMs(alert.PreviousAverage),
				formatMs(alert.CurrentAverage),
				p.scheme.StatusColor(alert.Severity).Sprintf("%+.2f%%", alert.PercentageChange*100)))
		}
		p.writeln("")
	}

	if len(r.Recommendations) > 0 {
		p.writeln(p.scheme.Section.Sprint("Recommendations:"))
		for _, rec := range r.Recommendations {
			p.writeln("  - " + rec)
		}
		p.writeln("")
	}
}

// PrintWindow reports one replayed window.
func (p *Printer) PrintWindow(label string, observations, skipped int) {
	status := telemetry.StatusOK
	suffix := ""
	if skipped > 0 {
		status = telemetry.StatusWarning
		suffix = fmt.Sprintf(" (%d skipped)", skipped)
	}

	p.writeln(fmt.Sprintf("%s window %s: %d observations%s",
		StatusIcon(status, p.noColor), p.scheme.Highlight.Sprint(label), observations, suffix))
}

// PrintStats prints per-operation statistics with the benchmark verdict.
// Used by the probe command after its requests complete.
func (p *Printer) PrintStats(name string, stats *telemetry.Stats, result telemetry.BenchmarkResult) {
	if stats == nil {
		p.writeln(fmt.Sprintf("%s: no observations", name))
		return
	}

	statusColor := p.scheme.StatusColor(result.Status)

	p.writeln("")
	p.writeln(fmt.Sprintf("%s %s", StatusIcon(result.Status, p.noColor), p.scheme.Section.Sprint(name)))
	p.writeln(fmt.Sprintf("  Count:   %d", stats.Count))
	p.writeln(fmt.Sprintf("  Average: %s", statusColor.Sprint(formatMs(stats.Average))))
	p.writeln(fmt.Sprintf("  Min:     %s", formatMs(stats.Min)))
	p.writeln(fmt.Sprintf("  Max:     %s", formatMs(stats.Max)))
	p.writeln(fmt.Sprintf("  P50:     %s", formatMs(stats.P50)))
	p.writeln(fmt.Sprintf("  P95:     %s", formatMs(stats.P95)))
	p.writeln(fmt.Sprintf("  P99:     %s", formatMs(stats.P99)))
	p.writeln(fmt.Sprintf("  Status:  %s", statusColor.Sprint(string(result.Status))))
}

// PrintExported reports one written report file.
func (p *Printer) PrintExported(path string) {
	p.writeln(fmt.Sprintf("Report written to: %s", p.scheme.Highlight.Sprint(path)))
}

// headline summarizes the run for the banner line. The worst regression
// severity picks the color.
func (p *Printer) headline(r *report.Report) string {
	critical := 0
	for _, alert := range r.Regressions {
		if alert.Severity == telemetry.StatusCritical {
			critical++
		}
	}

	total := len(r.Regressions)
	switch {
	case critical > 0:
		return p.scheme.StatusCritical.Sprintf("✗ %d %s", total, pluralRegressions(total))
	case total > 0:
		return p.scheme.StatusWarning.Sprintf("⚠ %d %s", total, pluralRegressions(total))
	default:
		return p.scheme.StatusOK.Sprint("✓ no regressions")
	}
}

func pluralRegressions(n int) string {
	if n == 1 {
		return "regression"
	}
	return "regressions"
}

func formatMs(ms float64) string {
	return fmt.Sprintf("%.2fms", ms)
}

// sortedCategories returns map keys in lexical order so console output is
// stable run to run.
func sortedCategories(byCategory map[telemetry.Category]report.CategoryStats) []telemetry.Category {
	categories := make([]telemetry.Category, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// writeln writes one line to the output.
func (p *Printer) writeln(s string) {
	fmt.Fprintln(p.writer, s)
}
