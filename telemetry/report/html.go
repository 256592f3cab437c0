package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/opspulse/pulse/telemetry"
)

// htmlTmpl is parsed once at init; htmlTemplate is a compile-time constant,
// so a parse failure is a programming error.
var htmlTmpl = template.Must(template.New("report").Funcs(templateFuncs()).Parse(htmlTemplate))

// htmlView wraps a Report with the category rows pre-sorted, since a
// template cannot iterate a map in a deterministic order.
type htmlView struct {
	*Report
	Categories []htmlCategoryRow
}

type htmlCategoryRow struct {
	Name  telemetry.Category
	Stats CategoryStats
}

func newHTMLView(r *Report) htmlView {
	rows := make([]htmlCategoryRow, 0, len(r.ByCategory))
	for _, category := range sortedCategories(r.ByCategory) {
		rows = append(rows, htmlCategoryRow{Name: category, Stats: r.ByCategory[category]})
	}
	return htmlView{Report: r, Categories: rows}
}

// ExportHTML renders the report as a self-contained document: all styling is
// inline and nothing references an external resource. A template failure is
// embedded in the output as an HTML comment so the rendering contract stays
// infallible like the other textual exporters.
func ExportHTML(r *Report) string {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, newHTMLView(r)); err != nil {
		return fmt.Sprintf("<!-- Error rendering report: %s -->", err)
	}
	return buf.String()
}

// WriteHTML renders the report and writes the document to path.
func WriteHTML(r *Report, path string) error {
	if err := os.WriteFile(path, []byte(ExportHTML(r)), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	return nil
}

// templateFuncs returns the template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatMs":      formatMs,
		"formatPercent": formatPercent,
		"formatTime":    formatTime,
	}
}

// formatMs formats a millisecond duration with its unit.
func formatMs(ms float64) string {
	return fmt.Sprintf("%.2f ms", ms)
}

// formatPercent renders a fractional change as a signed percentage.
func formatPercent(change float64) string {
	return fmt.Sprintf("%+.2f%%", change*100)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}
