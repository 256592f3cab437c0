package report

import "fmt"

// Format identifies one of the supported report renderings.
type Format string

const (
	// FormatJSON is the canonical structural form, pretty-printed.
	FormatJSON Format = "json"
	// FormatCSV is a sectioned comma-separated rendering.
	FormatCSV Format = "csv"
	// FormatHTML is a self-contained single-page document.
	FormatHTML Format = "html"
	// FormatMarkdown uses pipe tables and #/## headers.
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format in a stable order.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatHTML, FormatMarkdown}
}

// ParseFormat maps a raw string onto a Format. "md" is accepted as an alias
// for markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatHTML, FormatMarkdown:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (expected json, csv, html, or markdown)", s)
}

// Ext returns the conventional file extension for the format, including the
// leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatHTML:
		return ".html"
	case FormatMarkdown:
		return ".md"
	default:
		return ".json"
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json"
	}
}

// Export renders r in the requested format. Only JSON can fail, and only
// when the report holds values the encoder rejects, such as non-finite
// durations recorded under the permissive ingestion policy.
func Export(r *Report, f Format) (string, error) {
	switch f {
	case FormatCSV:
		return ExportCSV(r), nil
	case FormatHTML:
		return ExportHTML(r), nil
	case FormatMarkdown:
		return ExportMarkdown(r), nil
	case FormatJSON:
		return ExportJSON(r)
	default:
		return "", fmt.Errorf("unknown report format %q", string(f))
	}
}
