// Package output renders engine results for terminals: a color scheme,
// benchmark-status icons, and the console summary printed after replay and
// probe runs.
package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/opspulse/pulse/telemetry"
)

// Scheme defines the colors used for the different console output elements.
type Scheme struct {
	Title          *color.Color
	Section        *color.Color
	Value          *color.Color
	StatusOK       *color.Color
	StatusWarning  *color.Color
	StatusCritical *color.Color
	Highlight      *color.Color
}

// DefaultScheme returns the default color scheme.
func DefaultScheme() *Scheme {
	return &Scheme{
		Title:          color.New(color.FgCyan, color.Bold),
		Section:        color.New(color.Bold),
		Value:          color.New(color.FgCyan),
		StatusOK:       color.New(color.FgGreen, color.Bold),
		StatusWarning:  color.New(color.FgYellow, color.Bold),
		StatusCritical: color.New(color.FgRed, color.Bold),
		Highlight:      color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a scheme with all colors disabled.
func NoColorScheme() *Scheme {
	scheme := DefaultScheme()

	scheme.Title.DisableColor()
	scheme.Section.DisableColor()
	scheme.Value.DisableColor()
	scheme.StatusOK.DisableColor()
	scheme.StatusWarning.DisableColor()
	scheme.StatusCritical.DisableColor()
	scheme.Highlight.DisableColor()

	return scheme
}

// StatusColor returns the scheme color for a benchmark status.
func (s *Scheme) StatusColor(status telemetry.BenchmarkStatus) *color.Color {
	switch status {
	case telemetry.StatusCritical:
		return s.StatusCritical
	case telemetry.StatusWarning:
		return s.StatusWarning
	default:
		return s.StatusOK
	}
}

// StatusIcon returns the marker glyph for a benchmark status, colored unless
// noColor is set.
func StatusIcon(status telemetry.BenchmarkStatus, noColor bool) string {
	glyph, fg := "✓", color.FgGreen
	switch status {
	case telemetry.StatusWarning:
		glyph, fg = "⚠", color.FgYellow
	case telemetry.StatusCritical:
		glyph, fg = "✗", color.FgRed
	}

	if noColor {
		return glyph
	}
	return color.New(fg).Sprint(glyph)
}

// ColorsEnabled reports whether w should receive ANSI colors. An explicit
// noColor request, the NO_COLOR convention, and non-terminal writers all
// disable them.
func ColorsEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
