// Command generate-sample-report seeds a telemetry engine with two synthetic
// observation windows, the second with a slowed-down checkout flow, and
// renders the resulting report. Useful for eyeballing exporter changes
// without a recorded session.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opspulse/pulse/telemetry"
	"github.com/opspulse/pulse/telemetry/report"
)

func main() {
	outputDir := "."
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	rep := sampleReport()

	for _, f := range []report.Format{report.FormatHTML, report.FormatMarkdown} {
		rendered, err := report.Export(rep, f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		path := filepath.Join(outputDir, "sample-report"+f.Ext())
		if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sample report generated: %s\n", path)
	}
}

// sampleReport replays a baseline window and a regressed window so the
// rendered report exercises every section, regressions included.
func sampleReport() *report.Report {
	engine := telemetry.New()

	seedWindow(engine, 1.0)
	engine.CreateSnapshot()
	engine.Clear()

	seedWindow(engine, 1.6)
	snapshot := engine.CreateSnapshot()

	return report.Generate(snapshot, engine.DetectRegressions(), "Sample Editor Session")
}

// seedWindow records one window of observations. The checkout flow is scaled
// by slowdown so a second window with slowdown > 1.15 trips regression
// detection.
func seedWindow(engine *telemetry.Engine, slowdown float64) {
	observations := []struct {
		name       string
		durationMs float64
		category   telemetry.Category
		metadata   map[string]any
	}{
		{"ui-render", 16.4, telemetry.CategoryRender, map[string]any{"component": "canvas"}},
		{"ui-render", 21.9, telemetry.CategoryRender, map[string]any{"component": "canvas"}},
		{"ui-render", 18.2, telemetry.CategoryRender, map[string]any{"component": "sidebar"}},
		{"form-generation", 142.0, telemetry.CategoryGeneration, nil},
		{"form-generation", 171.5, telemetry.CategoryGeneration, nil},
		{"state-update", 38.7, telemetry.CategoryUpdate, nil},
		{"state-update", 44.1, telemetry.CategoryUpdate, nil},
		{"keystroke", 9.3, telemetry.CategoryInteraction, nil},
		{"keystroke", 11.8, telemetry.CategoryInteraction, nil},
		{"save-document", 87.6, telemetry.CategoryNetwork, map[string]any{"bytes": 24576}},
		{"save-document", 93.4, telemetry.CategoryNetwork, map[string]any{"bytes": 25344}},
		{"checkout", 210.0, telemetry.CategoryNetwork, nil},
		{"checkout", 246.0, telemetry.CategoryNetwork, nil},
	}

	for _, obs := range observations {
		duration := obs.durationMs
		if obs.name == "checkout" {
			duration *= slowdown
		}
		engine.Record(obs.name, duration, obs.category, obs.metadata)
	}
}
