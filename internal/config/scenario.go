// Package config loads and validates scenario files for replay runs.
//
// A scenario file is YAML. Its document is converted to JSON and checked
// against an embedded JSON Schema before decoding, then validated
// semantically, so a bad file fails with field locations rather than Go
// decoding noise.
package config

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/opspulse/pulse/telemetry"
	"github.com/opspulse/pulse/telemetry/report"
)

// Scenario describes a replay-and-report run: labeled observation windows
// fed into one engine, optional benchmark overrides, and output settings.
//
// Example YAML:
//
//	title: Editor session baseline
//	regressionThreshold: 0.15
//	benchmarks:
//	  - name: form-generation
//	    category: generation
//	    targetMs: 100
//	    warningThresholdMs: 200
//	    criticalThresholdMs: 500
//	windows:
//	  - label: baseline
//	    source: testdata/baseline.jsonl
//	  - label: current
//	    source: current.jsonl
//	output:
//	  formats: [json, html]
//	  dir: reports
type Scenario struct {
	// Title names the run and becomes the report title.
	Title string `json:"title" yaml:"title"`

	// RegressionThreshold is the fractional average-duration increase treated
	// as a regression between windows. Zero selects the default of 0.15.
	RegressionThreshold float64 `json:"regressionThreshold,omitempty" yaml:"regressionThreshold,omitempty"`

	// StrictDurations drops negative and non-finite durations at ingestion
	// instead of storing them as supplied.
	StrictDurations bool `json:"strictDurations,omitempty" yaml:"strictDurations,omitempty"`

	// Benchmarks extends the built-in registry. An entry whose name matches a
	// built-in benchmark replaces it.
	Benchmarks []telemetry.Benchmark `json:"benchmarks,omitempty" yaml:"benchmarks,omitempty"`

	// Windows are replayed in order, each ending with a snapshot. Two or more
	// windows enable regression detection.
	Windows []Window `json:"windows" yaml:"windows"`

	// Output selects report formats and the destination directory.
	Output Output `json:"output,omitempty" yaml:"output,omitempty"`
}

// Window is one labeled observation stream within a scenario.
type Window struct {
	// Label names the window for logging and console output.
	Label string `json:"label" yaml:"label"`

	// Source is the path of a JSON Lines observation file, relative to the
	// scenario file unless absolute.
	Source string `json:"source" yaml:"source"`
}

// Output controls where and how reports are written.
type Output struct {
	// Formats lists the report renderings to write (json, csv, html,
	// markdown). Empty selects json.
	Formats []string `json:"formats,omitempty" yaml:"formats,omitempty"`

	// Dir is the directory reports are written into. Empty selects the
	// working directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// EngineConfig builds the engine configuration for this scenario: default
// benchmarks first, then scenario entries, so scenario entries win when
// names collide.
func (s *Scenario) EngineConfig(logger *zap.Logger) telemetry.Config {
	cfg := telemetry.DefaultConfig()
	cfg.RegressionThreshold = s.RegressionThreshold
	cfg.StrictDurations = s.StrictDurations
	cfg.Benchmarks = append(telemetry.DefaultBenchmarks(), s.Benchmarks...)
	cfg.Logger = logger
	return cfg
}

// Formats parses the configured output formats. An unset list yields json.
func (s *Scenario) Formats() ([]report.Format, error) {
	if len(s.Output.Formats) == 0 {
		return []report.Format{report.FormatJSON}, nil
	}

	formats := make([]report.Format, 0, len(s.Output.Formats))
	for _, raw := range s.Output.Formats {
		f, err := report.ParseFormat(raw)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// ResolveSource returns the window source path resolved against the
// directory of the scenario file it was loaded from. Absolute sources and
// scenarios built in code (empty baseDir) pass through unchanged.
func ResolveSource(baseDir, source string) string {
	if baseDir == "" || filepath.IsAbs(source) {
		return source
	}
	return filepath.Join(baseDir, source)
}
