package config

import (
	"fmt"
	"strings"

	"github.com/opspulse/pulse/telemetry"
	"github.com/opspulse/pulse/telemetry/report"
)

// ValidationError is one problem found in a scenario.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found during validation so a bad
// scenario file is reported in one pass.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, err.Error())
	}
	return sb.String()
}

// Add appends an error for the given field.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any error was added.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the rules the schema cannot express.
//
// Returns nil if valid, or a *ValidationErrors carrying every problem found.
func (s *Scenario) Validate() error {
	errs := &ValidationErrors{}

	if strings.TrimSpace(s.Title) == "" {
		errs.Add("title", "title is required")
	}

	if s.RegressionThreshold < 0 {
		errs.Add("regressionThreshold", "threshold cannot be negative")
	}

	for i, b := range s.Benchmarks {
		validateBenchmark(fmt.Sprintf("benchmarks[%d]", i), b, errs)
	}

	if len(s.Windows) == 0 {
		errs.Add("windows", "at least one window is required")
	}
	seen := make(map[string]bool, len(s.Windows))
	for i, w := range s.Windows {
		prefix := fmt.Sprintf("windows[%d]", i)

		label := strings.TrimSpace(w.Label)
		switch {
		case label == "":
			errs.Add(prefix+".label", "label is required")
		case seen[label]:
			errs.Add(prefix+".label", fmt.Sprintf("duplicate window label %q", label))
		}
		seen[label] = true

		if strings.TrimSpace(w.Source) == "" {
			errs.Add(prefix+".source", "source is required")
		}
	}

	for i, raw := range s.Output.Formats {
		if _, err := report.ParseFormat(raw); err != nil {
			errs.Add(fmt.Sprintf("output.formats[%d]", i), err.Error())
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateBenchmark checks a single registry entry outside of scenario
// validation, for callers that register benchmarks one at a time.
func ValidateBenchmark(b telemetry.Benchmark) error {
	errs := &ValidationErrors{}
	validateBenchmark("benchmark", b, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateBenchmark checks one registry entry. The engine itself does not
// enforce threshold ordering, so the scenario layer owns it.
func validateBenchmark(prefix string, b telemetry.Benchmark, errs *ValidationErrors) {
	if strings.TrimSpace(b.Name) == "" {
		errs.Add(prefix+".name", "name is required")
	}

	if _, ok := telemetry.ParseCategory(string(b.Category)); !ok {
		errs.Add(prefix+".category", fmt.Sprintf("unknown category %q", b.Category))
	}

	if b.TargetMs <= 0 {
		errs.Add(prefix+".targetMs", "targetMs must be greater than 0")
	}
	if b.WarningMs < b.TargetMs {
		errs.Add(prefix+".warningThresholdMs", "warningThresholdMs cannot be below targetMs")
	}
	if b.CriticalMs < b.WarningMs {
		errs.Add(prefix+".criticalThresholdMs", "criticalThresholdMs cannot be below warningThresholdMs")
	}
}
