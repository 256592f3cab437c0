package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/opspulse/pulse/telemetry"
)

func TestValidateValidScenario(t *testing.T) {
	if err := validScenario().Validate(); err != nil {
		t.Errorf("Validate returned error for valid scenario: %v", err)
	}
}

func TestValidateMissingTitle(t *testing.T) {
	sc := validScenario()
	sc.Title = "   "

	assertSingleError(t, sc.Validate(), "title")
}

func TestValidateNegativeThreshold(t *testing.T) {
	sc := validScenario()
	sc.RegressionThreshold = -0.1

	assertSingleError(t, sc.Validate(), "regressionThreshold")
}

func TestValidateNoWindows(t *testing.T) {
	sc := validScenario()
	sc.Windows = nil

	assertSingleError(t, sc.Validate(), "windows")
}

func TestValidateWindowFields(t *testing.T) {
	sc := validScenario()
	sc.Windows = []Window{{Label: "", Source: ""}}

	verrs := asValidationErrors(t, sc.Validate())
	if len(verrs.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(verrs.Errors), verrs)
	}
	if verrs.Errors[0].Field != "windows[0].label" {
		t.Errorf("Errors[0].Field = %q, want windows[0].label", verrs.Errors[0].Field)
	}
	if verrs.Errors[1].Field != "windows[0].source" {
		t.Errorf("Errors[1].Field = %q, want windows[0].source", verrs.Errors[1].Field)
	}
}

func TestValidateDuplicateWindowLabels(t *testing.T) {
	sc := validScenario()
	sc.Windows = []Window{
		{Label: "baseline", Source: "a.jsonl"},
		{Label: "baseline", Source: "b.jsonl"},
	}

	verrs := asValidationErrors(t, sc.Validate())
	if len(verrs.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(verrs.Errors), verrs)
	}
	if verrs.Errors[0].Field != "windows[1].label" {
		t.Errorf("Field = %q, want windows[1].label", verrs.Errors[0].Field)
	}
	if !strings.Contains(verrs.Errors[0].Message, `duplicate window label "baseline"`) {
		t.Errorf("Message = %q, want duplicate label mention", verrs.Errors[0].Message)
	}
}

func TestValidateBenchmarkRules(t *testing.T) {
	tests := []struct {
		name      string
		benchmark telemetry.Benchmark
		wantField string
	}{
		{
			name:      "empty name",
			benchmark: telemetry.Benchmark{Name: " ", Category: telemetry.CategoryRender, TargetMs: 10, WarningMs: 20, CriticalMs: 30},
			wantField: "benchmarks[0].name",
		},
		{
			name:      "unknown category",
			benchmark: telemetry.Benchmark{Name: "disk-flush", Category: "disk", TargetMs: 10, WarningMs: 20, CriticalMs: 30},
			wantField: "benchmarks[0].category",
		},
		{
			name:      "zero target",
			benchmark: telemetry.Benchmark{Name: "save", Category: telemetry.CategoryUpdate, TargetMs: 0, WarningMs: 20, CriticalMs: 30},
			wantField: "benchmarks[0].targetMs",
		},
		{
			name:      "warning below target",
			benchmark: telemetry.Benchmark{Name: "save", Category: telemetry.CategoryUpdate, TargetMs: 50, WarningMs: 20, CriticalMs: 60},
			wantField: "benchmarks[0].warningThresholdMs",
		},
		{
			name:      "critical below warning",
			benchmark: telemetry.Benchmark{Name: "save", Category: telemetry.CategoryUpdate, TargetMs: 10, WarningMs: 40, CriticalMs: 30},
			wantField: "benchmarks[0].criticalThresholdMs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := validScenario()
			sc.Benchmarks = []telemetry.Benchmark{tt.benchmark}

			assertSingleError(t, sc.Validate(), tt.wantField)
		})
	}
}

func TestValidateBadOutputFormat(t *testing.T) {
	sc := validScenario()
	sc.Output.Formats = []string{"json", "yaml"}

	assertSingleError(t, sc.Validate(), "output.formats[1]")
}

func TestValidateAccumulatesErrors(t *testing.T) {
	sc := &Scenario{
		Title:               "",
		RegressionThreshold: -1,
		Windows:             []Window{{Label: "w", Source: ""}},
	}

	verrs := asValidationErrors(t, sc.Validate())
	if len(verrs.Errors) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(verrs.Errors), verrs)
	}

	msg := verrs.Error()
	if !strings.Contains(msg, "3 validation errors:") {
		t.Errorf("Error() = %q, want count header", msg)
	}
	if !strings.Contains(msg, "1. title: title is required") {
		t.Errorf("Error() = %q, want numbered first entry", msg)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	empty := &ValidationErrors{}
	if got := empty.Error(); got != "no validation errors" {
		t.Errorf("empty Error() = %q, want %q", got, "no validation errors")
	}

	single := &ValidationErrors{}
	single.Add("title", "title is required")
	if got := single.Error(); got != "title: title is required" {
		t.Errorf("single Error() = %q, want %q", got, "title: title is required")
	}
}

// assertSingleError fails unless err is a *ValidationErrors holding exactly
// one entry for wantField.
func assertSingleError(t *testing.T, err error, wantField string) {
	t.Helper()

	verrs := asValidationErrors(t, err)
	if len(verrs.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(verrs.Errors), verrs)
	}
	if verrs.Errors[0].Field != wantField {
		t.Errorf("Field = %q, want %q", verrs.Errors[0].Field, wantField)
	}
}

func asValidationErrors(t *testing.T, err error) *ValidationErrors {
	t.Helper()

	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error = %T, want *ValidationErrors", err)
	}
	return verrs
}

func validScenario() *Scenario {
	return &Scenario{
		Title:               "Editor session baseline",
		RegressionThreshold: 0.15,
		Benchmarks: []telemetry.Benchmark{
			{Name: "form-generation", Category: telemetry.CategoryGeneration, TargetMs: 100, WarningMs: 200, CriticalMs: 500},
		},
		Windows: []Window{
			{Label: "baseline", Source: "testdata/baseline.jsonl"},
			{Label: "current", Source: "current.jsonl"},
		},
		Output: Output{Formats: []string{"json", "html"}, Dir: "reports"},
	}
}
