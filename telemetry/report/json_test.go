package report

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/opspulse/pulse/telemetry"
)

func TestExportJSONRoundTrip(t *testing.T) {
	original := createSampleReport()

	out, err := ExportJSON(original)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Failed to parse exported JSON: %v", err)
	}

	if decoded.Title != original.Title {
		t.Errorf("Title = %q, want %q", decoded.Title, original.Title)
	}
	if decoded.Summary.TotalMetrics != original.Summary.TotalMetrics {
		t.Errorf("TotalMetrics = %d, want %d", decoded.Summary.TotalMetrics, original.Summary.TotalMetrics)
	}
	if len(decoded.Regressions) != len(original.Regressions) {
		t.Errorf("Regressions count = %d, want %d", len(decoded.Regressions), len(original.Regressions))
	}
}

func TestExportJSONFieldNames(t *testing.T) {
	out, err := ExportJSON(createSampleReport())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	expectedFields := []string{
		`"title"`,
		`"generatedAt"`,
		`"summary"`,
		`"totalMetrics"`,
		`"totalDurationMs"`,
		`"averageDurationMs"`,
		`"slowestMetric"`,
		`"fastestMetric"`,
		`"byCategory"`,
		`"slowestOperations"`,
		`"regressions"`,
		`"percentageChange"`,
		`"recommendations"`,
	}
	for _, field := range expectedFields {
		if !strings.Contains(out, field) {
			t.Errorf("JSON missing field %s", field)
		}
	}
}

func TestExportJSONPrettyPrinted(t *testing.T) {
	out, err := ExportJSON(createSampleReport())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	if !strings.HasPrefix(out, "{\n  \"title\"") {
		t.Errorf("JSON is not two-space indented:\n%.60s", out)
	}
}

func TestExportJSONEmptyReportShapes(t *testing.T) {
	eng := telemetry.New()
	out, err := ExportJSON(Generate(eng.CreateSnapshot(), nil, ""))
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	// Empty collections serialize as [] and {}, never null.
	for _, expected := range []string{`"slowestOperations": []`, `"regressions": []`, `"byCategory": {}`} {
		if !strings.Contains(out, expected) {
			t.Errorf("JSON missing %s:\n%s", expected, out)
		}
	}
}

func TestExportJSONNonFiniteDuration(t *testing.T) {
	eng := telemetry.New()
	eng.Record("bad-clock", math.NaN(), telemetry.CategoryUpdate, nil)

	_, err := ExportJSON(Generate(eng.CreateSnapshot(), nil, ""))
	if err == nil {
		t.Fatal("Expected error for NaN duration, got nil")
	}
	if !strings.Contains(err.Error(), "failed to marshal report") {
		t.Errorf("error = %v, want a marshal failure", err)
	}
}
