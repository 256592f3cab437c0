package report

import (
	"strings"
	"testing"

	"github.com/opspulse/pulse/telemetry"
)

func TestExportCSVSections(t *testing.T) {
	csv := ExportCSV(createSampleReport())

	expectedContents := []string{
		"Report,Editor Session",
		"Generated,",
		"Summary",
		"Total Metrics,5",
		"Total Duration (ms),1220.00",
		"Average Duration (ms),244.00",
		"Slowest Metric,network-request,820.00",
		"Fastest Metric,form-generation,40.00",
		"Performance by Category",
		"Category,Count,Average (ms),Min (ms),Max (ms),P95 (ms),P99 (ms)",
		"render,2,150.00,120.00,180.00,180.00,180.00",
		"Slowest Operations",
		"Name,Category,Duration (ms),Timestamp",
		"Performance Regressions",
		"Metric,Previous Average (ms),Current Average (ms),Change (%),Severity",
		"Recommendations",
		"- Critical regressions detected: ui-render.",
	}
	for _, expected := range expectedContents {
		if !strings.Contains(csv, expected) {
			t.Errorf("CSV does not contain expected content: %s", expected)
		}
	}
}

func TestExportCSVPercentAsWholeNumber(t *testing.T) {
	csv := ExportCSV(createSampleReport())

	// PercentageChange 0.8 renders as 80.00, not 0.80.
	if !strings.Contains(csv, "form-generation,100.00,180.00,80.00,warning") {
		t.Errorf("CSV missing whole-number percent row:\n%s", csv)
	}
	if !strings.Contains(csv, "ui-render,400.00,1200.00,200.00,critical") {
		t.Errorf("CSV missing critical regression row:\n%s", csv)
	}
}

func TestExportCSVOmitsEmptySections(t *testing.T) {
	csv := ExportCSV(Generate(createSampleSnapshot(), nil, ""))

	if strings.Contains(csv, "Performance Regressions") {
		t.Error("CSV contains a regressions section despite zero regressions")
	}
	if !strings.Contains(csv, "Slowest Operations") {
		t.Error("CSV missing slowest-operations section despite data")
	}
}

func TestExportCSVEmptyReport(t *testing.T) {
	eng := telemetry.New()
	csv := ExportCSV(Generate(eng.CreateSnapshot(), nil, ""))

	if strings.Contains(csv, "Slowest Operations") {
		t.Error("CSV contains slowest-operations section for an empty report")
	}
	if !strings.Contains(csv, "Total Metrics,0") {
		t.Error("CSV missing zeroed summary")
	}
	if !strings.Contains(csv, "Slowest Metric,N/A,0.00") {
		t.Error("CSV missing N/A slowest metric")
	}
	if !strings.Contains(csv, "- No metrics recorded") {
		t.Error("CSV missing the no-metrics recommendation")
	}
}

func TestExportCSVQuotesFields(t *testing.T) {
	eng := telemetry.New()
	eng.Record("checkout, step 1", 75, telemetry.CategoryInteraction, nil)

	csv := ExportCSV(Generate(eng.CreateSnapshot(), nil, ""))

	if !strings.Contains(csv, `"checkout, step 1"`) {
		t.Errorf("CSV does not quote a name containing a comma:\n%s", csv)
	}
}

func TestExportCSVDeterministic(t *testing.T) {
	r := createSampleReport()

	first := ExportCSV(r)
	second := ExportCSV(r)
	if first != second {
		t.Error("ExportCSV is not deterministic for an unchanged report")
	}
}
