package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opspulse/pulse/telemetry"
)

func TestProberRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	engine := telemetry.New()
	prober := New(Config{Engine: engine})

	results, err := prober.Run(context.Background(), server.URL, "network-request", 3)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	for i, result := range results {
		if result.Err != nil {
			t.Errorf("result[%d].Err = %v, want nil", i, result.Err)
		}
		if result.StatusCode != http.StatusOK {
			t.Errorf("result[%d].StatusCode = %d, want 200", i, result.StatusCode)
		}
		if result.BodyBytes != len(`{"message":"ok"}`) {
			t.Errorf("result[%d].BodyBytes = %d, want %d", i, result.BodyBytes, len(`{"message":"ok"}`))
		}
		if result.Timings.TotalMs <= 0 {
			t.Errorf("result[%d].Timings.TotalMs = %v, want > 0", i, result.Timings.TotalMs)
		}
	}

	if got := engine.MetricCount(); got != 3 {
		t.Errorf("MetricCount = %d, want 3", got)
	}

	metrics := engine.MetricsByName("network-request")
	if len(metrics) != 3 {
		t.Fatalf("got %d recorded metrics, want 3", len(metrics))
	}
	for i, m := range metrics {
		if m.Category != telemetry.CategoryNetwork {
			t.Errorf("metric[%d].Category = %q, want network", i, m.Category)
		}
		if m.DurationMs <= 0 {
			t.Errorf("metric[%d].DurationMs = %v, want > 0", i, m.DurationMs)
		}

		if sc, ok := m.Metadata["statusCode"].(int); !ok || sc != http.StatusOK {
			t.Errorf("metric[%d] statusCode metadata = %v, want 200", i, m.Metadata["statusCode"])
		}
		if m.Metadata["url"] != server.URL {
			t.Errorf("metric[%d] url metadata = %v, want %q", i, m.Metadata["url"], server.URL)
		}
		for _, key := range []string{"dnsLookupMs", "tcpConnectMs", "tlsHandshakeMs", "timeToFirstByteMs", "contentTransferMs"} {
			if _, ok := m.Metadata[key]; !ok {
				t.Errorf("metric[%d] metadata missing %q", i, key)
			}
		}
	}
}

func TestProberRecordsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	engine := telemetry.New()
	prober := New(Config{Engine: engine})

	results, err := prober.Run(context.Background(), url, "network-request", 2)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, result := range results {
		if result.Err == nil {
			t.Errorf("result[%d].Err = nil, want connection failure", i)
		}
	}

	// Failed requests are still recorded, tagged as errors.
	metrics := engine.MetricsByName("network-request")
	if len(metrics) != 2 {
		t.Fatalf("got %d recorded metrics, want 2", len(metrics))
	}
	for i, m := range metrics {
		if m.Metadata["error"] != true {
			t.Errorf("metric[%d] missing error tag: %v", i, m.Metadata)
		}
		if _, ok := m.Metadata["statusCode"]; ok {
			t.Errorf("metric[%d] has statusCode metadata despite failure", i)
		}
	}
}

func TestProberHTTPErrorStatusIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	engine := telemetry.New()
	prober := New(Config{Engine: engine})

	results, err := prober.Run(context.Background(), server.URL, "network-request", 1)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if results[0].Err != nil {
		t.Errorf("Err = %v, want nil for HTTP 500", results[0].Err)
	}
	if results[0].StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", results[0].StatusCode)
	}

	metrics := engine.MetricsByName("network-request")
	if len(metrics) != 1 {
		t.Fatalf("got %d recorded metrics, want 1", len(metrics))
	}
	if sc, ok := metrics[0].Metadata["statusCode"].(int); !ok || sc != http.StatusInternalServerError {
		t.Errorf("statusCode metadata = %v, want 500", metrics[0].Metadata["statusCode"])
	}
	if _, ok := metrics[0].Metadata["error"]; ok {
		t.Error("metric tagged as error for an HTTP 500 response")
	}
}

func TestProberDefaultMetricName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	engine := telemetry.New()
	prober := New(Config{Engine: engine})

	if _, err := prober.Run(context.Background(), server.URL, "", 1); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := len(engine.MetricsByName(DefaultMetricName)); got != 1 {
		t.Errorf("got %d metrics under %q, want 1", got, DefaultMetricName)
	}
}

func TestProberRejectsBadCount(t *testing.T) {
	prober := New(Config{Engine: telemetry.New()})

	if _, err := prober.Run(context.Background(), "http://example.invalid", "x", 0); err == nil {
		t.Fatal("expected error for count 0")
	}
}

func TestProberStopsOnCanceledContext(t *testing.T) {
	engine := telemetry.New()
	prober := New(Config{Engine: engine})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := prober.Run(ctx, "http://example.invalid", "x", 5)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if got := engine.MetricCount(); got != 0 {
		t.Errorf("MetricCount = %d, want 0", got)
	}
}
