package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/opspulse/pulse/internal/config"
	"github.com/opspulse/pulse/telemetry"
	"github.com/opspulse/pulse/telemetry/report"
)

// observationRequest is the ingest payload for one observation.
type observationRequest struct {
	Name       string         `json:"name"`
	DurationMs float64        `json:"durationMs"`
	Category   string         `json:"category"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// resolve maps the payload onto engine types. An empty category defaults to
// interaction, matching the replay reader; an unknown one is rejected.
func (o observationRequest) resolve() (telemetry.Metric, error) {
	if strings.TrimSpace(o.Name) == "" {
		return telemetry.Metric{}, errors.New("name is required")
	}

	category := telemetry.CategoryInteraction
	if o.Category != "" {
		parsed, ok := telemetry.ParseCategory(o.Category)
		if !ok {
			return telemetry.Metric{}, fmt.Errorf("unknown category %q", o.Category)
		}
		category = parsed
	}

	return telemetry.Metric{
		Name:       o.Name,
		DurationMs: o.DurationMs,
		Category:   category,
		Metadata:   o.Metadata,
	}, nil
}

type metricsResponse struct {
	Count   int                `json:"count"`
	Metrics []telemetry.Metric `json:"metrics"`
}

// snapshotSummary is the trimmed snapshot view served over the API. Full
// metric lists stay server-side.
type snapshotSummary struct {
	Timestamp         time.Time `json:"timestamp"`
	MetricCount       int       `json:"metricCount"`
	OperationCount    int       `json:"operationCount"`
	SlowestOperation  string    `json:"slowestOperation,omitempty"`
	SlowestDurationMs float64   `json:"slowestDurationMs,omitempty"`
}

type snapshotsResponse struct {
	Count     int               `json:"count"`
	Snapshots []snapshotSummary `json:"snapshots"`
}

type regressionsResponse struct {
	Count       int                         `json:"count"`
	Regressions []telemetry.RegressionAlert `json:"regressions"`
}

type benchmarksResponse struct {
	Count      int                   `json:"count"`
	Benchmarks []telemetry.Benchmark `json:"benchmarks"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIngest accepts one observation object or a JSON array of them. The
// whole batch is validated before anything is recorded; one bad entry
// rejects the request without a partial ingest.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if !s.requireJSON(w, r) {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	observations, err := parseObservations(body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics := make([]telemetry.Metric, len(observations))
	for i, o := range observations {
		m, err := o.resolve()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("observation %d: %v", i, err))
			return
		}
		metrics[i] = m
	}

	for _, m := range metrics {
		s.engine.Record(m.Name, m.DurationMs, m.Category, m.Metadata)
	}

	s.respondJSON(w, http.StatusAccepted, map[string]int{"accepted": len(metrics)})
}

// parseObservations decodes a single observation object or an array of them.
func parseObservations(body []byte) ([]observationRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty request body")
	}

	if trimmed[0] == '[' {
		var batch []observationRequest
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return nil, errors.New("invalid JSON")
		}
		if len(batch) == 0 {
			return nil, errors.New("observation array is empty")
		}
		return batch, nil
	}

	var single observationRequest
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, errors.New("invalid JSON")
	}
	return []observationRequest{single}, nil
}

// handleListMetrics returns retained metrics, optionally filtered by exact
// name and category. Both filters combine when both are supplied.
func (s *Server) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	rawCategory := r.URL.Query().Get("category")

	var category telemetry.Category
	if rawCategory != "" {
		parsed, ok := telemetry.ParseCategory(rawCategory)
		if !ok {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", rawCategory))
			return
		}
		category = parsed
	}

	var metrics []telemetry.Metric
	switch {
	case name != "":
		metrics = s.engine.MetricsByName(name)
		if rawCategory != "" {
			kept := metrics[:0]
			for _, m := range metrics {
				if m.Category == category {
					kept = append(kept, m)
				}
			}
			metrics = kept
		}
	case rawCategory != "":
		metrics = s.engine.MetricsByCategory(category)
	default:
		metrics = s.engine.Metrics()
	}

	s.respondJSON(w, http.StatusOK, metricsResponse{Count: len(metrics), Metrics: metrics})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	stats := s.engine.CalculateStats(name)
	if stats == nil {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("no observations recorded for %q", name))
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleLiveStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.LiveStats())
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := s.engine.CreateSnapshot()
	s.respondJSON(w, http.StatusCreated, summarizeSnapshot(snapshot))
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots := s.engine.Snapshots()

	summaries := make([]snapshotSummary, len(snapshots))
	for i, snap := range snapshots {
		summaries[i] = summarizeSnapshot(snap)
	}

	s.respondJSON(w, http.StatusOK, snapshotsResponse{Count: len(summaries), Snapshots: summaries})
}

func summarizeSnapshot(snap *telemetry.Snapshot) snapshotSummary {
	summary := snapshotSummary{
		Timestamp:      snap.Timestamp,
		MetricCount:    len(snap.Metrics),
		OperationCount: len(snap.Averages),
	}
	if len(snap.SlowestOperations) > 0 {
		summary.SlowestOperation = snap.SlowestOperations[0].Name
		summary.SlowestDurationMs = snap.SlowestOperations[0].DurationMs
	}
	return summary
}

func (s *Server) handleRegressions(w http.ResponseWriter, r *http.Request) {
	alerts := s.engine.DetectRegressions()
	s.respondJSON(w, http.StatusOK, regressionsResponse{Count: len(alerts), Regressions: alerts})
}

func (s *Server) handleListBenchmarks(w http.ResponseWriter, r *http.Request) {
	benchmarks := s.engine.Benchmarks()
	s.respondJSON(w, http.StatusOK, benchmarksResponse{Count: len(benchmarks), Benchmarks: benchmarks})
}

// handleRegisterBenchmark upserts one registry entry, applying the same
// threshold-ordering rules as scenario validation.
func (s *Server) handleRegisterBenchmark(w http.ResponseWriter, r *http.Request) {
	if !s.requireJSON(w, r) {
		return
	}

	var b telemetry.Benchmark
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := config.ValidateBenchmark(b); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.engine.RegisterBenchmark(b)
	s.respondJSON(w, http.StatusCreated, b)
}

// handleReport renders an on-demand report in the requested format. The
// snapshot taken here joins the retained history, so repeated report calls
// feed regression detection too.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := report.FormatJSON
	if raw := r.URL.Query().Get("format"); raw != "" {
		parsed, err := report.ParseFormat(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = parsed
	}

	snapshot := s.engine.CreateSnapshot()
	regressions := s.engine.DetectRegressions()
	rendered, err := report.Export(report.Generate(snapshot, regressions, r.URL.Query().Get("title")), format)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if _, err := io.WriteString(w, rendered); err != nil {
		s.logger.Error("failed to write report response", zap.Error(err))
	}
}

// requireJSON rejects requests that declare a non-JSON content type. A
// missing Content-Type header is accepted.
func (s *Server) requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || strings.HasPrefix(ct, "application/json") {
		return true
	}
	s.respondError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported content type %q", ct))
	return false
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
