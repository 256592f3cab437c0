// Package probe issues instrumented HTTP requests and records their timings
// as engine metrics, so live endpoints can feed the engine without going
// through an observation file.
package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"

	"go.uber.org/zap"

	"github.com/opspulse/pulse/telemetry"
)

// DefaultMetricName is used when the caller does not name the metric. It
// matches the stock network-request benchmark, so probe results get a
// threshold verdict out of the box.
const DefaultMetricName = "network-request"

const defaultTimeout = 30 * time.Second

// PhaseTimings breaks one request into transport phases. All values are
// milliseconds; phases that did not happen (connection reuse, plain HTTP)
// stay zero.
type PhaseTimings struct {
	DNSLookupMs       float64
	TCPConnectMs      float64
	TLSHandshakeMs    float64
	TimeToFirstByteMs float64
	ContentTransferMs float64
	TotalMs           float64
}

// Result is the outcome of one probe request.
type Result struct {
	StatusCode int
	BodyBytes  int
	Timings    PhaseTimings
	Err        error
}

// Prober drives instrumented requests and records one metric per request
// into the engine.
type Prober struct {
	engine *telemetry.Engine
	client *http.Client
	logger *zap.Logger
}

// Config contains construction-time settings for a Prober.
type Config struct {
	// Engine receives one metric per request. Required.
	Engine *telemetry.Engine

	// Timeout bounds each request (default 30s).
	Timeout time.Duration

	// Logger receives a warning per failed request. Defaults to a nop logger.
	Logger *zap.Logger
}

// New creates a prober.
func New(cfg Config) *Prober {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Prober{
		engine: cfg.Engine,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger,
	}
}

// Run probes url count times, recording each request under name (or
// DefaultMetricName when empty). Every request is recorded, failures
// included, so the resulting stats reflect all attempts. The returned error
// reports bad arguments or a canceled context, never an individual request
// failure; those live in the per-request results.
func (p *Prober) Run(ctx context.Context, url, name string, count int) ([]Result, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be greater than 0")
	}
	if name == "" {
		name = DefaultMetricName
	}

	results := make([]Result, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := p.probeOnce(ctx, url, name)
		if result.Err != nil {
			p.logger.Warn("probe request failed",
				zap.String("url", url),
				zap.Int("attempt", i+1),
				zap.Error(result.Err))
		}
		results = append(results, result)
	}

	return results, nil
}

// probeOnce issues one request inside a measurement. The metadata map is
// filled as phases complete, and the measurement helper copies it when the
// work finishes, so the stored record carries whatever the request reached
// before succeeding or failing.
func (p *Prober) probeOnce(ctx context.Context, url, name string) Result {
	var result Result
	metadata := map[string]any{"url": url}

	err := p.engine.MeasureContext(ctx, name, telemetry.CategoryNetwork, func(ctx context.Context) error {
		result = p.request(ctx, url)

		if result.Err == nil {
			metadata["statusCode"] = result.StatusCode
		}
		metadata["dnsLookupMs"] = result.Timings.DNSLookupMs
		metadata["tcpConnectMs"] = result.Timings.TCPConnectMs
		metadata["tlsHandshakeMs"] = result.Timings.TLSHandshakeMs
		metadata["timeToFirstByteMs"] = result.Timings.TimeToFirstByteMs
		metadata["contentTransferMs"] = result.Timings.ContentTransferMs

		return result.Err
	}, metadata)

	result.Err = err
	return result
}

// request executes one GET with an httptrace capturing per-phase timings.
func (p *Prober) request(ctx context.Context, url string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to build request: %w", err)}
	}

	start := time.Now()

	var dnsStart, connectStart, tlsStart time.Time
	lastPhaseEnd := start
	timings := PhaseTimings{}

	trace := &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			dnsStart = time.Now()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			now := time.Now()
			timings.DNSLookupMs = msBetween(dnsStart, now)
			lastPhaseEnd = now
		},
		ConnectStart: func(network, addr string) {
			connectStart = time.Now()
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				now := time.Now()
				timings.TCPConnectMs = msBetween(connectStart, now)
				lastPhaseEnd = now
			}
		},
		TLSHandshakeStart: func() {
			tlsStart = time.Now()
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err == nil {
				now := time.Now()
				timings.TLSHandshakeMs = msBetween(tlsStart, now)
				lastPhaseEnd = now
			}
		},
		GotFirstResponseByte: func() {
			// Measured from the end of the last completed phase, so setup
			// time is not double-counted.
			timings.TimeToFirstByteMs = msBetween(lastPhaseEnd, time.Now())
		},
	}

	req = req.WithContext(httptrace.WithClientTrace(ctx, trace))

	resp, err := p.client.Do(req)
	if err != nil {
		timings.TotalMs = msBetween(start, time.Now())
		return Result{Timings: timings, Err: err}
	}

	transferStart := time.Now()
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	now := time.Now()
	timings.ContentTransferMs = msBetween(transferStart, now)
	timings.TotalMs = msBetween(start, now)

	if readErr != nil {
		return Result{StatusCode: resp.StatusCode, Timings: timings, Err: fmt.Errorf("failed to read response body: %w", readErr)}
	}

	return Result{StatusCode: resp.StatusCode, BodyBytes: len(body), Timings: timings}
}

func msBetween(from, to time.Time) float64 {
	return float64(to.Sub(from)) / float64(time.Millisecond)
}
