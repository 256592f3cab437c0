package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opspulse/pulse/internal/output"
	"github.com/opspulse/pulse/internal/probe"
	"github.com/opspulse/pulse/telemetry"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe a live endpoint and report request timings",
	Long: `Probe sends a series of GET requests to one URL, records each
request's duration in the telemetry engine, and prints the resulting
statistics with a benchmark verdict. Verbose mode adds per-request
phase timings (DNS, connect, TLS, time to first byte).

The default metric name matches the stock network-request benchmark,
so probe results get threshold verdicts without any configuration.

Example:
  pulse probe --url https://example.com --count 10`,
	Run: runProbe,
}

func init() {
	probeCmd.Flags().StringP("url", "u", "", "URL to probe (required)")
	probeCmd.Flags().IntP("count", "n", 5, "Number of requests to send")
	probeCmd.Flags().String("name", "", "Metric name for recorded requests")
	probeCmd.Flags().Duration("timeout", 30*time.Second, "Per-request timeout")
	probeCmd.MarkFlagRequired("url")
}

func runProbe(cmd *cobra.Command, args []string) {
	url, _ := cmd.Flags().GetString("url")
	count, _ := cmd.Flags().GetInt("count")
	name, _ := cmd.Flags().GetString("name")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	// Resolve the name here so the stats lookup below uses the same key the
	// prober records under.
	if name == "" {
		name = probe.DefaultMetricName
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	engine := telemetry.New()
	prober := probe.New(probe.Config{
		Engine:  engine,
		Timeout: timeout,
		Logger:  logger,
	})

	results, err := prober.Run(context.Background(), url, name, count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		printProbeResults(results)
	}

	failures := countFailures(results)
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d requests failed\n", failures, len(results))
	}

	printer := output.NewPrinter(output.PrinterConfig{NoColor: noColor})
	if stats := engine.CalculateStats(name); stats != nil {
		printer.PrintStats(name, stats, engine.CheckBenchmark(name, stats.Average))
	}

	if len(results) > 0 && failures == len(results) {
		os.Exit(1)
	}
}

func printProbeResults(results []probe.Result) {
	for i, res := range results {
		if res.Err != nil {
			fmt.Printf("  request %d: error: %v\n", i+1, res.Err)
			continue
		}
		fmt.Printf("  request %d: status %d, %d bytes (dns %.1fms, connect %.1fms, tls %.1fms, ttfb %.1fms, total %.1fms)\n",
			i+1, res.StatusCode, res.BodyBytes,
			res.Timings.DNSLookupMs, res.Timings.TCPConnectMs, res.Timings.TLSHandshakeMs,
			res.Timings.TimeToFirstByteMs, res.Timings.TotalMs)
	}
}

func countFailures(results []probe.Result) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}
