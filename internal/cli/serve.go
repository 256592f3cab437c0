package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opspulse/pulse/internal/config"
	"github.com/opspulse/pulse/internal/replay"
	"github.com/opspulse/pulse/internal/server"
	"github.com/opspulse/pulse/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the telemetry engine as a JSON HTTP API",
	Long: `Serve starts an HTTP server exposing metric ingestion, statistics,
live percentiles, snapshots, regression detection, the benchmark
registry, and report rendering under /api/v1.

With --config, the scenario's windows are replayed into the engine
before the server starts, so snapshot history and regression detection
are populated from the first request. The server runs until interrupted
and shuts down gracefully.

Example:
  pulse serve --addr :8080 --config scenario.yaml`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringP("config", "c", "", "Scenario file to preload into the engine")
}

func runServe(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := newServerLogger(verbose)
	defer logger.Sync()

	engine := telemetry.New()
	if configPath != "" {
		scenario, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
			os.Exit(1)
		}

		engine = telemetry.NewWithConfig(scenario.EngineConfig(logger))
		if err := preloadWindows(engine, scenario, filepath.Dir(configPath), logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error preloading scenario: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:   addr,
		Engine: engine,
		Logger: logger,
	})
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// preloadWindows replays every scenario window into the engine so the API
// starts with snapshot history and live percentiles already populated.
// Per-operation metrics are cleared between windows, same as a replay run,
// so regression detection compares windows rather than one accumulated
// stream. The live histogram is unaffected by Clear and keeps every
// preloaded duration.
func preloadWindows(engine *telemetry.Engine, scenario *config.Scenario, baseDir string, logger *zap.Logger) error {
	for _, window := range scenario.Windows {
		source := config.ResolveSource(baseDir, window.Source)

		result, err := replay.ReadFile(source, logger)
		if err != nil {
			return fmt.Errorf("window %q: %w", window.Label, err)
		}

		for _, obs := range result.Observations {
			engine.Record(obs.Name, obs.DurationMs, obs.Category, obs.Metadata)
		}

		engine.CreateSnapshot()
		engine.Clear()

		logger.Info("preloaded window",
			zap.String("label", window.Label),
			zap.Int("observations", len(result.Observations)),
			zap.Int("skipped", result.Skipped))
	}
	return nil
}
