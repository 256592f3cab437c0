package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opspulse/pulse/internal/config"
	"github.com/opspulse/pulse/internal/output"
	"github.com/opspulse/pulse/internal/replay"
	"github.com/opspulse/pulse/telemetry"
	"github.com/opspulse/pulse/telemetry/report"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay recorded observation windows and write a report",
	Long: `Replay feeds each window of a scenario file through the telemetry
engine, snapshots after every window, detects regressions between the
last two windows, and writes a report in the configured formats.

The command exits with status 1 when a critical regression is detected,
so replay runs can gate CI pipelines.

Example:
  pulse replay --config scenario.yaml --output reports --format json --format html`,
	Run: runReplay,
}

func init() {
	replayCmd.Flags().StringP("config", "c", "", "Scenario file to replay (required)")
	replayCmd.Flags().StringP("output", "o", "", "Directory reports are written into (overrides the scenario)")
	replayCmd.Flags().StringSlice("format", nil, "Report formats to write: json, csv, html, markdown (overrides the scenario)")
	replayCmd.MarkFlagRequired("config")
}

func runReplay(cmd *cobra.Command, args []string) {
	configPath, _ := cmd.Flags().GetString("config")
	outputDir, _ := cmd.Flags().GetString("output")
	formatNames, _ := cmd.Flags().GetStringSlice("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	scenario, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		os.Exit(1)
	}

	if outputDir != "" {
		scenario.Output.Dir = outputDir
	}
	if len(formatNames) > 0 {
		scenario.Output.Formats = formatNames
	}

	formats, err := scenario.Formats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	printer := output.NewPrinter(output.PrinterConfig{NoColor: noColor})
	engine := telemetry.NewWithConfig(scenario.EngineConfig(logger))

	rep, err := replayScenario(engine, scenario, filepath.Dir(configPath), printer, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := exportReport(rep, formats, scenario.Output.Dir, scenario.Title, printer); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	if hasCriticalRegressions(rep.Regressions) {
		os.Exit(1)
	}
}

// replayScenario feeds every window through the engine, one snapshot per
// window, and builds the report from the last snapshot plus the regressions
// detected between the final two windows.
func replayScenario(engine *telemetry.Engine, scenario *config.Scenario, baseDir string, printer *output.Printer, logger *zap.Logger) (*report.Report, error) {
	var last *telemetry.Snapshot
	for _, window := range scenario.Windows {
		source := config.ResolveSource(baseDir, window.Source)

		result, err := replay.ReadFile(source, logger)
		if err != nil {
			return nil, fmt.Errorf("window %q: %w", window.Label, err)
		}

		for _, obs := range result.Observations {
			engine.Record(obs.Name, obs.DurationMs, obs.Category, obs.Metadata)
		}
		printer.PrintWindow(window.Label, len(result.Observations), result.Skipped)

		// Snapshot then clear so each window is measured in isolation.
		last = engine.CreateSnapshot()
		engine.Clear()
	}

	rep := report.Generate(last, engine.DetectRegressions(), scenario.Title)
	printer.PrintReport(rep)
	return rep, nil
}

// exportReport renders the report in each requested format and writes one
// file per format under dir, named after the report title.
func exportReport(rep *report.Report, formats []report.Format, dir, title string, printer *output.Printer) error {
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	base := slug(title)
	for _, f := range formats {
		rendered, err := report.Export(rep, f)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, base+f.Ext())
		if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("failed to write %s report: %w", f, err)
		}
		printer.PrintExported(path)
	}
	return nil
}

// slug derives a file name stem from a report title.
func slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	if s == "" {
		return "report"
	}
	return s
}

func hasCriticalRegressions(alerts []telemetry.RegressionAlert) bool {
	for _, alert := range alerts {
		if alert.Severity == telemetry.StatusCritical {
			return true
		}
	}
	return false
}
