// Package cli wires the pulse commands: scenario replay, the HTTP report
// server, live endpoint probing, and version.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "pulse",
	Short:   "Performance telemetry for recorded sessions and live endpoints",
	Version: version,
	Long: `Pulse replays recorded observation streams through an in-memory
performance telemetry engine, checks durations against benchmark
thresholds, detects regressions between runs, and renders reports as
JSON, CSV, HTML, or Markdown. It can also serve the engine as an HTTP
API and probe live endpoints with phase-level request timings.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return RootCmd.Execute()
}

// newLogger builds the logger for console commands: silent unless verbose.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newServerLogger builds the logger for serve: human-readable with verbose,
// production JSON otherwise.
func newServerLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable colorized output")

	RootCmd.AddCommand(replayCmd)
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(probeCmd)
	RootCmd.AddCommand(versionCmd)
}
