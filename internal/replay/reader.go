// Package replay reads recorded observation streams (JSON Lines) so
// previously captured sessions can be fed through the telemetry engine.
package replay

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/opspulse/pulse/telemetry"
)

// maxLineBytes bounds a single observation line; metadata payloads beyond
// this are a recording bug, not a replay concern.
const maxLineBytes = 1 << 20

// Observation is one recorded timed operation as read from a stream.
type Observation struct {
	Name       string
	DurationMs float64
	Category   telemetry.Category
	Metadata   map[string]any

	// OffsetMs is the recording-relative capture time. It is carried for
	// display only; replayed metrics are re-stamped at ingestion time.
	OffsetMs float64
}

// Result is the outcome of reading one stream: the observations that
// parsed, plus a count of lines that did not.
type Result struct {
	Observations []Observation
	Skipped      int
}

// ReadFile reads a JSON Lines observation file.
func ReadFile(path string, logger *zap.Logger) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open observations file: %w", err)
	}
	defer f.Close()

	return Read(f, logger)
}

// Read consumes a JSON Lines stream, one observation per line. Blank lines
// are ignored silently; lines that fail to parse are skipped, logged at
// warn, and counted. Only a transport-level read failure is an error.
func Read(r io.Reader, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := &Result{Observations: []Observation{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		obs, err := parseLine(line)
		if err != nil {
			result.Skipped++
			logger.Warn("skipping observation",
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		result.Observations = append(result.Observations, obs)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read observations: %w", err)
	}

	return result, nil
}

// parseLine extracts one observation. name and durationMs are required;
// category defaults to interaction and must be a known value when present.
func parseLine(line []byte) (Observation, error) {
	if !gjson.ValidBytes(line) {
		return Observation{}, fmt.Errorf("not valid JSON")
	}

	name := gjson.GetBytes(line, "name")
	if name.Type != gjson.String || name.String() == "" {
		return Observation{}, fmt.Errorf("missing or invalid name")
	}

	duration := gjson.GetBytes(line, "durationMs")
	if duration.Type != gjson.Number {
		return Observation{}, fmt.Errorf("missing or invalid durationMs")
	}

	category := telemetry.CategoryInteraction
	if c := gjson.GetBytes(line, "category"); c.Exists() {
		parsed, ok := telemetry.ParseCategory(c.String())
		if !ok {
			return Observation{}, fmt.Errorf("unknown category %q", c.String())
		}
		category = parsed
	}

	obs := Observation{
		Name:       name.String(),
		DurationMs: duration.Float(),
		Category:   category,
		OffsetMs:   gjson.GetBytes(line, "offsetMs").Float(),
	}

	if meta := gjson.GetBytes(line, "metadata"); meta.IsObject() {
		metadata := make(map[string]any)
		meta.ForEach(func(key, value gjson.Result) bool {
			metadata[key.String()] = value.Value()
			return true
		})
		obs.Metadata = metadata
	}

	return obs, nil
}
