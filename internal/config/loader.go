package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultRegressionThreshold matches the engine default so scenario files
// may omit the field.
const defaultRegressionThreshold = 0.15

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes scenario YAML, applies defaults, and validates the result.
//
// The YAML document is re-encoded as JSON so the embedded schema can check
// its shape; the same canonical bytes are then decoded into the struct,
// which keeps the schema and the decoder looking at identical input.
func Parse(data []byte) (*Scenario, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	canonical, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenario: %w", err)
	}

	if errs := scenarioSchema.ValidateJSON(canonical); len(errs) > 0 {
		return nil, fmt.Errorf("invalid scenario: %w", errs)
	}

	var sc Scenario
	if err := json.Unmarshal(canonical, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	sc.applyDefaults()

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// applyDefaults fills the optional fields a scenario file may omit.
func (s *Scenario) applyDefaults() {
	if s.RegressionThreshold <= 0 {
		s.RegressionThreshold = defaultRegressionThreshold
	}
	if len(s.Output.Formats) == 0 {
		s.Output.Formats = []string{"json"}
	}
	if s.Output.Dir == "" {
		s.Output.Dir = "."
	}
}
