package config

import "github.com/opspulse/pulse/pkg/jsonschema"

// scenarioSchemaJSON is the structural contract for scenario files.
// Unknown keys are rejected so typos fail loudly. Rules the schema cannot
// express (known categories, parseable formats, threshold ordering,
// duplicate labels) live in Scenario.Validate.
const scenarioSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "required": ["title", "windows"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "regressionThreshold": {"type": "number"},
    "strictDurations": {"type": "boolean"},
    "benchmarks": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name", "category"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "targetMs": {"type": "number"},
          "warningThresholdMs": {"type": "number"},
          "criticalThresholdMs": {"type": "number"}
        }
      }
    },
    "windows": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["label", "source"],
        "properties": {
          "label": {"type": "string", "minLength": 1},
          "source": {"type": "string", "minLength": 1}
        }
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "formats": {
          "type": "array",
          "items": {"type": "string"}
        },
        "dir": {"type": "string"}
      }
    }
  }
}`

var scenarioSchema = jsonschema.MustNew("scenario.json", scenarioSchemaJSON)
