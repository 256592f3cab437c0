package report

import (
	"encoding/json"
	"fmt"
)

// ExportJSON renders the canonical structural form of the report,
// pretty-printed with two-space indentation.
func ExportJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}
