package telemetry

import "time"

// Category classifies a timed operation.
type Category string

const (
	// CategoryRender covers UI paint and layout work.
	CategoryRender Category = "render"

	// CategoryUpdate covers state mutations and reconciliation.
	CategoryUpdate Category = "update"

	// CategoryGeneration covers derived-artifact production such as form
	// or code generation.
	CategoryGeneration Category = "generation"

	// CategoryInteraction covers direct user-input handling.
	CategoryInteraction Category = "interaction"

	// CategoryNetwork covers remote calls.
	CategoryNetwork Category = "network"
)

// Categories returns every known category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryRender,
		CategoryUpdate,
		CategoryGeneration,
		CategoryInteraction,
		CategoryNetwork,
	}
}

// ParseCategory maps a raw string onto a known Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryRender, CategoryUpdate, CategoryGeneration, CategoryInteraction, CategoryNetwork:
		return Category(s), true
	}
	return "", false
}

// Metric is one timed observation of a named operation.
//
// A Metric is immutable once recorded: the engine never mutates one, and it
// only disappears through capacity eviction or an explicit clear.
type Metric struct {
	// Name identifies the operation. Many observations share one name.
	Name string `json:"name"`

	// DurationMs is the caller-measured elapsed time in milliseconds. The
	// engine stores whatever the caller supplied; see Config.StrictDurations
	// for the opt-in validation mode.
	DurationMs float64 `json:"durationMs"`

	// Timestamp is when the observation was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Category classifies the operation.
	Category Category `json:"category"`

	// Metadata carries caller-supplied context. It is opaque to the engine
	// and used only for display.
	Metadata map[string]any `json:"metadata,omitempty"`
}
