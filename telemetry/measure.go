package telemetry

import (
	"context"
	"time"
)

// Measure times fn and records the elapsed duration under name. Recording is
// guaranteed by a defer, so it happens on success, failure, and even when fn
// panics. When fn returns a non-nil error the stored metadata is tagged with
// error=true, and the error is returned unchanged - instrumentation never
// swallows a functional failure.
func (e *Engine) Measure(name string, category Category, fn func() error, metadata map[string]any) error {
	start := time.Now()
	var err error
	defer func() {
		e.recordMeasured(name, category, time.Since(start), metadata, err)
	}()

	err = fn()
	return err
}

// MeasureContext is Measure for context-aware work. ctx passes through to fn
// untouched: the engine neither cancels nor applies deadlines, so work that
// outlives its context is simply recorded with the duration it took.
func (e *Engine) MeasureContext(ctx context.Context, name string, category Category, fn func(context.Context) error, metadata map[string]any) error {
	start := time.Now()
	var err error
	defer func() {
		e.recordMeasured(name, category, time.Since(start), metadata, err)
	}()

	err = fn(ctx)
	return err
}

// MeasureValue times fn for work that produces a value, with the same
// always-record and error-tagging contract as Engine.Measure. The value and
// error are returned exactly as fn produced them.
func MeasureValue[T any](e *Engine, name string, category Category, fn func() (T, error), metadata map[string]any) (T, error) {
	start := time.Now()
	var (
		result T
		err    error
	)
	defer func() {
		e.recordMeasured(name, category, time.Since(start), metadata, err)
	}()

	result, err = fn()
	return result, err
}

// recordMeasured stores a helper-timed observation. The caller's metadata is
// copied before the error tag is added, so the original map is never
// mutated.
func (e *Engine) recordMeasured(name string, category Category, elapsed time.Duration, metadata map[string]any, err error) {
	tagged := copyMetadata(metadata)
	if err != nil {
		if tagged == nil {
			tagged = make(map[string]any, 1)
		}
		tagged["error"] = true
	}
	e.record(name, float64(elapsed)/float64(time.Millisecond), category, tagged)
}
