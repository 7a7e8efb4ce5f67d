// Package telemetry provides hierarchical timing collection for operations.
//
// Collectors and the timer of the operation in progress travel through the
// context, so instrumented code does not need extra parameters:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	ctx, timer := telemetry.StartTimer(ctx, "check main.ledger")
//	defer timer.End()
//
//	// Nested operations started from ctx appear below "check main.ledger".
//	_, child := telemetry.StartTimer(ctx, "parse tree")
//	child.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/ptaledger/output"
)

type contextKey int

const (
	collectorKey contextKey = iota
	timerKey
)

// Collector collects timings of named operations.
type Collector interface {
	// Start begins timing a top-level operation.
	Start(name string) Timer

	// Report writes the collected timings. styles may be nil for plain output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation.
type Timer interface {
	// End stops the timer. Calling End more than once has no effect.
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector stored in ctx, or a collector that
// records nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithTimer marks timer as the operation in progress for ctx.
func WithTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, timerKey, timer)
}

// TimerFromContext returns the operation in progress, if any.
func TimerFromContext(ctx context.Context) (Timer, bool) {
	timer, ok := ctx.Value(timerKey).(Timer)
	return timer, ok
}

// StartTimer starts a timer nested under the operation in progress, or a new
// top-level operation when there is none. The returned context carries the
// new timer.
func StartTimer(ctx context.Context, name string) (context.Context, Timer) {
	var timer Timer
	if parent, ok := TimerFromContext(ctx); ok {
		timer = parent.Child(name)
	} else {
		timer = FromContext(ctx).Start(name)
	}
	return WithTimer(ctx, timer), timer
}
