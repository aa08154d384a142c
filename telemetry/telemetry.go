// Package telemetry provides observability ports for reporting on a run:
// structured logging, counter/histogram metrics, and tracing spans. The
// interpreter reports through Logger only; Metrics and Tracer are not called
// by the interpreter or the CLI. Concrete implementations delegate to
// Clue/OpenTelemetry or discard everything (Noop).
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Logger captures structured logging emitted while a program runs.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
}

// Metrics exposes counter, timer, and gauge helpers for run instrumentation.
type Metrics interface {
	IncCounter(name string, value float64, tags ...string)
	RecordTimer(name string, duration time.Duration, tags ...string)
	RecordGauge(name string, value float64, tags ...string)
}

// Tracer abstracts span creation so interpreter code stays agnostic of the
// underlying OpenTelemetry provider.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
	Span(ctx context.Context) Span
}

// Span represents an in-flight tracing span.
type Span interface {
	End(opts ...trace.SpanEndOption)
	AddEvent(name string, attrs ...any)
	SetStatus(code codes.Code, description string)
	RecordError(err error, opts ...trace.EventOption)
}

// ToolCallTelemetry captures observability metadata for a single tool call.
type ToolCallTelemetry struct {
	// Tool is the name of the called tool.
	Tool string
	// DurationMs is the wall-clock execution time in milliseconds.
	DurationMs int64
	// OutputBytes is the length of the tool's raw output payload.
	OutputBytes int
	// Failed reports whether the call returned an error.
	Failed bool
}
