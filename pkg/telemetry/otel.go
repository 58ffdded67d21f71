package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for the reactive core.
const defaultTracerName = "rynex"

// Tracer wraps flush and patch cycles in OpenTelemetry spans.
// Without a configured OpenTelemetry SDK the spans are no-ops.
type Tracer struct {
	tracer trace.Tracer
}

// TracerOption configures a Tracer.
type TracerOption func(*tracerConfig)

type tracerConfig struct {
	name string
}

// WithTracerName sets the tracer name (default: "rynex").
func WithTracerName(name string) TracerOption {
	return func(c *tracerConfig) {
		c.name = name
	}
}

// NewTracer creates a Tracer using the global tracer provider.
func NewTracer(opts ...TracerOption) *Tracer {
	cfg := tracerConfig{name: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tracer{
		tracer: otel.Tracer(cfg.name),
	}
}

// StartFlush opens a span covering one flush cycle. Call the returned
// end function with the number of effects run when the flush completes.
func (t *Tracer) StartFlush(ctx context.Context) (context.Context, func(effectsRun int)) {
	ctx, span := t.tracer.Start(ctx, "rynex.flush",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, func(effectsRun int) {
		span.SetAttributes(attribute.Int("rynex.effects_run", effectsRun))
		span.End()
	}
}

// FlushSpans adapts a Tracer to the scheduler's instrument hook: a span
// opens when a flush starts and closes, carrying the effect count, when
// it completes. Install with rynex.SetInstrument.
type FlushSpans struct {
	tracer *Tracer
	end    func(effectsRun int)
}

// NewFlushSpans creates the flush-span instrument for tracer.
func NewFlushSpans(tracer *Tracer) *FlushSpans {
	return &FlushSpans{tracer: tracer}
}

// FlushStarted implements rynex.Instrument.
func (f *FlushSpans) FlushStarted() {
	_, f.end = f.tracer.StartFlush(context.Background())
}

// FlushCompleted implements rynex.Instrument.
func (f *FlushSpans) FlushCompleted(effectsRun int) {
	if f.end != nil {
		f.end(effectsRun)
		f.end = nil
	}
}

// EffectRan implements rynex.Instrument.
func (f *FlushSpans) EffectRan() {}

// EffectFailed implements rynex.Instrument.
func (f *FlushSpans) EffectFailed() {}

// StartPatch opens a span covering one patch application. Call the
// returned end function with the outcome.
func (t *Tracer) StartPatch(ctx context.Context) (context.Context, func(err error)) {
	ctx, span := t.tracer.Start(ctx, "rynex.patch",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
