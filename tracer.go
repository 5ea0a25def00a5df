package dynamiq

import (
	"context"

	// Packages
	attribute "go.opentelemetry.io/otel/attribute"
	codes "go.opentelemetry.io/otel/codes"
	trace "go.opentelemetry.io/otel/trace"
)

//////////////////////////////////////////////////////////////////////////////
// TYPES

// tracer traces broker request attempts. It is safe for concurrent use.
type tracer struct {
	TraceFn
	otel trace.Tracer
}

// TraceFn is a function which is called after each request attempt, with
// the execution context, the method and URL, the response status, and the
// error if any was generated. The status is zero when the attempt failed
// at the transport level.
type TraceFn func(context.Context, string, string, int, error)

//////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTracer creates a new request tracer with a callback function.
func NewTracer(fn TraceFn) *tracer {
	return &tracer{
		TraceFn: fn,
	}
}

// NewOTELTracer creates a new request tracer that emits OpenTelemetry spans.
// Each request attempt will create a new client span.
func NewOTELTracer(t trace.Tracer) *tracer {
	return &tracer{
		otel: t,
	}
}

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Start begins tracing one request attempt. The returned function ends the
// span and invokes the callback with the outcome. Safe to call on a nil
// tracer, in which case both are no-ops.
func (t *tracer) Start(ctx context.Context, method, url string) (context.Context, func(int, error)) {
	if t == nil {
		return ctx, func(int, error) {}
	}

	var span trace.Span
	if t.otel != nil {
		ctx, span = t.otel.Start(ctx, "dynamiq.request",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", method),
				attribute.String("url.full", url),
			),
		)
	}

	return ctx, func(status int, err error) {
		if span != nil {
			if status != 0 {
				span.SetAttributes(attribute.Int("http.response.status_code", status))
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}
		if t.TraceFn != nil {
			t.TraceFn(ctx, method, url, status, err)
		}
	}
}
