package pubsub

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/trace"
)

type TraceHeaders struct {
	TraceID    string `json:"trace_id"`
	SpanID     string `json:"span_id"`
	TraceFlags string `json:"trace_flags"`
}

// ExtractTraceFromContext returns the span context of ctx in a serializable form.
func ExtractTraceFromContext(ctx context.Context) TraceHeaders {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return TraceHeaders{}
	}

	return TraceHeaders{
		TraceID:    spanCtx.TraceID().String(),
		SpanID:     spanCtx.SpanID().String(),
		TraceFlags: strconv.FormatUint(uint64(spanCtx.TraceFlags()), 16),
	}
}

// InjectTraceIntoContext returns ctx carrying headers as a remote span context.
// Invalid or empty headers leave ctx unchanged.
func InjectTraceIntoContext(ctx context.Context, headers TraceHeaders) context.Context {
	if headers.TraceID == "" || headers.SpanID == "" {
		return ctx
	}

	traceID, err := trace.TraceIDFromHex(headers.TraceID)
	if err != nil {
		return ctx
	}

	spanID, err := trace.SpanIDFromHex(headers.SpanID)
	if err != nil {
		return ctx
	}

	var traceFlags trace.TraceFlags
	if headers.TraceFlags != "" {
		if flags, err := strconv.ParseUint(headers.TraceFlags, 16, 8); err == nil {
			traceFlags = trace.TraceFlags(flags)
		}
	}

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: traceFlags,
		Remote:     true,
	})

	return trace.ContextWithSpanContext(ctx, spanCtx)
}
