package pubsub_test

import (
	"context"
	"patient-panel/internal/infra/pubsub"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var _ = ginkgo.Describe("Trace Propagation", func() {
	var (
		tp   *trace.TracerProvider
		ctx  context.Context
		span oteltrace.Span
	)

	ginkgo.BeforeEach(func() {
		tp = trace.NewTracerProvider(
			trace.WithSpanProcessor(tracetest.NewSpanRecorder()),
		)
		ctx, span = tp.Tracer("test").Start(context.Background(), "test.span")
	})

	ginkgo.AfterEach(func() {
		span.End()
		_ = tp.Shutdown(context.Background())
	})

	ginkgo.It("should carry the span context through headers", func() {
		headers := pubsub.ExtractTraceFromContext(ctx)
		gomega.Expect(headers.TraceID).To(gomega.Equal(span.SpanContext().TraceID().String()))
		gomega.Expect(headers.SpanID).To(gomega.Equal(span.SpanContext().SpanID().String()))

		restored := oteltrace.SpanContextFromContext(pubsub.InjectTraceIntoContext(context.Background(), headers))

		gomega.Expect(restored.IsRemote()).To(gomega.BeTrue())
		gomega.Expect(restored.TraceID()).To(gomega.Equal(span.SpanContext().TraceID()))
		gomega.Expect(restored.SpanID()).To(gomega.Equal(span.SpanContext().SpanID()))
		gomega.Expect(restored.TraceFlags()).To(gomega.Equal(span.SpanContext().TraceFlags()))
	})

	ginkgo.It("should return empty headers without a span", func() {
		gomega.Expect(pubsub.ExtractTraceFromContext(context.Background())).To(gomega.Equal(pubsub.TraceHeaders{}))
	})

	ginkgo.It("should ignore invalid headers", func() {
		ctx := context.Background()
		result := pubsub.InjectTraceIntoContext(ctx, pubsub.TraceHeaders{TraceID: "zz", SpanID: "zz"})
		gomega.Expect(result).To(gomega.Equal(ctx))
	})
})
