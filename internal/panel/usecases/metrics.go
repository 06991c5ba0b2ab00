package usecases

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _instrumentationName = "patient-panel"

var (
	submissionsTotal  metric.Int64Counter
	remoteCallSeconds metric.Float64Histogram
	metricsOnce       sync.Once
)

func initMetrics() {
	metricsOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter(_instrumentationName)

		var err error
		submissionsTotal, err = meter.Int64Counter(
			"patient_panel.submissions.total",
			metric.WithDescription("Patient submissions by outcome"),
		)
		if err != nil {
			panic(err)
		}

		remoteCallSeconds, err = meter.Float64Histogram(
			"patient_panel.remote.call.duration.seconds",
			metric.WithDescription("Duration of remote store calls"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
		)
		if err != nil {
			panic(err)
		}
	})
}

func recordSubmission(ctx context.Context, state SubmissionState) {
	initMetrics()
	submissionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(state))))
}

func recordRemoteCall(ctx context.Context, op string, seconds float64, err error) {
	initMetrics()
	remoteCallSeconds.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Bool("error", err != nil),
	))
}
