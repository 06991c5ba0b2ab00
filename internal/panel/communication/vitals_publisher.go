package communication

import (
	"context"
	"fmt"
	"patient-panel/internal/infra/pubsub"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/usecases"
	"patient-panel/internal/shared_kernel/avro"
)

const (
	VitalsRecordedTopic pubsub.Topic = "patient_vitals_recorded"
)

func NewVitalsEventPublisher(factory pubsub.PublisherFactory) (*VitalsEventPublisher, error) {
	publisher, err := factory.New(VitalsRecordedTopic, &avro.AvroVitalsRecorded{})
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}
	return &VitalsEventPublisher{
		publisher: publisher,
	}, nil
}

var _ usecases.VitalsPublisher = (*VitalsEventPublisher)(nil)

type VitalsEventPublisher struct {
	publisher pubsub.Publisher
}

func (p *VitalsEventPublisher) Publish(ctx context.Context, event domain.VitalsRecorded) error {
	message := avro.ToAvroVitalsRecorded(event)
	headers := pubsub.ExtractTraceFromContext(ctx)
	message.TraceID = headers.TraceID
	message.SpanID = headers.SpanID

	if err := p.publisher.Publish(ctx, pubsub.Key(event.PatientID), message); err != nil {
		return fmt.Errorf("publishing recorded vitals: %w", err)
	}

	return nil
}
