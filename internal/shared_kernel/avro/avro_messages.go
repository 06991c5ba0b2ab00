package avro

import (
	"fmt"
	"patient-panel/internal/panel/domain"
	"reflect"
	"time"
)

type AvroVitalsRecorded struct {
	PatientID   string    `avro:"patient_id"`
	Temperature *float64  `avro:"temperature"`
	Pulse       *float64  `avro:"pulse"`
	RecordedAt  time.Time `avro:"recorded_at"`
	TraceID     string    `avro:"trace_id"`
	SpanID      string    `avro:"span_id"`
}

func ToAvroVitalsRecorded(event domain.VitalsRecorded) *AvroVitalsRecorded {
	return &AvroVitalsRecorded{
		PatientID:   event.PatientID.String(),
		Temperature: event.Temperature,
		Pulse:       event.Pulse,
		RecordedAt:  event.RecordedAt.UTC().Truncate(time.Millisecond),
	}
}

func (m AvroVitalsRecorded) ToDomain() domain.VitalsRecorded {
	return domain.VitalsRecorded{
		PatientID:   domain.ID(m.PatientID),
		Temperature: m.Temperature,
		Pulse:       m.Pulse,
		RecordedAt:  m.RecordedAt,
	}
}

func toAvroStruct(value any) (any, error) {
	switch v := value.(type) {
	case AvroVitalsRecorded, *AvroVitalsRecorded:
		return v, nil
	case domain.VitalsRecorded:
		return ToAvroVitalsRecorded(v), nil
	case *domain.VitalsRecorded:
		return ToAvroVitalsRecorded(*v), nil
	default:
		return nil, fmt.Errorf("%T: %w", value, ErrUnsupportedPrototype)
	}
}

func avroType(prototype reflect.Type) reflect.Type {
	if prototype == reflect.TypeOf(domain.VitalsRecorded{}) {
		return reflect.TypeOf(AvroVitalsRecorded{})
	}
	return prototype
}
