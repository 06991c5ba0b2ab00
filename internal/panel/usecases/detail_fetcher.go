package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"patient-panel/internal/panel/domain"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MedicationList is the result of one medications fetch. Error holds the user facing
// message when the fetch failed.
type MedicationList struct {
	PatientID   domain.ID
	Medications []domain.Medication
	Error       string
}

func NewDetailFetcher(remote RemoteStore) *DetailFetcher {
	return &DetailFetcher{
		remote: remote,
	}
}

// DetailFetcher loads the read-only medications of one patient. Every call fetches again.
type DetailFetcher struct {
	remote  RemoteStore
	loading LoadingIndicator
}

func (f *DetailFetcher) Loading() bool {
	return f.loading.Active()
}

func (f *DetailFetcher) Fetch(ctx context.Context, patientID domain.ID) MedicationList {
	ctx, span := otel.Tracer(_instrumentationName).Start(ctx, "panel.fetch_medications",
		trace.WithAttributes(attribute.String("patient.id", patientID.String())),
	)
	defer span.End()
	defer f.loading.Begin()()

	result := MedicationList{PatientID: patientID}

	start := time.Now()
	raw, err := f.remote.LoadPatientMedications(ctx, patientID)
	recordRemoteCall(ctx, "load_patient_medications", time.Since(start).Seconds(), err)
	if err != nil {
		remoteErr := toRemoteError("loading patient medications", err)
		slog.Error("loading patient medications",
			slog.String("patient_id", patientID.String()),
			slog.String("error", remoteErr.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote read failed")
		result.Error = remoteErr.Message
		return result
	}

	medications, err := flattenMedications(raw)
	if err != nil {
		slog.Error("parsing patient medications",
			slog.String("patient_id", patientID.String()),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed response")
		result.Error = err.Error()
		return result
	}

	result.Medications = medications
	return result
}

func flattenMedications(raw []domain.PatientMedication) ([]domain.Medication, error) {
	result := make([]domain.Medication, 0, len(raw))
	for _, pm := range raw {
		medication, err := pm.Flatten()
		if err != nil {
			return nil, fmt.Errorf("flattening medications: %w", err)
		}
		result = append(result, medication)
	}
	return result, nil
}
