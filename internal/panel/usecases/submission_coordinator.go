package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"patient-panel/internal/panel/domain"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionValidating SubmissionState = "validating"
	SubmissionBlocked    SubmissionState = "blocked"
	SubmissionWriting    SubmissionState = "writing"
	SubmissionApplied    SubmissionState = "applied"
	SubmissionFailed     SubmissionState = "failed"
)

type SubmissionOutcome struct {
	PatientID domain.ID
	State     SubmissionState
	Patient   domain.Patient
	Errors    *domain.ErrorEntry
}

func NewSubmissionCoordinator(
	remote RemoteStore,
	notifier Notifier,
	publisher VitalsPublisher,
	records *RecordStore,
	drafts *DraftTracker,
	registry *ErrorRegistry,
) *SubmissionCoordinator {
	return &SubmissionCoordinator{
		remote:    remote,
		notifier:  notifier,
		publisher: publisher,
		records:   records,
		drafts:    drafts,
		registry:  registry,
		inFlight:  make(map[domain.ID]struct{}),
	}
}

// SubmissionCoordinator runs one submission per patient: validate, write, merge, clean up, notify.
type SubmissionCoordinator struct {
	remote    RemoteStore
	notifier  Notifier
	publisher VitalsPublisher
	records   *RecordStore
	drafts    *DraftTracker
	registry  *ErrorRegistry
	loading   LoadingIndicator

	mu       sync.Mutex
	inFlight map[domain.ID]struct{}
}

func (c *SubmissionCoordinator) Loading() bool {
	return c.loading.Active()
}

// Writing reports whether a remote write for the patient is outstanding.
func (c *SubmissionCoordinator) Writing(id domain.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.inFlight[id]
	return ok
}

// Submit submits the patient's draft. Validation failures are not errors: they come back as a
// blocked outcome and an ErrorRegistry entry.
func (c *SubmissionCoordinator) Submit(ctx context.Context, id domain.ID) (SubmissionOutcome, error) {
	ctx, span := otel.Tracer(_instrumentationName).Start(ctx, "panel.submit",
		trace.WithAttributes(attribute.String("patient.id", id.String())),
	)
	defer span.End()

	outcome := SubmissionOutcome{PatientID: id, State: SubmissionIdle}

	if _, err := c.records.IndexOf(id); err != nil {
		return outcome, err
	}

	release, err := c.acquire(id)
	if err != nil {
		return outcome, err
	}
	defer release()

	outcome.State = SubmissionValidating
	draft, ok := c.drafts.Get(id)
	if !ok || draft.Changes.IsEmpty() {
		return outcome, fmt.Errorf("patient %s: %w", id, ErrNoPendingChanges)
	}

	validationErrors := domain.ValidateVitals(draft.Changes)
	c.registry.Set(id, validationErrors)
	if entry, blocked := c.registry.Get(id); blocked {
		slog.Debug("patient submission blocked by validation",
			slog.String("patient_id", id.String()),
			slog.Int("errors", len(entry.Messages)))
		outcome.State = SubmissionBlocked
		outcome.Errors = &entry
		outcome.Patient, _ = c.records.Get(id)
		span.SetAttributes(attribute.String("submission.state", string(outcome.State)))
		recordSubmission(ctx, outcome.State)
		return outcome, nil
	}

	outcome.State = SubmissionWriting
	fields, err := c.write(ctx, id, draft.Changes)
	if err != nil {
		outcome.State = SubmissionFailed
		outcome.Patient, _ = c.records.Get(id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote write failed")
		recordSubmission(ctx, outcome.State)
		slog.Error("submitting patient", slog.String("patient_id", id.String()), slog.String("error", err.Error()))
		return outcome, err
	}

	patient, err := c.records.Merge(id, fields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "merging remote response")
		return outcome, fmt.Errorf("merging remote response: %w", err)
	}

	if c.drafts.Consume(draft) {
		if err := c.records.SetSubmitDisabled(id, true); err != nil {
			return outcome, fmt.Errorf("disabling submission: %w", err)
		}
		patient.SubmitDisabled = true
	}

	outcome.State = SubmissionApplied
	outcome.Patient = patient
	span.SetAttributes(attribute.String("submission.state", string(outcome.State)))
	recordSubmission(ctx, outcome.State)

	slog.Info("patient updated successfully", slog.String("patient_id", id.String()))

	if err := c.notifier.Notify(ctx, domain.NewPatientUpdatedToast(id)); err != nil {
		slog.Warn("notifying patient update", slog.String("error", err.Error()))
	}

	if c.publisher != nil {
		if err := c.publisher.Publish(ctx, domain.NewVitalsRecorded(patient)); err != nil {
			slog.Warn("publishing recorded vitals", slog.String("patient_id", id.String()), slog.String("error", err.Error()))
		}
	}

	return outcome, nil
}

func (c *SubmissionCoordinator) write(ctx context.Context, id domain.ID, change domain.VitalsChange) (domain.PatientFields, error) {
	defer c.loading.Begin()()

	start := time.Now()
	fields, err := c.remote.UpdatePatient(ctx, id, change)
	recordRemoteCall(ctx, "update_patient", time.Since(start).Seconds(), err)
	if err != nil {
		return domain.PatientFields{}, toRemoteError("updating patient", err)
	}

	return fields, nil
}

func (c *SubmissionCoordinator) acquire(id domain.ID) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[id]; busy {
		return nil, fmt.Errorf("patient %s: %w", id, ErrSubmissionInFlight)
	}
	c.inFlight[id] = struct{}{}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.inFlight, id)
	}, nil
}
