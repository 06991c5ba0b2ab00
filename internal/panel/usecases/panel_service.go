package usecases

//go:generate mockgen -source=./panel_service.go -destination=../../../test/unit/doubles/panel/usecases/panel_service_mock.go -package=usecases -mock_names=PanelService=MockPanelService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"patient-panel/internal/panel/domain"
	"sync"
	"time"
)

const _detailViewSize = "small"

type PanelService interface {
	LoadPatients(ctx context.Context) ([]PanelRow, error)
	ListRows(ctx context.Context) []PanelRow
	ApplyDraftEdits(ctx context.Context, drafts []domain.Draft) ([]PanelRow, error)
	HandleRowAction(ctx context.Context, action domain.RowAction) (ActionResult, error)
	FetchMedications(ctx context.Context, id domain.ID) (DetailView, error)
	Status(ctx context.Context) PanelStatus
}

// PanelRow is a patient as the rendering layer shows it, with its blocking errors if any.
type PanelRow struct {
	Patient domain.Patient
	Errors  *domain.ErrorEntry
}

// DetailView is the transient medications view opened for one patient.
type DetailView struct {
	Label string
	Size  string
	MedicationList
}

type ActionResult struct {
	Action     domain.RowActionName
	Submission *SubmissionOutcome
	Detail     *DetailView
}

type PanelStatus struct {
	LoadingPatients bool
	Submitting      bool
	LoadingDetails  bool
	LastError       string
}

var ErrUnsupportedRowAction = errors.New("unsupported row action")

func NewPanelService(remote RemoteStore, notifier Notifier, publisher VitalsPublisher) *SimplePanelService {
	records := NewRecordStore()
	drafts := NewDraftTracker()
	registry := NewErrorRegistry()

	return &SimplePanelService{
		remote:      remote,
		records:     records,
		drafts:      drafts,
		registry:    registry,
		coordinator: NewSubmissionCoordinator(remote, notifier, publisher, records, drafts, registry),
		details:     NewDetailFetcher(remote),
	}
}

var _ PanelService = (*SimplePanelService)(nil)

type SimplePanelService struct {
	remote      RemoteStore
	records     *RecordStore
	drafts      *DraftTracker
	registry    *ErrorRegistry
	coordinator *SubmissionCoordinator
	details     *DetailFetcher
	loading     LoadingIndicator

	mu        sync.RWMutex
	lastError string
}

func (s *SimplePanelService) LoadPatients(ctx context.Context) ([]PanelRow, error) {
	defer s.loading.Begin()()

	start := time.Now()
	patients, err := s.remote.LoadPatients(ctx)
	recordRemoteCall(ctx, "load_patients", time.Since(start).Seconds(), err)
	if err != nil {
		remoteErr := toRemoteError("loading patients", err)
		slog.Error("loading patients", slog.String("error", remoteErr.Error()))
		s.setLastError(remoteErr.Message)
		return nil, remoteErr
	}

	s.records.Load(patients)
	s.drafts.Clear()
	s.registry.Clear()
	s.setLastError("")

	slog.Info("patients loaded", slog.Int("count", len(patients)))

	return s.ListRows(ctx), nil
}

func (s *SimplePanelService) ListRows(_ context.Context) []PanelRow {
	patients := s.records.List()
	entries := s.registry.Snapshot()

	rows := make([]PanelRow, len(patients))
	for i, p := range patients {
		rows[i] = s.toRow(p, entries)
	}
	return rows
}

// ApplyDraftEdits takes the whole outstanding draft list of the rendering layer and enables
// submission for every patient whose draft is new or changed.
func (s *SimplePanelService) ApplyDraftEdits(ctx context.Context, drafts []domain.Draft) ([]PanelRow, error) {
	for _, d := range drafts {
		if _, err := s.records.IndexOf(d.PatientID); err != nil {
			return nil, err
		}
	}

	changed := s.drafts.Replace(drafts)
	for _, id := range changed {
		if err := s.records.SetSubmitDisabled(id, false); err != nil {
			return nil, fmt.Errorf("enabling submission: %w", err)
		}
	}

	slog.Debug("draft edits applied", slog.Int("drafts", len(drafts)), slog.Int("changed", len(changed)))

	return s.ListRows(ctx), nil
}

func (s *SimplePanelService) HandleRowAction(ctx context.Context, action domain.RowAction) (ActionResult, error) {
	result := ActionResult{Action: action.Name()}

	switch a := action.(type) {
	case domain.SubmitAction:
		outcome, err := s.coordinator.Submit(ctx, a.PatientID)
		result.Submission = &outcome
		if err != nil {
			var remoteErr *RemoteError
			if errors.As(err, &remoteErr) {
				s.setLastError(remoteErr.Message)
			}
			return result, err
		}
		if outcome.State == SubmissionApplied {
			s.setLastError("")
		}
		return result, nil

	case domain.ViewDetailAction:
		view, err := s.FetchMedications(ctx, a.PatientID)
		if err != nil {
			return result, err
		}
		result.Detail = &view
		return result, nil

	default:
		return result, fmt.Errorf("%s: %w", action.Name(), ErrUnsupportedRowAction)
	}
}

func (s *SimplePanelService) FetchMedications(ctx context.Context, id domain.ID) (DetailView, error) {
	patient, err := s.records.Get(id)
	if err != nil {
		return DetailView{}, err
	}

	return DetailView{
		Label:          fmt.Sprintf("Medications for %s %s", patient.FirstName, patient.LastName),
		Size:           _detailViewSize,
		MedicationList: s.details.Fetch(ctx, patient.ID),
	}, nil
}

func (s *SimplePanelService) Status(_ context.Context) PanelStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return PanelStatus{
		LoadingPatients: s.loading.Active(),
		Submitting:      s.coordinator.Loading(),
		LoadingDetails:  s.details.Loading(),
		LastError:       s.lastError,
	}
}

func (s *SimplePanelService) toRow(patient domain.Patient, entries map[domain.ID]domain.ErrorEntry) PanelRow {
	if s.coordinator.Writing(patient.ID) {
		patient.SubmitDisabled = true
	}

	row := PanelRow{Patient: patient}
	if entry, ok := entries[patient.ID]; ok {
		row.Errors = &entry
	}
	return row
}

func (s *SimplePanelService) setLastError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastError = message
}
