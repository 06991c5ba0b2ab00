package usecases

import (
	"fmt"
	"patient-panel/internal/panel/domain"
	"slices"
	"sync"
)

// RecordStore is the canonical in-memory list of patients shown by the panel.
type RecordStore struct {
	mu       sync.RWMutex
	patients []domain.Patient
}

func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Load replaces the list. Every loaded patient starts with submission disabled.
func (s *RecordStore) Load(patients []domain.Patient) {
	loaded := make([]domain.Patient, len(patients))
	for i, p := range patients {
		loaded[i] = p.Clone()
		loaded[i].SubmitDisabled = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.patients = loaded
}

func (s *RecordStore) IndexOf(id domain.ID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOfLocked(id)
}

func (s *RecordStore) Get(id domain.ID) (domain.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, err := s.indexOfLocked(id)
	if err != nil {
		return domain.Patient{}, err
	}
	return s.patients[index].Clone(), nil
}

func (s *RecordStore) List() []domain.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Patient, len(s.patients))
	for i, p := range s.patients {
		result[i] = p.Clone()
	}
	return result
}

// Merge applies a partial update onto the stored patient and returns the result.
func (s *RecordStore) Merge(id domain.ID, fields domain.PatientFields) (domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.indexOfLocked(id)
	if err != nil {
		return domain.Patient{}, err
	}

	s.patients[index].Merge(fields)
	return s.patients[index].Clone(), nil
}

func (s *RecordStore) SetSubmitDisabled(id domain.ID, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.indexOfLocked(id)
	if err != nil {
		return err
	}

	s.patients[index].SubmitDisabled = disabled
	return nil
}

func (s *RecordStore) indexOfLocked(id domain.ID) (int, error) {
	index := slices.IndexFunc(s.patients, func(p domain.Patient) bool { return p.ID == id })
	if index < 0 {
		return -1, fmt.Errorf("patient %s: %w", id, ErrPatientNotFound)
	}
	return index, nil
}
