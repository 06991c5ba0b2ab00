package persistence

import (
	"context"
	"errors"
	"fmt"
	"patient-panel/internal/infra/sql"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/persistence/internal"
	"patient-panel/internal/panel/usecases"
)

func NewSQLRemoteStore(orm sql.ORM) (*SQLRemoteStore, error) {
	err := orm.AutoMigrate(&internal.Patient{}, &internal.Medication{}, &internal.PatientMedication{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SQLRemoteStore{
		orm: orm,
	}, nil
}

var _ usecases.RemoteStore = (*SQLRemoteStore)(nil)

// ErrUnknownPatient is wrapped by the remote failure reported for an id missing from the database.
var ErrUnknownPatient = errors.New("unknown patient record")

// SQLRemoteStore serves the panel from a local database instead of the org.
type SQLRemoteStore struct {
	orm sql.ORM
}

func (s *SQLRemoteStore) LoadPatients(ctx context.Context) ([]domain.Patient, error) {
	var entities []internal.Patient
	err := s.orm.
		WithContext(ctx).
		Order("last_name, first_name, id").
		Find(&entities).
		Error()
	if err != nil {
		return nil, remoteError("loading patients", err)
	}

	result := make([]domain.Patient, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}
	return result, nil
}

func (s *SQLRemoteStore) UpdatePatient(ctx context.Context, id domain.ID, change domain.VitalsChange) (domain.PatientFields, error) {
	var entity internal.Patient

	err := s.orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		if err := tx.First(&entity, "id = ?", id.String()).Error(); err != nil {
			return err
		}

		columns := internal.VitalsColumns(change)
		if len(columns) == 0 {
			return nil
		}

		if err := tx.Model(&entity).Updates(columns).Error(); err != nil {
			return err
		}
		return tx.First(&entity, "id = ?", id.String()).Error()
	})

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.PatientFields{}, &usecases.RemoteError{
			Op:      "updating patient",
			Message: fmt.Sprintf("patient %s does not exist", id),
			Err:     fmt.Errorf("%w: %w", ErrUnknownPatient, err),
		}
	}
	if err != nil {
		return domain.PatientFields{}, remoteError("updating patient", err)
	}

	return entity.ToFields(), nil
}

func (s *SQLRemoteStore) LoadPatientMedications(ctx context.Context, id domain.ID) ([]domain.PatientMedication, error) {
	var entities []internal.PatientMedication
	err := s.orm.
		WithContext(ctx).
		Preload("Medication").
		Where("patient_id = ?", id.String()).
		Order("start_date, id").
		Find(&entities).
		Error()
	if err != nil {
		return nil, remoteError("loading patient medications", err)
	}

	result := make([]domain.PatientMedication, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}
	return result, nil
}

func remoteError(op string, err error) *usecases.RemoteError {
	return &usecases.RemoteError{Op: op, Message: err.Error(), Err: err}
}
