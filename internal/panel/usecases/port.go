package usecases

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/panel/usecases/port_mock.go -package=usecases -mock_names=RemoteStore=MockRemoteStore,Notifier=MockNotifier,VitalsPublisher=MockVitalsPublisher

import (
	"context"
	"patient-panel/internal/panel/domain"
)

// RemoteStore is the store of record for patients and their medications.
type RemoteStore interface {
	LoadPatients(ctx context.Context) ([]domain.Patient, error)
	// UpdatePatient writes the changed fields and returns the fields the store considers canonical.
	UpdatePatient(ctx context.Context, id domain.ID, change domain.VitalsChange) (domain.PatientFields, error)
	LoadPatientMedications(ctx context.Context, id domain.ID) ([]domain.PatientMedication, error)
}

type Notifier interface {
	Notify(ctx context.Context, toast domain.Toast) error
}

type VitalsPublisher interface {
	Publish(ctx context.Context, event domain.VitalsRecorded) error
}
