package domain

import (
	"fmt"
	"patient-panel/internal/infra/utils"
)

type MedicationReference struct {
	Name string
	Dose string
}

// PatientMedication is a medication assignment as the remote store returns it.
type PatientMedication struct {
	ID         ID
	StartDate  *utils.Date
	EndDate    *utils.Date
	Medication *MedicationReference
}

// Medication is the flattened, display ready row of the medications view.
type Medication struct {
	ID        ID
	Name      string
	Dose      string
	StartDate *utils.Date
	EndDate   *utils.Date
}

func (pm PatientMedication) Flatten() (Medication, error) {
	if pm.Medication == nil {
		return Medication{}, fmt.Errorf("patient medication %s: %w", pm.ID, ErrMissingMedicationReference)
	}

	return Medication{
		ID:        pm.ID,
		Name:      pm.Medication.Name,
		Dose:      pm.Medication.Dose,
		StartDate: pm.StartDate,
		EndDate:   pm.EndDate,
	}, nil
}
