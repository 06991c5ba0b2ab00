package internal

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
	"time"
)

type Medication struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Dose string
}

func (Medication) TableName() string {
	return "medications"
}

type PatientMedication struct {
	ID           string `gorm:"primaryKey"`
	PatientID    string `gorm:"not null;index"`
	MedicationID *string
	Medication   *Medication `gorm:"foreignKey:MedicationID"`
	StartDate    *time.Time
	EndDate      *time.Time
}

func (PatientMedication) TableName() string {
	return "patient_medications"
}

func (pm PatientMedication) ToDomain() domain.PatientMedication {
	result := domain.PatientMedication{
		ID:        domain.ID(pm.ID),
		StartDate: toDate(pm.StartDate),
		EndDate:   toDate(pm.EndDate),
	}
	if pm.Medication != nil {
		result.Medication = &domain.MedicationReference{
			Name: pm.Medication.Name,
			Dose: pm.Medication.Dose,
		}
	}
	return result
}

func toDate(value *time.Time) *utils.Date {
	if value == nil {
		return nil
	}
	y, m, d := value.Date()
	return &utils.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}
