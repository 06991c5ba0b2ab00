package internal

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
	"time"
)

type Patient struct {
	ID          string   `gorm:"primaryKey"`
	FirstName   string   `gorm:"not null"`
	LastName    string   `gorm:"not null;index"`
	Age         *int
	Town        string
	Temperature *float64
	Pulse       *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Patient) TableName() string {
	return "patients"
}

func (p Patient) ToDomain() domain.Patient {
	return domain.Patient{
		ID:             domain.ID(p.ID),
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Age:            utils.Clone(p.Age),
		Town:           p.Town,
		Temperature:    utils.Clone(p.Temperature),
		Pulse:          utils.Clone(p.Pulse),
		SubmitDisabled: true,
	}
}

// ToFields reports empty text columns as absent.
func (p Patient) ToFields() domain.PatientFields {
	return domain.PatientFields{
		FirstName:   utils.StringPtr(p.FirstName),
		LastName:    utils.StringPtr(p.LastName),
		Age:         utils.Clone(p.Age),
		Town:        utils.StringPtr(p.Town),
		Temperature: utils.Clone(p.Temperature),
		Pulse:       utils.Clone(p.Pulse),
	}
}

func FromPatient(value domain.Patient) Patient {
	return Patient{
		ID:          value.ID.String(),
		FirstName:   value.FirstName,
		LastName:    value.LastName,
		Age:         utils.Clone(value.Age),
		Town:        value.Town,
		Temperature: utils.Clone(value.Temperature),
		Pulse:       utils.Clone(value.Pulse),
	}
}

// VitalsColumns maps the changed vitals to their columns.
func VitalsColumns(change domain.VitalsChange) map[string]any {
	columns := make(map[string]any, 2)
	if change.Temperature != nil {
		columns["temperature"] = *change.Temperature
	}
	if change.Pulse != nil {
		columns["pulse"] = *change.Pulse
	}
	return columns
}
