package internal

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
)

type Patient struct {
	ID          string   `json:"Id"`
	FirstName   *string  `json:"FirstName__c,omitempty"`
	LastName    *string  `json:"LastName__c,omitempty"`
	Age         *float64 `json:"Age__c,omitempty"`
	Town        *string  `json:"Town__c,omitempty"`
	Temperature *float64 `json:"Temperature__c,omitempty"`
	Pulse       *float64 `json:"Pulse__c,omitempty"`
}

func (p Patient) ToDomain() domain.Patient {
	result := domain.Patient{
		ID:             domain.ID(p.ID),
		SubmitDisabled: true,
	}
	result.Merge(p.ToFields())
	return result
}

// ToFields keeps only the fields present in the payload.
func (p Patient) ToFields() domain.PatientFields {
	fields := domain.PatientFields{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Town:        p.Town,
		Temperature: p.Temperature,
		Pulse:       p.Pulse,
	}
	if p.Age != nil {
		fields.Age = utils.Ptr(int(*p.Age))
	}
	return fields
}

// VitalsUpdate is the PATCH body: exactly the fields changed by the draft.
type VitalsUpdate struct {
	Pulse       *float64 `json:"Pulse__c,omitempty"`
	Temperature *float64 `json:"Temperature__c,omitempty"`
}

func FromVitalsChange(change domain.VitalsChange) VitalsUpdate {
	return VitalsUpdate{
		Pulse:       change.Pulse,
		Temperature: change.Temperature,
	}
}
