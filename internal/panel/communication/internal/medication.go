package internal

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
)

type MedicationReference struct {
	Name string `json:"Name"`
	Dose string `json:"Dose__c"`
}

type PatientMedication struct {
	ID         string               `json:"Id"`
	StartDate  *utils.Date          `json:"StartDate__c"`
	EndDate    *utils.Date          `json:"EndDate__c"`
	Medication *MedicationReference `json:"Medication__r"`
}

func (pm PatientMedication) ToDomain() domain.PatientMedication {
	result := domain.PatientMedication{
		ID:        domain.ID(pm.ID),
		StartDate: pm.StartDate,
		EndDate:   pm.EndDate,
	}
	if pm.Medication != nil {
		result.Medication = &domain.MedicationReference{
			Name: pm.Medication.Name,
			Dose: pm.Medication.Dose,
		}
	}
	return result
}

// ErrorBody is one element of an Apex REST error response.
type ErrorBody struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}
