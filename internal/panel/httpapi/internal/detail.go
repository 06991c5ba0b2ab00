package internal

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/usecases"
)

type MedicationResponse struct {
	ID         string      `json:"id"`
	Medication string      `json:"medication"`
	Dose       string      `json:"dose"`
	StartDate  *utils.Date `json:"startDate"`
	EndDate    *utils.Date `json:"endDate"`
}

type DetailResponse struct {
	Label       string               `json:"label"`
	Size        string               `json:"size"`
	PatientID   string               `json:"patient_id"`
	Medications []MedicationResponse `json:"medications"`
	Error       string               `json:"error,omitempty"`
}

func ToDetailResponse(view usecases.DetailView) DetailResponse {
	response := DetailResponse{
		Label:     view.Label,
		Size:      view.Size,
		PatientID: view.PatientID.String(),
		Error:     view.Error,
	}

	if view.Medications != nil {
		response.Medications = make([]MedicationResponse, len(view.Medications))
		for i, m := range view.Medications {
			response.Medications[i] = MedicationResponse{
				ID:         m.ID.String(),
				Medication: m.Name,
				Dose:       m.Dose,
				StartDate:  m.StartDate,
				EndDate:    m.EndDate,
			}
		}
	}

	return response
}
