package internal

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
)

type ToastMessage struct {
	Type      string     `json:"type"`
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Variant   string     `json:"variant"`
	PatientID string     `json:"patient_id,omitempty"`
	CreatedAt utils.Time `json:"created_at"`
}

func ToToastMessage(toast domain.Toast) ToastMessage {
	return ToastMessage{
		Type:      "toast",
		ID:        toast.ID.String(),
		Title:     toast.Title,
		Message:   toast.Message,
		Variant:   string(toast.Variant),
		PatientID: toast.PatientID.String(),
		CreatedAt: toast.CreatedAt,
	}
}
