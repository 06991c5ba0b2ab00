package domain

import (
	"patient-panel/internal/infra/utils"
	"time"
)

type ToastVariant string

const (
	ToastVariantSuccess ToastVariant = "success"
	ToastVariantError   ToastVariant = "error"
)

const (
	PatientUpdatedTitle   = "Success"
	PatientUpdatedMessage = "Patient has been updated!"
)

// Toast is a transient user notification.
type Toast struct {
	ID        ID
	Title     string
	Message   string
	Variant   ToastVariant
	PatientID ID
	CreatedAt utils.Time
}

func NewPatientUpdatedToast(patientID ID) Toast {
	return Toast{
		ID:        ID(utils.GenerateUUID()),
		Title:     PatientUpdatedTitle,
		Message:   PatientUpdatedMessage,
		Variant:   ToastVariantSuccess,
		PatientID: patientID,
		CreatedAt: utils.Time{Time: time.Now()},
	}
}
