package domain

import "errors"

var (
	ErrPatientIDRequired          = errors.New("patient ID is required")
	ErrMissingMedicationReference = errors.New("medication reference is missing")
)
