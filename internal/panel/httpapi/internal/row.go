package internal

import (
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/usecases"
)

type ErrorEntryResponse struct {
	Title      string   `json:"title"`
	Messages   []string `json:"messages"`
	FieldNames []string `json:"field_names"`
}

type PatientRowResponse struct {
	ID               string              `json:"Id"`
	FirstName        string              `json:"FirstName__c"`
	LastName         string              `json:"LastName__c"`
	Age              *int                `json:"Age__c"`
	Town             string              `json:"Town__c"`
	Temperature      *float64            `json:"Temperature__c"`
	Pulse            *float64            `json:"Pulse__c"`
	IsSubmitDisabled bool                `json:"is_submit_disabled"`
	Errors           *ErrorEntryResponse `json:"errors,omitempty"`
}

type RowsResponse struct {
	Data []PatientRowResponse `json:"data"`
}

func ToErrorEntryResponse(entry *domain.ErrorEntry) *ErrorEntryResponse {
	if entry == nil {
		return nil
	}

	fieldNames := make([]string, len(entry.FieldNames))
	for i, name := range entry.FieldNames {
		fieldNames[i] = string(name)
	}
	return &ErrorEntryResponse{
		Title:      entry.Title,
		Messages:   append([]string(nil), entry.Messages...),
		FieldNames: fieldNames,
	}
}

func ToPatientRowResponse(patient domain.Patient, errors *domain.ErrorEntry) PatientRowResponse {
	return PatientRowResponse{
		ID:               patient.ID.String(),
		FirstName:        patient.FirstName,
		LastName:         patient.LastName,
		Age:              patient.Age,
		Town:             patient.Town,
		Temperature:      patient.Temperature,
		Pulse:            patient.Pulse,
		IsSubmitDisabled: patient.SubmitDisabled,
		Errors:           ToErrorEntryResponse(errors),
	}
}

func ToRowsResponse(rows []usecases.PanelRow) RowsResponse {
	data := make([]PatientRowResponse, len(rows))
	for i, row := range rows {
		data[i] = ToPatientRowResponse(row.Patient, row.Errors)
	}
	return RowsResponse{Data: data}
}

type StatusResponse struct {
	LoadingPatients bool   `json:"loading_patients"`
	Submitting      bool   `json:"submitting"`
	LoadingDetails  bool   `json:"loading_details"`
	LastError       string `json:"last_error,omitempty"`
}

func ToStatusResponse(status usecases.PanelStatus) StatusResponse {
	return StatusResponse{
		LoadingPatients: status.LoadingPatients,
		Submitting:      status.Submitting,
		LoadingDetails:  status.LoadingDetails,
		LastError:       status.LastError,
	}
}
