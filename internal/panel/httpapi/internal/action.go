package internal

import (
	"errors"
	"fmt"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/usecases"
)

var ErrUnknownAction = errors.New("unknown row action")

type RowActionRequest struct {
	Action string `json:"action"`
}

func ParseRowAction(name string, id domain.ID) (domain.RowAction, error) {
	switch domain.RowActionName(name) {
	case domain.RowActionSubmit:
		return domain.SubmitAction{PatientID: id}, nil
	case domain.RowActionView:
		return domain.ViewDetailAction{PatientID: id}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownAction)
	}
}

type SubmissionResponse struct {
	PatientID string              `json:"patient_id"`
	State     string              `json:"state"`
	Row       PatientRowResponse  `json:"row"`
	Errors    *ErrorEntryResponse `json:"errors,omitempty"`
}

type ActionResponse struct {
	Action     string              `json:"action"`
	Submission *SubmissionResponse `json:"submission,omitempty"`
	Detail     *DetailResponse     `json:"detail,omitempty"`
}

func ToActionResponse(result usecases.ActionResult) ActionResponse {
	response := ActionResponse{Action: string(result.Action)}

	if s := result.Submission; s != nil {
		response.Submission = &SubmissionResponse{
			PatientID: s.PatientID.String(),
			State:     string(s.State),
			Row:       ToPatientRowResponse(s.Patient, s.Errors),
			Errors:    ToErrorEntryResponse(s.Errors),
		}
	}

	if result.Detail != nil {
		detail := ToDetailResponse(*result.Detail)
		response.Detail = &detail
	}

	return response
}
