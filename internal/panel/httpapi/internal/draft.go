package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"patient-panel/internal/panel/domain"
	"strconv"
	"strings"
)

// Number accepts a JSON number or a numeric string, the way datatable draft values arrive.
// Null and empty strings leave it unset.
type Number struct {
	Value *float64
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			n.Value = nil
			return nil
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("parsing draft value %q: %w", text, err)
		}
		n.Value = &value
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

type DraftValue struct {
	ID          string `json:"Id"`
	Temperature Number `json:"Temperature__c"`
	Pulse       Number `json:"Pulse__c"`
}

type DraftsRequest struct {
	DraftValues []DraftValue `json:"draft_values"`
}

func (r DraftsRequest) ToDomain() ([]domain.Draft, error) {
	drafts := make([]domain.Draft, 0, len(r.DraftValues))
	for _, value := range r.DraftValues {
		if value.ID == "" {
			return nil, domain.ErrPatientIDRequired
		}
		drafts = append(drafts, domain.Draft{
			PatientID: domain.ID(value.ID),
			Changes: domain.VitalsChange{
				Temperature: value.Temperature.Value,
				Pulse:       value.Pulse.Value,
			},
		})
	}
	return drafts, nil
}
