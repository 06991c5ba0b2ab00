package domain

import (
	"patient-panel/internal/infra/utils"
	"time"
)

const (
	MinPulse       = 30.0
	MaxPulse       = 250.0
	MinTemperature = 95.0
	MaxTemperature = 107.6
)

// VitalsChange holds the editable fields changed by a draft. Nil means unchanged.
type VitalsChange struct {
	Temperature *float64
	Pulse       *float64
}

func (c VitalsChange) IsEmpty() bool {
	return c.Temperature == nil && c.Pulse == nil
}

func (c VitalsChange) Equal(other VitalsChange) bool {
	return equalFloatPtr(c.Temperature, other.Temperature) && equalFloatPtr(c.Pulse, other.Pulse)
}

func (c VitalsChange) Fields() PatientFields {
	return PatientFields{
		Temperature: utils.Clone(c.Temperature),
		Pulse:       utils.Clone(c.Pulse),
	}
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Draft is the uncommitted edit of one patient.
type Draft struct {
	PatientID ID
	Changes   VitalsChange
}

type VitalsRecorded struct {
	PatientID   ID
	Temperature *float64
	Pulse       *float64
	RecordedAt  time.Time
}

func NewVitalsRecorded(patient Patient) VitalsRecorded {
	return VitalsRecorded{
		PatientID:   patient.ID,
		Temperature: utils.Clone(patient.Temperature),
		Pulse:       utils.Clone(patient.Pulse),
		RecordedAt:  time.Now().UTC(),
	}
}
