package domain

import (
	"patient-panel/internal/infra/utils"
	"strings"
)

type ID string

func (vo ID) String() string {
	return string(vo)
}

// FieldName is the name the remote store uses for a patient field.
type FieldName string

const (
	FieldID          FieldName = "Id"
	FieldFirstName   FieldName = "FirstName__c"
	FieldLastName    FieldName = "LastName__c"
	FieldAge         FieldName = "Age__c"
	FieldTown        FieldName = "Town__c"
	FieldTemperature FieldName = "Temperature__c"
	FieldPulse       FieldName = "Pulse__c"
)

type Patient struct {
	ID             ID
	FirstName      string
	LastName       string
	Age            *int
	Town           string
	Temperature    *float64
	Pulse          *float64
	SubmitDisabled bool
}

func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PatientFields is a partial set of patient fields. Nil fields are not part of the set.
type PatientFields struct {
	FirstName   *string
	LastName    *string
	Age         *int
	Town        *string
	Temperature *float64
	Pulse       *float64
}

// Merge applies the fields present in the set and keeps every other field as is.
func (p *Patient) Merge(fields PatientFields) {
	if fields.FirstName != nil {
		p.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		p.LastName = *fields.LastName
	}
	if fields.Age != nil {
		p.Age = utils.Clone(fields.Age)
	}
	if fields.Town != nil {
		p.Town = *fields.Town
	}
	if fields.Temperature != nil {
		p.Temperature = utils.Clone(fields.Temperature)
	}
	if fields.Pulse != nil {
		p.Pulse = utils.Clone(fields.Pulse)
	}
}

// Clone returns a copy that shares no pointers with p.
func (p Patient) Clone() Patient {
	result := p
	result.Age = utils.Clone(p.Age)
	result.Temperature = utils.Clone(p.Temperature)
	result.Pulse = utils.Clone(p.Pulse)
	return result
}

func NewPatientBuilder() *patientBuilder {
	return &patientBuilder{}
}

type patientBuilder struct {
	actions []patientHandler
}

type patientHandler func(v *Patient) error

func (b *patientBuilder) WithID(value ID) *patientBuilder {
	b.actions = append(b.actions, func(d *Patient) error {
		d.ID = value
		return nil
	})
	return b
}

func (b *patientBuilder) WithName(firstName, lastName string) *patientBuilder {
	b.actions = append(b.actions, func(d *Patient) error {
		d.FirstName = firstName
		d.LastName = lastName
		return nil
	})
	return b
}

func (b *patientBuilder) WithAge(value int) *patientBuilder {
	b.actions = append(b.actions, func(d *Patient) error {
		d.Age = &value
		return nil
	})
	return b
}

func (b *patientBuilder) WithTown(value string) *patientBuilder {
	b.actions = append(b.actions, func(d *Patient) error {
		d.Town = value
		return nil
	})
	return b
}

func (b *patientBuilder) WithTemperature(value float64) *patientBuilder {
	b.actions = append(b.actions, func(d *Patient) error {
		d.Temperature = &value
		return nil
	})
	return b
}

func (b *patientBuilder) WithPulse(value float64) *patientBuilder {
	b.actions = append(b.actions, func(d *Patient) error {
		d.Pulse = &value
		return nil
	})
	return b
}

func (b *patientBuilder) Build() (Patient, error) {
	result := Patient{
		SubmitDisabled: true,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Patient{}, err
		}
	}

	if result.ID == "" {
		return Patient{}, ErrPatientIDRequired
	}

	return result, nil
}
