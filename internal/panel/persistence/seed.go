package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"patient-panel/internal/infra/sql"
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/persistence/internal"
	"time"
)

type seedPatient struct {
	first, last, town string
	age               int
	temperature       *float64
	pulse             *float64
	medications       []seedMedication
}

type seedMedication struct {
	name, dose string
	start      time.Time
	end        *time.Time
}

var _demoPatients = []seedPatient{
	{
		first: "Ada", last: "Lovelace", town: "London", age: 36,
		temperature: utils.Ptr(97.9), pulse: utils.Ptr(72.0),
		medications: []seedMedication{
			{name: "Aspirin", dose: "100mg", start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
			{name: "Metformin", dose: "500mg", start: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), end: utils.Ptr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))},
		},
	},
	{
		first: "Alan", last: "Turing", town: "Manchester", age: 41,
		temperature: utils.Ptr(98.2),
	},
	{
		first: "Grace", last: "Hopper", town: "Arlington", age: 79,
		pulse: utils.Ptr(64.0),
		medications: []seedMedication{
			{name: "Lisinopril", dose: "10mg", start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		},
	},
}

// Seed fills an empty database with demo patients. A database that already holds patients is left alone.
func Seed(ctx context.Context, orm sql.ORM) error {
	var count int64
	if err := orm.WithContext(ctx).Model(&internal.Patient{}).Count(&count).Error(); err != nil {
		return fmt.Errorf("counting patients: %w", err)
	}
	if count > 0 {
		return nil
	}

	err := orm.WithContext(ctx).Transaction(func(tx sql.ORM) error {
		for _, p := range _demoPatients {
			patient := internal.Patient{
				ID:          utils.GenerateUUID(),
				FirstName:   p.first,
				LastName:    p.last,
				Age:         utils.Ptr(p.age),
				Town:        p.town,
				Temperature: p.temperature,
				Pulse:       p.pulse,
			}
			if err := tx.Create(&patient).Error(); err != nil {
				return fmt.Errorf("creating patient: %w", err)
			}

			for _, m := range p.medications {
				medication := internal.Medication{ID: utils.GenerateUUID(), Name: m.name, Dose: m.dose}
				if err := tx.Create(&medication).Error(); err != nil {
					return fmt.Errorf("creating medication: %w", err)
				}

				assignment := internal.PatientMedication{
					ID:           utils.GenerateUUID(),
					PatientID:    patient.ID,
					MedicationID: utils.Ptr(medication.ID),
					StartDate:    utils.Ptr(m.start),
					EndDate:      m.end,
				}
				if err := tx.Create(&assignment).Error(); err != nil {
					return fmt.Errorf("creating patient medication: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("seeded demo patients", slog.Int("count", len(_demoPatients)))
	return nil
}
