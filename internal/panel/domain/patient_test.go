package domain_test

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Patient", func() {
	var patient domain.Patient

	BeforeEach(func() {
		var err error
		patient, err = domain.NewPatientBuilder().
			WithID("a01000000000001").
			WithName("Ada", "Lovelace").
			WithAge(36).
			WithTown("London").
			WithTemperature(98.1).
			WithPulse(70).
			Build()
		Expect(err).NotTo(HaveOccurred())
	})

	Context("Build", func() {
		It("should start with submission disabled", func() {
			Expect(patient.SubmitDisabled).To(BeTrue())
			Expect(patient.FullName()).To(Equal("Ada Lovelace"))
		})

		It("should require an ID", func() {
			_, err := domain.NewPatientBuilder().WithName("No", "Id").Build()
			Expect(err).To(MatchError(domain.ErrPatientIDRequired))
		})
	})

	Context("Merge", func() {
		When("the update carries only vitals", func() {
			It("should keep the display fields", func() {
				patient.Merge(domain.PatientFields{
					Pulse:       utils.Ptr(80.0),
					Temperature: utils.Ptr(98.6),
				})

				Expect(*patient.Pulse).To(Equal(80.0))
				Expect(*patient.Temperature).To(Equal(98.6))
				Expect(patient.FirstName).To(Equal("Ada"))
				Expect(patient.Town).To(Equal("London"))
				Expect(*patient.Age).To(Equal(36))
			})
		})

		When("the caller mutates the update afterwards", func() {
			It("should not share memory with the update", func() {
				pulse := 90.0
				patient.Merge(domain.PatientFields{Pulse: &pulse})
				pulse = 10

				Expect(*patient.Pulse).To(Equal(90.0))
			})
		})
	})

	Context("VitalsChange", func() {
		It("should compare values rather than pointers", func() {
			a := domain.VitalsChange{Pulse: utils.Ptr(80.0)}
			b := domain.VitalsChange{Pulse: utils.Ptr(80.0)}
			Expect(a.Equal(b)).To(BeTrue())
			Expect(a.Equal(domain.VitalsChange{Pulse: utils.Ptr(81.0)})).To(BeFalse())
			Expect(a.Equal(domain.VitalsChange{})).To(BeFalse())
		})
	})
})
