package usecases_test

import (
	"context"
	"errors"
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/usecases"
	mockusecases "patient-panel/test/unit/doubles/panel/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("SubmissionCoordinator", func() {
	const patientID = domain.ID("a01000000000001")

	var (
		ctrl          *gomock.Controller
		mockRemote    *mockusecases.MockRemoteStore
		mockNotifier  *mockusecases.MockNotifier
		mockPublisher *mockusecases.MockVitalsPublisher
		records       *usecases.RecordStore
		drafts        *usecases.DraftTracker
		registry      *usecases.ErrorRegistry
		coordinator   *usecases.SubmissionCoordinator
		ctx           context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		mockRemote = mockusecases.NewMockRemoteStore(ctrl)
		mockNotifier = mockusecases.NewMockNotifier(ctrl)
		mockPublisher = mockusecases.NewMockVitalsPublisher(ctrl)

		records = usecases.NewRecordStore()
		drafts = usecases.NewDraftTracker()
		registry = usecases.NewErrorRegistry()
		coordinator = usecases.NewSubmissionCoordinator(mockRemote, mockNotifier, mockPublisher, records, drafts, registry)

		patient, err := domain.NewPatientBuilder().
			WithID(patientID).
			WithName("Ada", "Lovelace").
			WithAge(36).
			WithTown("London").
			WithTemperature(97.9).
			WithPulse(72).
			Build()
		Expect(err).NotTo(HaveOccurred())
		records.Load([]domain.Patient{patient})
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	edit := func(change domain.VitalsChange) {
		drafts.Replace([]domain.Draft{{PatientID: patientID, Changes: change}})
		Expect(records.SetSubmitDisabled(patientID, false)).To(Succeed())
	}

	When("the draft holds an out of range pulse", func() {
		BeforeEach(func() {
			edit(domain.VitalsChange{Pulse: utils.Ptr(300.0)})
		})

		It("should block without calling the remote store", func() {
			outcome, err := coordinator.Submit(ctx, patientID)

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.State).To(Equal(usecases.SubmissionBlocked))
			Expect(outcome.Errors).NotTo(BeNil())
			Expect(outcome.Errors.Messages).To(Equal([]string{domain.PulseErrMessage}))
			Expect(outcome.Errors.FieldNames).To(Equal([]domain.FieldName{domain.FieldPulse}))
			Expect(outcome.Patient.SubmitDisabled).To(BeFalse())
			Expect(registry.Has(patientID)).To(BeTrue())
		})

		It("should leave the same registry state when submitted twice", func() {
			_, err := coordinator.Submit(ctx, patientID)
			Expect(err).NotTo(HaveOccurred())
			first := registry.Snapshot()

			_, err = coordinator.Submit(ctx, patientID)
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Snapshot()).To(Equal(first))
		})
	})

	When("the draft holds valid vitals", func() {
		BeforeEach(func() {
			edit(domain.VitalsChange{Pulse: utils.Ptr(80.0), Temperature: utils.Ptr(98.6)})
		})

		It("should write, merge and notify once", func() {
			expectedChange := domain.VitalsChange{Pulse: utils.Ptr(80.0), Temperature: utils.Ptr(98.6)}
			mockRemote.EXPECT().
				UpdatePatient(gomock.Any(), patientID, expectedChange).
				Return(domain.PatientFields{Pulse: utils.Ptr(80.0), Temperature: utils.Ptr(98.6)}, nil)

			var toast domain.Toast
			mockNotifier.EXPECT().
				Notify(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, t domain.Toast) error {
					toast = t
					return nil
				}).
				Times(1)
			mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			outcome, err := coordinator.Submit(ctx, patientID)

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.State).To(Equal(usecases.SubmissionApplied))
			Expect(*outcome.Patient.Pulse).To(Equal(80.0))
			Expect(*outcome.Patient.Temperature).To(Equal(98.6))
			Expect(outcome.Patient.FirstName).To(Equal("Ada"))
			Expect(outcome.Patient.SubmitDisabled).To(BeTrue())

			stored, err := records.Get(patientID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.SubmitDisabled).To(BeTrue())
			Expect(*stored.Pulse).To(Equal(80.0))

			_, pending := drafts.Get(patientID)
			Expect(pending).To(BeFalse())
			Expect(registry.Has(patientID)).To(BeFalse())

			Expect(toast.Title).To(Equal(domain.PatientUpdatedTitle))
			Expect(toast.Message).To(Equal(domain.PatientUpdatedMessage))
			Expect(toast.Variant).To(Equal(domain.ToastVariantSuccess))
			Expect(coordinator.Loading()).To(BeFalse())
		})

		It("should clear a previous error entry", func() {
			registry.Set(patientID, domain.ValidateVitals(domain.VitalsChange{Pulse: utils.Ptr(300.0)}))

			mockRemote.EXPECT().UpdatePatient(gomock.Any(), patientID, gomock.Any()).Return(domain.PatientFields{}, nil)
			mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
			mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			_, err := coordinator.Submit(ctx, patientID)

			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Has(patientID)).To(BeFalse())
		})

		It("should still apply when notifying and publishing fail", func() {
			mockRemote.EXPECT().UpdatePatient(gomock.Any(), patientID, gomock.Any()).Return(domain.PatientFields{}, nil)
			mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("no subscribers"))
			mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

			outcome, err := coordinator.Submit(ctx, patientID)

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.State).To(Equal(usecases.SubmissionApplied))
		})

		It("should keep records and drafts untouched when the remote write fails", func() {
			before, err := records.Get(patientID)
			Expect(err).NotTo(HaveOccurred())
			draftBefore, _ := drafts.Get(patientID)

			mockRemote.EXPECT().
				UpdatePatient(gomock.Any(), patientID, gomock.Any()).
				Return(domain.PatientFields{}, &usecases.RemoteError{Op: "patch", Message: "Record is locked"})

			outcome, err := coordinator.Submit(ctx, patientID)

			Expect(outcome.State).To(Equal(usecases.SubmissionFailed))
			var remoteErr *usecases.RemoteError
			Expect(errors.As(err, &remoteErr)).To(BeTrue())
			Expect(remoteErr.Message).To(Equal("Record is locked"))

			after, err := records.Get(patientID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(Equal(before))
			Expect(after.SubmitDisabled).To(BeFalse())

			draftAfter, pending := drafts.Get(patientID)
			Expect(pending).To(BeTrue())
			Expect(draftAfter).To(Equal(draftBefore))
		})

		It("should reject a second submission while the first is writing", func() {
			started := make(chan struct{})
			unblock := make(chan struct{})

			mockRemote.EXPECT().
				UpdatePatient(gomock.Any(), patientID, gomock.Any()).
				DoAndReturn(func(context.Context, domain.ID, domain.VitalsChange) (domain.PatientFields, error) {
					close(started)
					<-unblock
					return domain.PatientFields{}, nil
				}).
				Times(1)
			mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
			mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			done := make(chan usecases.SubmissionOutcome)
			go func() {
				defer GinkgoRecover()
				outcome, err := coordinator.Submit(ctx, patientID)
				Expect(err).NotTo(HaveOccurred())
				done <- outcome
			}()

			Eventually(started).Should(BeClosed())
			Expect(coordinator.Writing(patientID)).To(BeTrue())
			Expect(coordinator.Loading()).To(BeTrue())

			_, err := coordinator.Submit(ctx, patientID)
			Expect(err).To(MatchError(usecases.ErrSubmissionInFlight))

			close(unblock)
			Eventually(done).Should(Receive(HaveField("State", usecases.SubmissionApplied)))
			Expect(coordinator.Writing(patientID)).To(BeFalse())
		})

		It("should keep a newer edit made while writing", func() {
			mockRemote.EXPECT().
				UpdatePatient(gomock.Any(), patientID, gomock.Any()).
				DoAndReturn(func(context.Context, domain.ID, domain.VitalsChange) (domain.PatientFields, error) {
					drafts.Replace([]domain.Draft{{PatientID: patientID, Changes: domain.VitalsChange{Pulse: utils.Ptr(95.0)}}})
					return domain.PatientFields{Pulse: utils.Ptr(80.0)}, nil
				})
			mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
			mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			outcome, err := coordinator.Submit(ctx, patientID)

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Patient.SubmitDisabled).To(BeFalse())
			draft, pending := drafts.Get(patientID)
			Expect(pending).To(BeTrue())
			Expect(*draft.Changes.Pulse).To(Equal(95.0))
		})
	})

	When("there is nothing to submit", func() {
		It("should report no pending changes", func() {
			_, err := coordinator.Submit(ctx, patientID)
			Expect(err).To(MatchError(usecases.ErrNoPendingChanges))
		})
	})

	When("the patient is unknown", func() {
		It("should report not found", func() {
			_, err := coordinator.Submit(ctx, "missing")
			Expect(err).To(MatchError(usecases.ErrPatientNotFound))
		})
	})
})
