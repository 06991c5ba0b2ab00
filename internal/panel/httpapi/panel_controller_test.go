package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/httpapi"
	"patient-panel/internal/panel/usecases"
	mockusecases "patient-panel/test/unit/doubles/panel/usecases"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("PanelController", func() {
	var (
		ctrl        *gomock.Controller
		mockService *mockusecases.MockPanelService
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
		ada         domain.Patient
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockService = mockusecases.NewMockPanelService(ctrl)
		router = http.NewServeMux()
		httpapi.NewPanelController(mockService).AddRoutes(router)
		recorder = httptest.NewRecorder()

		ada = domain.Patient{
			ID:             "a01000000000001",
			FirstName:      "Ada",
			LastName:       "Lovelace",
			Age:            utils.Ptr(36),
			Town:           "London",
			Pulse:          utils.Ptr(72.0),
			SubmitDisabled: true,
		}
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	serve := func(method, path, body string) {
		var request *http.Request
		if body == "" {
			request = httptest.NewRequest(method, path, nil)
		} else {
			request = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		router.ServeHTTP(recorder, request)
	}

	decode := func(target any) {
		Expect(json.Unmarshal(recorder.Body.Bytes(), target)).To(Succeed())
	}

	Context("loadPatients", func() {
		It("should reply the rows", func() {
			mockService.EXPECT().LoadPatients(gomock.Any()).Return([]usecases.PanelRow{{Patient: ada}}, nil)

			serve(http.MethodPost, "/v1/panel/load", "")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"data":[{
				"Id":"a01000000000001","FirstName__c":"Ada","LastName__c":"Lovelace","Age__c":36,
				"Town__c":"London","Temperature__c":null,"Pulse__c":72,"is_submit_disabled":true
			}]}`))
		})

		It("should reply 502 with the remote message", func() {
			mockService.EXPECT().
				LoadPatients(gomock.Any()).
				Return(nil, &usecases.RemoteError{Op: "loading patients", Message: "Session expired or invalid"})

			serve(http.MethodPost, "/v1/panel/load", "")

			Expect(recorder.Code).To(Equal(http.StatusBadGateway))
			Expect(recorder.Body.String()).To(MatchJSON(`{"message":"Session expired or invalid"}`))
		})
	})

	Context("listPatients", func() {
		It("should include the error entry of blocked rows", func() {
			entry := domain.ErrorEntry{
				Title:      domain.ErrorEntryTitle,
				Messages:   []string{domain.PulseErrMessage},
				FieldNames: []domain.FieldName{domain.FieldPulse},
			}
			ada.SubmitDisabled = false
			mockService.EXPECT().ListRows(gomock.Any()).Return([]usecases.PanelRow{{Patient: ada, Errors: &entry}})

			serve(http.MethodGet, "/v1/panel/patients", "")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body struct {
				Data []struct {
					IsSubmitDisabled bool `json:"is_submit_disabled"`
					Errors           struct {
						Title      string   `json:"title"`
						Messages   []string `json:"messages"`
						FieldNames []string `json:"field_names"`
					} `json:"errors"`
				} `json:"data"`
			}
			decode(&body)
			Expect(body.Data).To(HaveLen(1))
			Expect(body.Data[0].IsSubmitDisabled).To(BeFalse())
			Expect(body.Data[0].Errors.Title).To(Equal("We found some errors."))
			Expect(body.Data[0].Errors.FieldNames).To(Equal([]string{"Pulse__c"}))
		})
	})

	Context("applyDrafts", func() {
		It("should convert draft values including numeric strings", func() {
			mockService.EXPECT().
				ApplyDraftEdits(gomock.Any(), []domain.Draft{
					{PatientID: "a01000000000001", Changes: domain.VitalsChange{Pulse: utils.Ptr(80.0)}},
					{PatientID: "a01000000000002", Changes: domain.VitalsChange{Temperature: utils.Ptr(98.6)}},
				}).
				Return([]usecases.PanelRow{{Patient: ada}}, nil)

			serve(http.MethodPut, "/v1/panel/drafts", `{"draft_values":[
				{"Id":"a01000000000001","Pulse__c":80},
				{"Id":"a01000000000002","Temperature__c":"98.6"}
			]}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("should reject drafts without id", func() {
			serve(http.MethodPut, "/v1/panel/drafts", `{"draft_values":[{"Pulse__c":80}]}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject non numeric values", func() {
			serve(http.MethodPut, "/v1/panel/drafts", `{"draft_values":[{"Id":"a01","Pulse__c":"fast"}]}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reply 404 for unknown patients", func() {
			mockService.EXPECT().ApplyDraftEdits(gomock.Any(), gomock.Any()).Return(nil, usecases.ErrPatientNotFound)

			serve(http.MethodPut, "/v1/panel/drafts", `{"draft_values":[{"Id":"ghost","Pulse__c":80}]}`)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("handleRowAction", func() {
		const path = "/v1/panel/patients/a01000000000001/actions"

		It("should reject unknown actions", func() {
			serve(http.MethodPost, path, `{"action":"delete"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reply the applied row", func() {
			ada.Pulse = utils.Ptr(80.0)
			mockService.EXPECT().
				HandleRowAction(gomock.Any(), domain.SubmitAction{PatientID: "a01000000000001"}).
				Return(usecases.ActionResult{
					Action: domain.RowActionSubmit,
					Submission: &usecases.SubmissionOutcome{
						PatientID: ada.ID,
						State:     usecases.SubmissionApplied,
						Patient:   ada,
					},
				}, nil)

			serve(http.MethodPost, path, `{"action":"submit"}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body struct {
				Action     string `json:"action"`
				Submission struct {
					State string `json:"state"`
					Row   struct {
						Pulse            float64 `json:"Pulse__c"`
						IsSubmitDisabled bool    `json:"is_submit_disabled"`
					} `json:"row"`
				} `json:"submission"`
			}
			decode(&body)
			Expect(body.Action).To(Equal("submit"))
			Expect(body.Submission.State).To(Equal("applied"))
			Expect(body.Submission.Row.Pulse).To(Equal(80.0))
			Expect(body.Submission.Row.IsSubmitDisabled).To(BeTrue())
		})

		It("should reply 422 with the error entry when blocked", func() {
			entry := domain.ErrorEntry{
				Title:      domain.ErrorEntryTitle,
				Messages:   []string{domain.PulseErrMessage},
				FieldNames: []domain.FieldName{domain.FieldPulse},
			}
			mockService.EXPECT().
				HandleRowAction(gomock.Any(), gomock.Any()).
				Return(usecases.ActionResult{
					Action:     domain.RowActionSubmit,
					Submission: &usecases.SubmissionOutcome{PatientID: ada.ID, State: usecases.SubmissionBlocked, Patient: ada, Errors: &entry},
				}, nil)

			serve(http.MethodPost, path, `{"action":"submit"}`)

			Expect(recorder.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(recorder.Body.String()).To(ContainSubstring(`"state":"blocked"`))
			Expect(recorder.Body.String()).To(ContainSubstring(`"field_names":["Pulse__c"]`))
		})

		DescribeTable("should map submission errors",
			func(err error, status int) {
				mockService.EXPECT().HandleRowAction(gomock.Any(), gomock.Any()).Return(usecases.ActionResult{}, err)

				serve(http.MethodPost, path, `{"action":"submit"}`)

				Expect(recorder.Code).To(Equal(status))
			},
			Entry("not found", usecases.ErrPatientNotFound, http.StatusNotFound),
			Entry("nothing to submit", usecases.ErrNoPendingChanges, http.StatusConflict),
			Entry("in flight", usecases.ErrSubmissionInFlight, http.StatusConflict),
			Entry("remote failure", &usecases.RemoteError{Op: "updating patient", Message: "Record is locked"}, http.StatusBadGateway),
			Entry("unexpected failure", errors.New("boom"), http.StatusInternalServerError),
		)

		It("should reply the remote message when a remote failure wraps a missing patient", func() {
			mockService.EXPECT().
				HandleRowAction(gomock.Any(), gomock.Any()).
				Return(usecases.ActionResult{}, &usecases.RemoteError{
					Op:      "updating patient",
					Message: "patient a01000000000001 does not exist",
					Err:     usecases.ErrPatientNotFound,
				})

			serve(http.MethodPost, path, `{"action":"submit"}`)

			Expect(recorder.Code).To(Equal(http.StatusBadGateway))
			Expect(recorder.Body.String()).To(MatchJSON(`{"message":"patient a01000000000001 does not exist"}`))
		})

		It("should reply the detail view", func() {
			start, err := utils.ParseDate("2024-01-15")
			Expect(err).NotTo(HaveOccurred())
			mockService.EXPECT().
				HandleRowAction(gomock.Any(), domain.ViewDetailAction{PatientID: "a01000000000001"}).
				Return(usecases.ActionResult{
					Action: domain.RowActionView,
					Detail: &usecases.DetailView{
						Label: "Medications for Ada Lovelace",
						Size:  "small",
						MedicationList: usecases.MedicationList{
							PatientID:   ada.ID,
							Medications: []domain.Medication{{ID: "m1", Name: "Aspirin", Dose: "100mg", StartDate: &start}},
						},
					},
				}, nil)

			serve(http.MethodPost, path, `{"action":"view"}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"action":"view","detail":{
				"label":"Medications for Ada Lovelace","size":"small","patient_id":"a01000000000001",
				"medications":[{"id":"m1","medication":"Aspirin","dose":"100mg","startDate":"2024-01-15","endDate":null}]
			}}`))
		})
	})

	Context("fetchMedications", func() {
		It("should reply an empty list", func() {
			mockService.EXPECT().
				FetchMedications(gomock.Any(), domain.ID("a01000000000001")).
				Return(usecases.DetailView{
					Label:          "Medications for Ada Lovelace",
					Size:           "small",
					MedicationList: usecases.MedicationList{PatientID: ada.ID, Medications: []domain.Medication{}},
				}, nil)

			serve(http.MethodGet, "/v1/panel/patients/a01000000000001/medications", "")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"medications":[]`))
		})

		It("should reply 404 for unknown patients", func() {
			mockService.EXPECT().FetchMedications(gomock.Any(), gomock.Any()).Return(usecases.DetailView{}, usecases.ErrPatientNotFound)

			serve(http.MethodGet, "/v1/panel/patients/ghost/medications", "")

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("status", func() {
		It("should reply the loading flags and last error", func() {
			mockService.EXPECT().Status(gomock.Any()).Return(usecases.PanelStatus{Submitting: true, LastError: "Record is locked"})

			serve(http.MethodGet, "/v1/panel/status", "")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{
				"loading_patients":false,"submitting":true,"loading_details":false,"last_error":"Record is locked"
			}`))
		})
	})
})
