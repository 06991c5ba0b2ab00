package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"patient-panel/internal/infra/httpserver"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/httpapi/internal"
	"patient-panel/internal/panel/usecases"
)

const (
	invalidDraftsErrMessage   = "invalid draft values"
	invalidActionErrMessage   = "invalid row action"
	patientNotFoundErrMessage = "patient not found"
	noChangesErrMessage       = "patient has no pending changes"
	inFlightErrMessage        = "patient submission already in progress"
	loadPatientsErrMessage    = "failed to load patients"
	rowActionErrMessage       = "failed to handle row action"
)

func NewPanelController(service usecases.PanelService) *PanelController {
	return &PanelController{
		service: service,
	}
}

var _ httpserver.Controller = &PanelController{}

type PanelController struct {
	service usecases.PanelService
}

func (c *PanelController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /v1/panel/load", c.loadPatients())
	router.Handle("GET /v1/panel/patients", c.listPatients())
	router.Handle("PUT /v1/panel/drafts", c.applyDrafts())
	router.Handle("POST /v1/panel/patients/{id}/actions", c.handleRowAction())
	router.Handle("GET /v1/panel/patients/{id}/medications", c.fetchMedications())
	router.Handle("GET /v1/panel/status", c.status())
}

func (c *PanelController) loadPatients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := c.service.LoadPatients(r.Context())
		if err != nil {
			replyRemoteError(w, err, loadPatientsErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRowsResponse(rows))
	}
}

func (c *PanelController) listPatients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := c.service.ListRows(r.Context())
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRowsResponse(rows))
	}
}

func (c *PanelController) applyDrafts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.DraftsRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding drafts request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidDraftsErrMessage)
			return
		}

		drafts, err := body.ToDomain()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		rows, err := c.service.ApplyDraftEdits(r.Context(), drafts)
		if errors.Is(err, usecases.ErrPatientNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, patientNotFoundErrMessage)
			return
		}
		if err != nil {
			slog.Error("applying draft edits", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, invalidDraftsErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRowsResponse(rows))
	}
}

func (c *PanelController) handleRowAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")

		var body internal.RowActionRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Error("decoding row action request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidActionErrMessage)
			return
		}

		action, err := internal.ParseRowAction(body.Action, domain.ID(id))
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := c.service.HandleRowAction(r.Context(), action)
		var remoteErr *usecases.RemoteError
		switch {
		case errors.As(err, &remoteErr):
			httpserver.ReplyWithError(w, http.StatusBadGateway, remoteErr.Message)
		case errors.Is(err, usecases.ErrPatientNotFound):
			httpserver.ReplyWithError(w, http.StatusNotFound, patientNotFoundErrMessage)
		case errors.Is(err, usecases.ErrNoPendingChanges):
			httpserver.ReplyWithError(w, http.StatusConflict, noChangesErrMessage)
		case errors.Is(err, usecases.ErrSubmissionInFlight):
			httpserver.ReplyWithError(w, http.StatusConflict, inFlightErrMessage)
		case err != nil:
			replyRemoteError(w, err, rowActionErrMessage)
		case result.Submission != nil && result.Submission.State == usecases.SubmissionBlocked:
			httpserver.ReplyJSONResponse(w, http.StatusUnprocessableEntity, internal.ToActionResponse(result))
		default:
			httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToActionResponse(result))
		}
	}
}

func (c *PanelController) fetchMedications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")

		view, err := c.service.FetchMedications(r.Context(), domain.ID(id))
		if errors.Is(err, usecases.ErrPatientNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, patientNotFoundErrMessage)
			return
		}
		if err != nil {
			slog.Error("fetching medications", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToDetailResponse(view))
	}
}

func (c *PanelController) status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToStatusResponse(c.service.Status(r.Context())))
	}
}

// replyRemoteError answers 502 with the remote store message, or 500 for anything else.
func replyRemoteError(w http.ResponseWriter, err error, fallback string) {
	var remoteErr *usecases.RemoteError
	if errors.As(err, &remoteErr) {
		httpserver.ReplyWithError(w, http.StatusBadGateway, remoteErr.Message)
		return
	}

	slog.Error(fallback, slog.String("error", err.Error()))
	httpserver.ReplyWithError(w, http.StatusInternalServerError, fallback)
}
