package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pulsepoll/internal/service"
)

// ResponseHandler handles respondent submission endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Submit handles POST /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var submission service.ResponseSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.responseSvc.Submit(r.Context(), surveyID, &submission, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySubmission):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSurveyNotFound):
			writeError(w, http.StatusNotFound, "survey not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"responseId": record.ID})
}
