package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/model"
	"surveypulse/internal/service"
)

// ResponseHandler handles response submission and export
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Submit handles POST /v1/surveys/{surveyId}/responses
//
// @Summary  Submit a response
// @Tags     responses
// @Accept   json
// @Produce  json
// @Param    surveyId  path      string                       true  "survey id"
// @Param    body      body      model.SubmitResponseRequest  true  "answers keyed by question text"
// @Success  201       {object}  model.ResponseRecord
// @Failure  400       {object}  map[string]string
// @Failure  404       {object}  map[string]string
// @Failure  409       {object}  map[string]string
// @Router   /surveys/{surveyId}/responses [post]
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.responseSvc.Submit(r.Context(), mux.Vars(r)["surveyId"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// List handles GET /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	responses, err := h.responseSvc.List(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"responses": responses,
		"count":     len(responses),
	})
}

// Get handles GET /v1/surveys/{surveyId}/responses/{responseId}
//
// @Summary   Get one response
// @Tags      responses
// @Produce   json
// @Security  BearerAuth
// @Param     surveyId    path      string  true  "survey id"
// @Param     responseId  path      string  true  "response id"
// @Success   200         {object}  model.ResponseRecord
// @Failure   404         {object}  map[string]string
// @Router    /surveys/{surveyId}/responses/{responseId} [get]
func (h *ResponseHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	record, err := h.responseSvc.Get(r.Context(), vars["surveyId"], vars["responseId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Export handles GET /v1/surveys/{surveyId}/responses/export
func (h *ResponseHandler) Export(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	// Rendered in memory so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := h.responseSvc.ExportCSV(r.Context(), surveyID, &buf); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="survey-%s-responses.csv"`, surveyID))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
