package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/service"
)

// AnalyticsHandler handles analytics endpoints
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Report handles GET /v1/surveys/{surveyId}/analytics
//
// @Summary  Per-question analytics
// @Tags     analytics
// @Produce  json
// @Param    surveyId  path      string  true  "survey id"
// @Success  200       {object}  model.AnalyticsReport
// @Failure  404       {object}  map[string]string
// @Security BearerAuth
// @Router   /surveys/{surveyId}/analytics [get]
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsSvc.Report(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Summary handles GET /v1/surveys/{surveyId}/summary
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsSvc.Summary(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
