package handler

import (
	"encoding/json"
	"net/http"

	"surveypulse/internal/model"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/middleware"
)

// AIHandler handles AI question generation
type AIHandler struct {
	generationSvc *service.GenerationService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(generationSvc *service.GenerationService) *AIHandler {
	return &AIHandler{generationSvc: generationSvc}
}

// GenerateQuestions handles POST /v1/ai/generate-questions. Pipeline failures
// still answer 200 with success=false.
//
// @Summary  Generate survey questions from a prompt
// @Tags     ai
// @Accept   json
// @Produce  json
// @Param    body  body      model.GenerateRequest  true  "prompt and question_count (default 5)"
// @Success  200   {object}  model.GenerationResult
// @Failure  400   {object}  map[string]string
// @Failure  429   {object}  map[string]string
// @Security BearerAuth
// @Router   /ai/generate-questions [post]
func (h *AIHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.generationSvc.Generate(r.Context(), middleware.GetHostID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Status handles GET /v1/ai/status
func (h *AIHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": h.generationSvc.Enabled()})
}
