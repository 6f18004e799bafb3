package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/careloop/visitprep/internal/application/services"
	"github.com/careloop/visitprep/internal/domain/entities"
)

// VisitHandler handles workflow phase requests. Collect endpoints return
// provider results without touching storage; complete endpoints persist them
// and advance the visit status.
type VisitHandler struct {
	workflow *services.VisitWorkflowService
}

// NewVisitHandler creates a new visit workflow handler
func NewVisitHandler(workflow *services.VisitWorkflowService) *VisitHandler {
	return &VisitHandler{workflow: workflow}
}

// GetPhaseStates handles GET /api/appointments/{id}/phases
func (h *VisitHandler) GetPhaseStates(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	states, err := h.workflow.PhaseStates(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"phases": states})
}

// SyncHealthData handles POST /api/visits/health-data/sync
func (h *VisitHandler) SyncHealthData(w http.ResponseWriter, r *http.Request) {
	var input struct {
		From time.Time `json:"from"`
		To   time.Time `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	metrics, err := h.workflow.SyncHealthData(r.Context(), input.From, input.To)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"health_metrics": metrics,
		"count":          len(metrics),
	})
}

// ImportDocuments handles POST /api/visits/documents/import
func (h *VisitHandler) ImportDocuments(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	files, err := h.workflow.ImportDocuments(r.Context(), input.Source)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"attachments": files,
		"count":       len(files),
	})
}

// CompleteIngest handles POST /api/appointments/{id}/ingest/complete
func (h *VisitHandler) CompleteIngest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var input struct {
		HealthMetrics []entities.HealthMetric   `json:"health_metrics"`
		Attachments   []entities.FileDescriptor `json:"attachments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.workflow.CompleteIngest(r.Context(), id, input.HealthMetrics, input.Attachments)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// SynthesizeInsights handles POST /api/visits/insights/synthesize
func (h *VisitHandler) SynthesizeInsights(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ClinicalInput string                  `json:"clinical_input"`
		HealthMetrics []entities.HealthMetric `json:"health_metrics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gist, anomalies, err := h.workflow.SynthesizeInsights(r.Context(), input.ClinicalInput, input.HealthMetrics)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"gist":      gist,
		"anomalies": anomalies,
	})
}

// CompleteSynthesize handles POST /api/appointments/{id}/synthesize/complete
func (h *VisitHandler) CompleteSynthesize(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var input struct {
		Gist      *entities.Gist          `json:"gist"`
		Anomalies []entities.AnomalyAlert `json:"anomalies"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.workflow.CompleteSynthesize(r.Context(), id, input.Gist, input.Anomalies)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// GenerateAgenda handles POST /api/visits/agenda/generate
func (h *VisitHandler) GenerateAgenda(w http.ResponseWriter, r *http.Request) {
	var input entities.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.workflow.GenerateAgenda(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

// CompletePrepare handles POST /api/appointments/{id}/prepare/complete
func (h *VisitHandler) CompletePrepare(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var input struct {
		Agenda []entities.StrategicQuestion `json:"agenda"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.workflow.CompletePrepare(r.Context(), id, input.Agenda)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// RecordRecap handles POST /api/visits/recap/record
func (h *VisitHandler) RecordRecap(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RecordingRef string `json:"recording_ref"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recap, err := h.workflow.RecordRecap(r.Context(), input.RecordingRef)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, recap)
}

// CompleteRecap handles POST /api/appointments/{id}/recap/complete
func (h *VisitHandler) CompleteRecap(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	var input entities.Recap
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.workflow.CompleteRecap(r.Context(), id, &input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}
