package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/visitprep/internal/application/services"
	"github.com/careloop/visitprep/internal/domain/entities"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// stubRepository is a minimal in-memory repository for handler tests
type stubRepository struct {
	appointments map[string]*entities.Appointment
}

func newStubRepository(seed ...*entities.Appointment) *stubRepository {
	repo := &stubRepository{appointments: make(map[string]*entities.Appointment)}
	for _, a := range seed {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (r *stubRepository) GetAll(ctx context.Context) ([]*entities.Appointment, error) {
	all := make([]*entities.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		all = append(all, a)
	}
	return all, nil
}

func (r *stubRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}
	copied := *a
	return &copied, nil
}

func (r *stubRepository) Save(ctx context.Context, appointment *entities.Appointment) error {
	copied := *appointment
	r.appointments[appointment.ID] = &copied
	return nil
}

func (r *stubRepository) Delete(ctx context.Context, id string) error {
	delete(r.appointments, id)
	return nil
}

// stubInsightProvider returns fixed content
type stubInsightProvider struct{}

func (stubInsightProvider) GenerateGist(ctx context.Context, clinicalInput string) (*entities.Gist, error) {
	return &entities.Gist{Cause: "Meniscus tear", Location: "Right knee", Goal: "Restore mobility"}, nil
}

func (stubInsightProvider) DetectAnomalies(ctx context.Context, metrics []entities.HealthMetric) ([]entities.AnomalyAlert, error) {
	return nil, nil
}

func (stubInsightProvider) GenerateQuestions(ctx context.Context, input entities.QuestionInput) ([]entities.StrategicQuestion, error) {
	return []entities.StrategicQuestion{
		{Category: entities.QuestionCategoryTreatment, Question: "Is surgery needed?"},
	}, nil
}

func (stubInsightProvider) GenerateRecap(ctx context.Context, transcript string) (*entities.Recap, error) {
	return &entities.Recap{Summary: "Therapy first"}, nil
}

type stubHealthProvider struct{}

func (stubHealthProvider) FetchMetrics(ctx context.Context, from, to time.Time) ([]entities.HealthMetric, error) {
	return []entities.HealthMetric{{Type: "steps", Value: 7000, Unit: "count", Timestamp: to}}, nil
}

type stubDocumentProvider struct{}

func (stubDocumentProvider) ImportDocuments(ctx context.Context, source string) ([]entities.FileDescriptor, error) {
	return []entities.FileDescriptor{{Name: "mri.pdf", SizeBytes: 100, Extension: "pdf"}}, nil
}

type stubTranscriptionProvider struct{}

func (stubTranscriptionProvider) TranscribeVisit(ctx context.Context, recordingRef string) (string, error) {
	return "Doctor: therapy first.", nil
}

func newVisitHandler(repo *stubRepository) *VisitHandler {
	workflow := services.NewVisitWorkflowService(
		repo,
		stubInsightProvider{},
		stubHealthProvider{},
		stubDocumentProvider{},
		stubTranscriptionProvider{},
		nil,
	)
	return NewVisitHandler(workflow)
}

func newTestMux(repo *stubRepository) *http.ServeMux {
	handler := newVisitHandler(repo)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/appointments/{id}/phases", handler.GetPhaseStates)
	mux.HandleFunc("POST /api/visits/health-data/sync", handler.SyncHealthData)
	mux.HandleFunc("POST /api/appointments/{id}/ingest/complete", handler.CompleteIngest)
	mux.HandleFunc("POST /api/appointments/{id}/synthesize/complete", handler.CompleteSynthesize)
	mux.HandleFunc("POST /api/appointments/{id}/recap/complete", handler.CompleteRecap)
	return mux
}

func seedDraft(id string) *entities.Appointment {
	return &entities.Appointment{
		ID:         id,
		DoctorName: "Dr. Lee",
		Reason:     "Knee pain",
		Date:       time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
		Status:     entities.VisitStatusDraft,
	}
}

func TestGetPhaseStates(t *testing.T) {
	t.Run("returns all four phases", func(t *testing.T) {
		mux := newTestMux(newStubRepository(seedDraft("apt-1")))

		req := httptest.NewRequest(http.MethodGet, "/api/appointments/apt-1/phases", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Phases []entities.PhaseState `json:"phases"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Phases, 4)
	})

	t.Run("unknown appointment returns 404", func(t *testing.T) {
		mux := newTestMux(newStubRepository())

		req := httptest.NewRequest(http.MethodGet, "/api/appointments/missing/phases", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCompleteIngestEndpoint(t *testing.T) {
	repo := newStubRepository(seedDraft("apt-1"))
	mux := newTestMux(repo)

	payload, _ := json.Marshal(map[string]interface{}{
		"health_metrics": []entities.HealthMetric{
			{Type: "steps", Value: 7000, Unit: "count", Timestamp: time.Now().UTC()},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/appointments/apt-1/ingest/complete", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var appointment entities.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appointment))
	assert.Equal(t, entities.VisitStatusPreparing, appointment.Status)
	assert.True(t, appointment.DataIngested)
}

func TestGateRejectionMapsTo422(t *testing.T) {
	// Synthesize before ingest is a gate violation
	mux := newTestMux(newStubRepository(seedDraft("apt-1")))

	payload, _ := json.Marshal(map[string]interface{}{
		"gist": entities.Gist{Cause: "c", Location: "l", Goal: "g"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/appointments/apt-1/synthesize/complete", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCompleteRecapEndpoint(t *testing.T) {
	repo := newStubRepository(seedDraft("apt-1"))
	mux := newTestMux(repo)

	payload, _ := json.Marshal(entities.Recap{
		Summary:     "Therapy first, reassess in six weeks",
		ActionItems: []string{"Book therapy"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/appointments/apt-1/recap/complete", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var appointment entities.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appointment))
	assert.Equal(t, entities.VisitStatusCompleted, appointment.Status)
}

func TestSyncHealthDataEndpoint(t *testing.T) {
	mux := newTestMux(newStubRepository())

	payload, _ := json.Marshal(map[string]interface{}{
		"from": time.Now().Add(-7 * 24 * time.Hour),
		"to":   time.Now(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/visits/health-data/sync", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		HealthMetrics []entities.HealthMetric `json:"health_metrics"`
		Count         int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}
