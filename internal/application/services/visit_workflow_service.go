package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/domain/repositories"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// VisitWorkflowService drives the four-phase preparation workflow. Each phase
// splits into a collect operation, which calls collaborators and returns
// results without persisting anything, and a complete operation, which merges
// the collected results into the stored appointment and advances its status.
// Abandoning a phase after collecting therefore leaves no trace.
type VisitWorkflowService struct {
	repo          repositories.AppointmentRepository
	insight       providers.InsightProvider
	health        providers.HealthDataProvider
	documents     providers.DocumentProvider
	transcription providers.TranscriptionProvider
	metrics       *observability.Metrics
}

// NewVisitWorkflowService creates a new workflow service. metrics may be nil.
func NewVisitWorkflowService(
	repo repositories.AppointmentRepository,
	insight providers.InsightProvider,
	health providers.HealthDataProvider,
	documents providers.DocumentProvider,
	transcription providers.TranscriptionProvider,
	metrics *observability.Metrics,
) *VisitWorkflowService {
	return &VisitWorkflowService{
		repo:          repo,
		insight:       insight,
		health:        health,
		documents:     documents,
		transcription: transcription,
		metrics:       metrics,
	}
}

// PhaseStates returns the gate policy evaluation for one appointment
func (s *VisitWorkflowService) PhaseStates(ctx context.Context, id string) ([]entities.PhaseState, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entities.PhaseStates(appointment), nil
}

// SyncHealthData fetches wearable metrics for the given range. Nothing is
// persisted until CompleteIngest.
func (s *VisitWorkflowService) SyncHealthData(ctx context.Context, from, to time.Time) ([]entities.HealthMetric, error) {
	ctx, span := observability.StartSpan(ctx, "VisitWorkflowService.SyncHealthData")
	defer span.End()

	if !to.After(from) {
		return nil, apperrors.NewValidationError("sync range end must be after start")
	}

	start := time.Now()
	metrics, err := s.health.FetchMetrics(ctx, from, to)
	s.recordCollaborator(ctx, "health_sync", start, err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return metrics, nil
}

// ImportDocuments imports medical document metadata from a source. Nothing is
// persisted until CompleteIngest.
func (s *VisitWorkflowService) ImportDocuments(ctx context.Context, source string) ([]entities.FileDescriptor, error) {
	ctx, span := observability.StartSpan(ctx, "VisitWorkflowService.ImportDocuments")
	defer span.End()

	start := time.Now()
	files, err := s.documents.ImportDocuments(ctx, source)
	s.recordCollaborator(ctx, "documents", start, err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return files, nil
}

// CompleteIngest stores the collected metrics and attachments on the visit
// and marks the ingest phase done.
func (s *VisitWorkflowService) CompleteIngest(ctx context.Context, id string, metrics []entities.HealthMetric, attachments []entities.FileDescriptor) (*entities.Appointment, error) {
	return s.completePhase(ctx, id, entities.PhaseIngest, func(a *entities.Appointment) error {
		a.HealthMetrics = metrics
		a.Attachments = attachments
		a.DataIngested = true
		return nil
	})
}

// SynthesizeInsights generates the gist and anomaly alerts from clinical
// input and metrics. Nothing is persisted until CompleteSynthesize.
func (s *VisitWorkflowService) SynthesizeInsights(ctx context.Context, clinicalInput string, metrics []entities.HealthMetric) (*entities.Gist, []entities.AnomalyAlert, error) {
	ctx, span := observability.StartSpan(ctx, "VisitWorkflowService.SynthesizeInsights")
	defer span.End()

	if strings.TrimSpace(clinicalInput) == "" {
		return nil, nil, apperrors.NewValidationError("clinical input is required")
	}

	start := time.Now()
	gist, err := s.insight.GenerateGist(ctx, clinicalInput)
	s.recordCollaborator(ctx, "insight_gist", start, err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, nil, err
	}

	start = time.Now()
	anomalies, err := s.insight.DetectAnomalies(ctx, metrics)
	s.recordCollaborator(ctx, "insight_anomalies", start, err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, nil, err
	}

	return gist, anomalies, nil
}

// CompleteSynthesize stores the gist and anomalies and marks the synthesize
// phase done. Requires the ingest phase to be done.
func (s *VisitWorkflowService) CompleteSynthesize(ctx context.Context, id string, gist *entities.Gist, anomalies []entities.AnomalyAlert) (*entities.Appointment, error) {
	return s.completePhase(ctx, id, entities.PhaseSynthesize, func(a *entities.Appointment) error {
		if gist == nil {
			return apperrors.NewValidationError("gist is required to complete synthesis")
		}
		a.Gist = gist
		a.Anomalies = anomalies
		a.GistGenerated = true
		return nil
	})
}

// GenerateAgenda produces the strategic question agenda. Nothing is persisted
// until CompletePrepare.
func (s *VisitWorkflowService) GenerateAgenda(ctx context.Context, input entities.QuestionInput) ([]entities.StrategicQuestion, error) {
	ctx, span := observability.StartSpan(ctx, "VisitWorkflowService.GenerateAgenda")
	defer span.End()

	if strings.TrimSpace(input.MedicalInput) == "" {
		return nil, apperrors.NewValidationError("medical input is required")
	}

	start := time.Now()
	questions, err := s.insight.GenerateQuestions(ctx, input)
	s.recordCollaborator(ctx, "insight_questions", start, err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return questions, nil
}

// CompletePrepare stores the agenda and marks the prepare phase done, which
// makes the visit ready. Requires the synthesize phase to be done.
func (s *VisitWorkflowService) CompletePrepare(ctx context.Context, id string, agenda []entities.StrategicQuestion) (*entities.Appointment, error) {
	return s.completePhase(ctx, id, entities.PhasePrepare, func(a *entities.Appointment) error {
		if len(agenda) == 0 {
			return apperrors.NewValidationError("agenda cannot be empty")
		}
		a.Agenda = agenda
		a.AgendaPrepared = true
		return nil
	})
}

// RecordRecap transcribes a visit recording and summarizes it. Nothing is
// persisted until CompleteRecap.
func (s *VisitWorkflowService) RecordRecap(ctx context.Context, recordingRef string) (*entities.Recap, error) {
	ctx, span := observability.StartSpan(ctx, "VisitWorkflowService.RecordRecap")
	defer span.End()

	start := time.Now()
	transcript, err := s.transcription.TranscribeVisit(ctx, recordingRef)
	s.recordCollaborator(ctx, "transcription", start, err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	start = time.Now()
	recap, err := s.insight.GenerateRecap(ctx, transcript)
	s.recordCollaborator(ctx, "insight_recap", start, err)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return recap, nil
}

// CompleteRecap stores the recap and completes the visit. The recap phase is
// reachable from any prior status; a stored summary forces completion even
// when the agenda was never prepared.
func (s *VisitWorkflowService) CompleteRecap(ctx context.Context, id string, recap *entities.Recap) (*entities.Appointment, error) {
	return s.completePhase(ctx, id, entities.PhaseRecap, func(a *entities.Appointment) error {
		if recap == nil || strings.TrimSpace(recap.Summary) == "" {
			return apperrors.NewValidationError("recap summary is required")
		}
		summary := recap.Summary
		a.RecapSummary = &summary
		a.ActionItems = recap.ActionItems
		a.FollowUps = recap.FollowUps
		a.VisitRecorded = true
		return nil
	})
}

// completePhase loads the visit, enforces the gate policy, applies the merge
// and persists the refreshed appointment.
func (s *VisitWorkflowService) completePhase(ctx context.Context, id string, phase entities.VisitPhase, merge func(*entities.Appointment) error) (*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "VisitWorkflowService.CompletePhase")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("appointment.id", id),
		attribute.String("workflow.phase", string(phase)),
	)

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if entities.IsPhaseReadOnly(phase, appointment) {
		return nil, apperrors.NewValidationError("visit is completed; phase data is read-only")
	}
	if !entities.IsPhaseAvailable(phase, appointment) {
		return nil, apperrors.NewValidationError("phase is locked until earlier phases complete")
	}

	if err := merge(appointment); err != nil {
		return nil, err
	}

	appointment.Refresh()
	appointment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, appointment); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		observability.RecordPhaseSave(ctx, s.metrics, string(phase))
	}
	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", id).
		Str("phase", string(phase)).
		Str("status", string(appointment.Status)).
		Msg("completed workflow phase")
	return appointment, nil
}

func (s *VisitWorkflowService) recordCollaborator(ctx context.Context, name string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	observability.RecordCollaboratorMetric(ctx, s.metrics, name, time.Since(start), err)
}
