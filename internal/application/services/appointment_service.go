package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/repositories"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// AppointmentService manages the appointment collection: creation, listing,
// header edits and deletion. Workflow phase progress lives in
// VisitWorkflowService.
type AppointmentService struct {
	repo repositories.AppointmentRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// CreateAppointmentInput carries the header fields for a new visit
type CreateAppointmentInput struct {
	DoctorName string    `json:"doctor_name"`
	Reason     string    `json:"reason"`
	Date       time.Time `json:"date"`
}

// UpdateAppointmentInput carries optional header edits. Nil fields are left
// unchanged. Header fields stay editable after the visit completes.
type UpdateAppointmentInput struct {
	DoctorName *string    `json:"doctor_name,omitempty"`
	Reason     *string    `json:"reason,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}

// StartNewVisit creates a draft appointment with no phase progress
func (s *AppointmentService) StartNewVisit(ctx context.Context, input CreateAppointmentInput) (*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.StartNewVisit")
	defer span.End()

	if strings.TrimSpace(input.DoctorName) == "" {
		return nil, apperrors.NewValidationError("doctor name is required")
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("visit date is required")
	}

	now := time.Now().UTC()
	appointment := &entities.Appointment{
		ID:         uuid.New().String(),
		DoctorName: strings.TrimSpace(input.DoctorName),
		Reason:     strings.TrimSpace(input.Reason),
		Date:       input.Date,
		Status:     entities.VisitStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Save(ctx, appointment); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.SetSpanAttributes(span, attribute.String("appointment.id", appointment.ID))
	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("doctor", appointment.DoctorName).
		Msg("started new visit")
	return appointment, nil
}

// ListAppointments returns every appointment, most recent visit date first
func (s *AppointmentService) ListAppointments(ctx context.Context) ([]*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.ListAppointments")
	defer span.End()

	appointments, err := s.repo.GetAll(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return appointments, nil
}

// GetAppointment fetches a single appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.GetAppointment")
	defer span.End()

	if id == "" {
		return nil, apperrors.NewValidationError("appointment id is required")
	}

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return appointment, nil
}

// UpdateDetails edits the header fields of a visit. This works in every
// lifecycle status, including completed; only phase data freezes on
// completion.
func (s *AppointmentService) UpdateDetails(ctx context.Context, id string, input UpdateAppointmentInput) (*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.UpdateDetails")
	defer span.End()

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if input.DoctorName != nil {
		name := strings.TrimSpace(*input.DoctorName)
		if name == "" {
			return nil, apperrors.NewValidationError("doctor name cannot be empty")
		}
		appointment.DoctorName = name
	}
	if input.Reason != nil {
		appointment.Reason = strings.TrimSpace(*input.Reason)
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, apperrors.NewValidationError("visit date cannot be empty")
		}
		appointment.Date = *input.Date
	}
	appointment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, appointment); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return appointment, nil
}

// DeleteAppointment removes a visit. Deleting an unknown ID is a no-op.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.DeleteAppointment")
	defer span.End()

	if id == "" {
		return apperrors.NewValidationError("appointment id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", id).
		Msg("deleted appointment")
	return nil
}
