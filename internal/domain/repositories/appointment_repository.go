package repositories

import (
	"context"

	"github.com/careloop/visitprep/internal/domain/entities"
)

// AppointmentRepository defines the persistence contract for appointments.
//
// Implementations keep the whole collection in one durable document and
// rewrite it on every Save; callers see upsert semantics keyed by ID.
type AppointmentRepository interface {
	// GetAll returns every decodable appointment, sorted by date descending.
	// Records that fail to decode are skipped, never surfaced as errors.
	GetAll(ctx context.Context) ([]*entities.Appointment, error)

	// GetByID returns the appointment with the given ID or a typed
	// not-found error.
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Save upserts by ID: an existing record is replaced in place, a new
	// one is inserted at the head of the stored sequence.
	Save(ctx context.Context, appointment *entities.Appointment) error

	// Delete removes the appointment with the given ID. A missing ID is a
	// no-op, not an error.
	Delete(ctx context.Context, id string) error
}
