package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/domain/repositories"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// schemaVersion is written into every persisted document. Older documents
// are readable without a version bump: absent booleans default to false and
// legacy status values are migrated on read.
const schemaVersion = 2

// collectionEnvelope is the persisted layout: one document holding the
// ordered appointment sequence
type collectionEnvelope struct {
	Version      int               `json:"version"`
	Appointments []json.RawMessage `json:"appointments"`
}

// legacyStatusValues maps historical status strings to their current
// spelling. The substitution runs on the raw string before enum parsing;
// applied any later the record would fail decoding and be dropped.
var legacyStatusValues = map[string]entities.VisitStatus{
	"inProgress": entities.VisitStatusPreparing,
	"upcoming":   entities.VisitStatusDraft,
}

// AppointmentStore implements the AppointmentRepository interface over a
// whole-document medium. Every save re-serializes the full collection; a
// process-wide mutex keeps at most one save in flight.
type AppointmentStore struct {
	docs DocumentStore
	bus  providers.EventBus
	mu   sync.Mutex
}

// NewAppointmentStore creates an appointment store over the given medium.
// The event bus is optional; when present the store publishes on every save
// and delete.
func NewAppointmentStore(docs DocumentStore, bus providers.EventBus) repositories.AppointmentRepository {
	return &AppointmentStore{docs: docs, bus: bus}
}

// GetAll returns every decodable appointment, sorted by date descending
func (s *AppointmentStore) GetAll(ctx context.Context) ([]*entities.Appointment, error) {
	appointments, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Date.After(appointments[j].Date)
	})
	return appointments, nil
}

// GetByID returns the appointment with the given ID
func (s *AppointmentStore) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	appointments, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
}

// Save upserts the appointment and rewrites the whole collection
func (s *AppointmentStore) Save(ctx context.Context, appointment *entities.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range appointments {
		if existing.ID == appointment.ID {
			appointments[i] = appointment
			replaced = true
			break
		}
	}
	if !replaced {
		appointments = append([]*entities.Appointment{appointment}, appointments...)
	}

	if err := s.storeRecords(ctx, appointments); err != nil {
		return err
	}

	s.publish(ctx, entities.NewAppointmentEvent(appointment.ID, entities.AppointmentEventTypeSaved, appointment.Status))
	return nil
}

// Delete removes the appointment with the given ID; a missing ID is a no-op
func (s *AppointmentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	remaining := appointments[:0]
	found := false
	for _, a := range appointments {
		if a.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, a)
	}
	if !found {
		return nil
	}

	if err := s.storeRecords(ctx, remaining); err != nil {
		return err
	}

	s.publish(ctx, entities.NewAppointmentEvent(id, entities.AppointmentEventTypeDeleted, ""))
	return nil
}

// loadRecords decodes the stored document in its persisted order. A
// malformed top-level payload is treated as an empty collection; a malformed
// record is skipped so partial corruption never hides the rest.
func (s *AppointmentStore) loadRecords(ctx context.Context) ([]*entities.Appointment, error) {
	data, err := s.docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []*entities.Appointment{}, nil
	}

	var envelope collectionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("appointment document is malformed, treating as empty")
		return []*entities.Appointment{}, nil
	}

	appointments := make([]*entities.Appointment, 0, len(envelope.Appointments))
	for _, raw := range envelope.Appointments {
		appointment, err := decodeRecord(raw)
		if err != nil {
			observability.GetLogger().Warn().Err(err).Msg("skipping undecodable appointment record")
			continue
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

// storeRecords re-serializes the collection and overwrites the medium
func (s *AppointmentStore) storeRecords(ctx context.Context, appointments []*entities.Appointment) error {
	envelope := collectionEnvelope{
		Version:      schemaVersion,
		Appointments: make([]json.RawMessage, 0, len(appointments)),
	}
	for _, a := range appointments {
		raw, err := json.Marshal(a)
		if err != nil {
			return apperrors.NewInternalError("failed to encode appointment record", err)
		}
		envelope.Appointments = append(envelope.Appointments, raw)
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return apperrors.NewInternalError("failed to encode appointment document", err)
	}
	return s.docs.Store(ctx, data)
}

// publish notifies subscribers of a change; delivery is best effort
func (s *AppointmentStore) publish(ctx context.Context, event *entities.AppointmentEvent) {
	if s.bus == nil {
		return
	}
	channels := []string{
		providers.EventChannelAppointmentUpdates,
		providers.GetAppointmentChannel(event.AppointmentID),
	}
	for _, channel := range channels {
		if err := s.bus.Publish(ctx, channel, event); err != nil {
			observability.GetLogger().Warn().Err(err).Str("channel", channel).Msg("failed to publish appointment event")
		}
	}
}

// decodeRecord decodes one stored record, migrating legacy status values
// before the enum is parsed
func decodeRecord(raw json.RawMessage) (*entities.Appointment, error) {
	var record struct {
		entities.Appointment
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, apperrors.NewDecodeError("malformed appointment record", err)
	}
	if record.Appointment.ID == "" {
		return nil, apperrors.NewDecodeError("appointment record has no id", nil)
	}

	status := record.Status
	if migrated, ok := legacyStatusValues[status]; ok {
		status = string(migrated)
	}
	parsed := entities.VisitStatus(status)
	if !parsed.IsValid() {
		return nil, apperrors.NewDecodeError(fmt.Sprintf("unknown visit status %q", record.Status), nil)
	}

	appointment := record.Appointment
	appointment.Status = parsed
	return &appointment, nil
}
