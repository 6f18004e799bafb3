package storage_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/visitprep/internal/adapters/events"
	"github.com/careloop/visitprep/internal/adapters/storage"
	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/domain/repositories"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

func newFileStore(t *testing.T) (repositories.AppointmentRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.json")
	return storage.NewAppointmentStore(storage.NewFileDocumentStore(path), nil), path
}

func writeDocument(t *testing.T, path string, records ...string) {
	t.Helper()
	doc := fmt.Sprintf(`{"version":1,"appointments":[%s]}`, joinRecords(records))
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
}

func joinRecords(records []string) string {
	out := ""
	for i, r := range records {
		if i > 0 {
			out += ","
		}
		out += r
	}
	return out
}

func newAppointment(id string, date time.Time) *entities.Appointment {
	a := &entities.Appointment{
		ID:         id,
		DoctorName: "Dr. Lee",
		Reason:     "Knee pain",
		Date:       date,
		CreatedAt:  date.Add(-24 * time.Hour),
		UpdatedAt:  date.Add(-24 * time.Hour),
	}
	a.Refresh()
	return a
}

func TestAppointmentStore_EmptyMedium(t *testing.T) {
	store, _ := newFileStore(t)

	appointments, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, appointments)
}

func TestAppointmentStore_MalformedDocumentIsEmptyCollection(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	appointments, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, appointments)
}

func TestAppointmentStore_SkipsMalformedRecords(t *testing.T) {
	store, path := newFileStore(t)

	writeDocument(t, path,
		`{"id":"a-1","doctor_name":"Dr. Lee","reason":"Knee pain","date":"2026-08-20T10:00:00Z","status":"draft"}`,
		`{"id":"a-2","status":42}`,
		`{"id":"a-3","doctor_name":"Dr. Osei","reason":"Follow-up","date":"2026-08-22T09:00:00Z","status":"preparing"}`,
	)

	appointments, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, appointments, 2)

	// Sorted by date descending
	assert.Equal(t, "a-3", appointments[0].ID)
	assert.Equal(t, "a-1", appointments[1].ID)
}

func TestAppointmentStore_LegacyStatusMigration(t *testing.T) {
	store, path := newFileStore(t)

	writeDocument(t, path,
		`{"id":"a-1","doctor_name":"Dr. Lee","reason":"Knee pain","date":"2026-08-20T10:00:00Z","status":"inProgress","data_ingested":true}`,
		`{"id":"a-2","doctor_name":"Dr. Osei","reason":"Checkup","date":"2026-08-21T10:00:00Z","status":"upcoming"}`,
	)

	first, err := store.GetByID(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, entities.VisitStatusPreparing, first.Status)
	assert.True(t, first.DataIngested)

	second, err := store.GetByID(context.Background(), "a-2")
	require.NoError(t, err)
	assert.Equal(t, entities.VisitStatusDraft, second.Status)
}

func TestAppointmentStore_UnknownStatusIsSkipped(t *testing.T) {
	store, path := newFileStore(t)

	writeDocument(t, path,
		`{"id":"a-1","doctor_name":"Dr. Lee","reason":"Knee pain","date":"2026-08-20T10:00:00Z","status":"archived"}`,
	)

	appointments, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, appointments)
}

func TestAppointmentStore_UpsertSemantics(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	first := newAppointment("a-1", time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, first))

	second := newAppointment("a-2", time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, second))

	appointments, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 2)

	// Saving an existing id replaces without duplication
	first.Reason = "Knee pain, worsening"
	first.DataIngested = true
	first.Refresh()
	require.NoError(t, store.Save(ctx, first))

	appointments, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 2)

	updated, err := store.GetByID(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "Knee pain, worsening", updated.Reason)
	assert.Equal(t, entities.VisitStatusPreparing, updated.Status)
}

func TestAppointmentStore_RoundTrip(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	summary := "Continue physio twice a week."
	appointment := &entities.Appointment{
		ID:         "a-1",
		DoctorName: "Dr. Lee",
		Reason:     "Knee pain",
		Date:       time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		StepFlags: entities.StepFlags{
			DataIngested:   true,
			GistGenerated:  true,
			AgendaPrepared: true,
			VisitRecorded:  true,
		},
		HealthMetrics: []entities.HealthMetric{
			{Type: "heart_rate", Value: 72, Unit: "bpm", Timestamp: time.Date(2026, 8, 19, 8, 0, 0, 0, time.UTC)},
		},
		Attachments: []entities.FileDescriptor{
			{Name: "mri_report.pdf", SizeBytes: 48213, Extension: "pdf"},
		},
		Gist: &entities.Gist{Cause: "cushion wear", Location: "inner knee", Goal: "reduce pain"},
		Anomalies: []entities.AnomalyAlert{
			{Title: "Elevated resting heart rate", Description: "Above your usual range", Timestamp: time.Date(2026, 8, 18, 7, 0, 0, 0, time.UTC), HighPriority: true},
		},
		Agenda: []entities.StrategicQuestion{
			{Category: entities.QuestionCategoryUnderstanding, Question: "What does this finding mean?"},
			{Category: entities.QuestionCategoryTreatment, Question: "What are my options?", IsSecondaryOversight: true},
		},
		RecapSummary: &summary,
		ActionItems:  []string{"Book physio"},
		FollowUps:    []string{"MRI in 6 months"},
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	appointment.Refresh()

	require.NoError(t, store.Save(ctx, appointment))

	loaded, err := store.GetByID(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, appointment, loaded)
	assert.Equal(t, entities.VisitStatusCompleted, loaded.Status)
}

func TestAppointmentStore_DeleteMissingIsNoOp(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newAppointment("a-1", time.Now())))
	require.NoError(t, store.Delete(ctx, "nope"))

	appointments, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}

func TestAppointmentStore_Delete(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newAppointment("a-1", time.Now())))
	require.NoError(t, store.Delete(ctx, "a-1"))

	_, err := store.GetByID(ctx, "a-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAppointmentStore_NewRecordInsertedAtHead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	docs := storage.NewFileDocumentStore(path)
	store := storage.NewAppointmentStore(docs, nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newAppointment("a-1", time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))))
	require.NoError(t, store.Save(ctx, newAppointment("a-2", time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC))))

	// The stored sequence has the newest save first, regardless of date
	raw, err := docs.Load(ctx)
	require.NoError(t, err)

	var envelope struct {
		Version      int               `json:"version"`
		Appointments []json.RawMessage `json:"appointments"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Len(t, envelope.Appointments, 2)

	var head struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Appointments[0], &head))
	assert.Equal(t, "a-2", head.ID)
}

func TestAppointmentStore_PublishesOnSaveAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	store := storage.NewAppointmentStore(storage.NewFileDocumentStore(path), bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := bus.Subscribe(ctx, providers.EventChannelAppointmentUpdates)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, newAppointment("a-1", time.Now())))

	select {
	case event := <-eventChan:
		assert.Equal(t, entities.AppointmentEventTypeSaved, event.EventType)
		assert.Equal(t, "a-1", event.AppointmentID)
	case <-time.After(time.Second):
		t.Fatal("expected save event")
	}

	require.NoError(t, store.Delete(ctx, "a-1"))

	select {
	case event := <-eventChan:
		assert.Equal(t, entities.AppointmentEventTypeDeleted, event.EventType)
	case <-time.After(time.Second):
		t.Fatal("expected delete event")
	}
}

func TestFileDocumentStore_LoadMissingFile(t *testing.T) {
	docs := storage.NewFileDocumentStore(filepath.Join(t.TempDir(), "missing.json"))

	data, err := docs.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileDocumentStore_StoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "appointments.json")
	docs := storage.NewFileDocumentStore(path)

	require.NoError(t, docs.Store(context.Background(), []byte(`{"version":2,"appointments":[]}`)))

	data, err := docs.Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2,"appointments":[]}`, string(data))
}
