package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careloop/visitprep/internal/domain/entities"
)

func strPtr(s string) *string { return &s }

func TestDeriveStatus_AllFlagCombinations(t *testing.T) {
	// Without a recap, every flag combination maps to exactly one status
	for i := 0; i < 8; i++ {
		flags := entities.StepFlags{
			DataIngested:   i&1 != 0,
			GistGenerated:  i&2 != 0,
			AgendaPrepared: i&4 != 0,
		}

		expected := entities.VisitStatusDraft
		switch {
		case flags.AgendaPrepared:
			expected = entities.VisitStatusVisitReady
		case flags.DataIngested || flags.GistGenerated:
			expected = entities.VisitStatusPreparing
		}

		assert.Equal(t, expected, entities.DeriveStatus(flags, nil), "flags %+v", flags)
	}
}

func TestDeriveStatus_RecapDominatesAllFlags(t *testing.T) {
	recap := strPtr("Doctor confirmed the tear is minor.")

	for i := 0; i < 16; i++ {
		flags := entities.StepFlags{
			DataIngested:   i&1 != 0,
			GistGenerated:  i&2 != 0,
			AgendaPrepared: i&4 != 0,
			VisitRecorded:  i&8 != 0,
		}
		assert.Equal(t, entities.VisitStatusCompleted, entities.DeriveStatus(flags, recap), "flags %+v", flags)
	}
}

func TestDeriveStatus_Idempotent(t *testing.T) {
	flags := entities.StepFlags{DataIngested: true, GistGenerated: true}

	first := entities.DeriveStatus(flags, nil)
	second := entities.DeriveStatus(flags, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, entities.VisitStatusPreparing, first)
}

func TestDeriveStatus_Progression(t *testing.T) {
	a := &entities.Appointment{DoctorName: "Dr. Lee", Reason: "Knee pain"}
	a.Refresh()
	assert.Equal(t, entities.VisitStatusDraft, a.Status)

	a.DataIngested = true
	a.Refresh()
	assert.Equal(t, entities.VisitStatusPreparing, a.Status)

	a.GistGenerated = true
	a.Refresh()
	assert.Equal(t, entities.VisitStatusPreparing, a.Status)

	a.AgendaPrepared = true
	a.Refresh()
	assert.Equal(t, entities.VisitStatusVisitReady, a.Status)

	a.RecapSummary = strPtr("All good.")
	a.Refresh()
	assert.Equal(t, entities.VisitStatusCompleted, a.Status)
	assert.True(t, a.IsCompleted())
}

func TestDeriveStatus_RecapWithoutAgenda(t *testing.T) {
	// Recording a recap completes the visit even when the agenda phase was
	// never entered
	flags := entities.StepFlags{DataIngested: true}
	assert.Equal(t, entities.VisitStatusCompleted, entities.DeriveStatus(flags, strPtr("Short visit.")))
}

func TestVisitStatus_IsValid(t *testing.T) {
	assert.True(t, entities.VisitStatusDraft.IsValid())
	assert.True(t, entities.VisitStatusPreparing.IsValid())
	assert.True(t, entities.VisitStatusVisitReady.IsValid())
	assert.True(t, entities.VisitStatusCompleted.IsValid())
	assert.False(t, entities.VisitStatus("inProgress").IsValid())
	assert.False(t, entities.VisitStatus("").IsValid())
}
