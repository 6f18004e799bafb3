package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/visitprep/internal/adapters/events"
	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
)

func TestMemoryEventBus_PublishSubscribe(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := bus.Subscribe(ctx, providers.EventChannelAppointmentUpdates)
	require.NoError(t, err)

	event := entities.NewAppointmentEvent("appt-1", entities.AppointmentEventTypeSaved, entities.VisitStatusPreparing)
	require.NoError(t, bus.Publish(ctx, providers.EventChannelAppointmentUpdates, event))

	select {
	case received := <-eventChan:
		assert.Equal(t, "appt-1", received.AppointmentID)
		assert.Equal(t, entities.AppointmentEventTypeSaved, received.EventType)
		assert.Equal(t, entities.VisitStatusPreparing, received.Status)
	case <-time.After(time.Second):
		t.Fatal("expected event was not delivered")
	}
}

func TestMemoryEventBus_ChannelIsolation(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := bus.Subscribe(ctx, providers.GetAppointmentChannel("appt-1"))
	require.NoError(t, err)

	other := entities.NewAppointmentEvent("appt-2", entities.AppointmentEventTypeSaved, entities.VisitStatusDraft)
	require.NoError(t, bus.Publish(ctx, providers.GetAppointmentChannel("appt-2"), other))

	select {
	case <-eventChan:
		t.Fatal("received event from an unrelated channel")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryEventBus_SubscriberCancellation(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	eventChan, err := bus.Subscribe(ctx, providers.EventChannelAppointmentUpdates)
	require.NoError(t, err)

	cancel()

	// The subscriber channel closes once the context is done
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-eventChan:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryEventBus_PublishAfterClose(t *testing.T) {
	bus := events.NewMemoryEventBus()
	require.NoError(t, bus.Close())

	event := entities.NewAppointmentEvent("appt-1", entities.AppointmentEventTypeDeleted, "")
	assert.NoError(t, bus.Publish(context.Background(), providers.EventChannelAppointmentUpdates, event))
}
