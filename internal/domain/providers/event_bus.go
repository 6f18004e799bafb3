package providers

import (
	"context"

	"github.com/careloop/visitprep/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// appointment change events. The store publishes on save and delete; list
// views subscribe on mount.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.AppointmentEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.AppointmentEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for appointment events
const (
	// EventChannelAppointmentUpdates is the channel for all appointment updates
	EventChannelAppointmentUpdates = "appointments:updates"

	// EventChannelAppointmentPrefix is the prefix for per-appointment channels
	EventChannelAppointmentPrefix = "appointment:"
)

// GetAppointmentChannel returns the channel name for a specific appointment
func GetAppointmentChannel(appointmentID string) string {
	return EventChannelAppointmentPrefix + appointmentID
}
