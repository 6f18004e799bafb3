package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// AppointmentEventType represents the type of appointment event
type AppointmentEventType string

const (
	AppointmentEventTypeSaved   AppointmentEventType = "appointment_saved"
	AppointmentEventTypeDeleted AppointmentEventType = "appointment_deleted"
)

// AppointmentEvent is published whenever the store writes or removes a
// record, so list views can refresh without polling
type AppointmentEvent struct {
	ID            string               `json:"id"`
	AppointmentID string               `json:"appointment_id"`
	EventType     AppointmentEventType `json:"event_type"`
	Status        VisitStatus          `json:"status,omitempty"`
	Timestamp     time.Time            `json:"timestamp"`
}

// NewAppointmentEvent creates a new appointment event
func NewAppointmentEvent(appointmentID string, eventType AppointmentEventType, status VisitStatus) *AppointmentEvent {
	return &AppointmentEvent{
		ID:            generateEventID(),
		AppointmentID: appointmentID,
		EventType:     eventType,
		Status:        status,
		Timestamp:     time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
