package entities

import (
	"time"
)

// VisitStatus represents the derived lifecycle status of a visit
type VisitStatus string

const (
	VisitStatusDraft      VisitStatus = "draft"
	VisitStatusPreparing  VisitStatus = "preparing"
	VisitStatusVisitReady VisitStatus = "visit_ready"
	VisitStatusCompleted  VisitStatus = "completed"
)

// IsValid reports whether s is one of the known lifecycle statuses
func (s VisitStatus) IsValid() bool {
	switch s {
	case VisitStatusDraft, VisitStatusPreparing, VisitStatusVisitReady, VisitStatusCompleted:
		return true
	}
	return false
}

// StepFlags marks which preparation phases have completed their data collection
type StepFlags struct {
	DataIngested   bool `json:"data_ingested,omitempty"`
	GistGenerated  bool `json:"gist_generated,omitempty"`
	AgendaPrepared bool `json:"agenda_prepared,omitempty"`
	VisitRecorded  bool `json:"visit_recorded,omitempty"`
}

// Appointment is the sole persisted entity: one doctor visit and everything
// the patient collected while preparing for and recapping it.
type Appointment struct {
	ID         string      `json:"id"`
	DoctorName string      `json:"doctor_name"`
	Reason     string      `json:"reason"`
	Date       time.Time   `json:"date"`
	Status     VisitStatus `json:"status"`

	StepFlags

	// Ingest artifacts
	HealthMetrics []HealthMetric   `json:"health_metrics,omitempty"`
	Attachments   []FileDescriptor `json:"attachments,omitempty"`

	// Synthesis artifacts
	Gist      *Gist          `json:"gist,omitempty"`
	Anomalies []AnomalyAlert `json:"anomalies,omitempty"`

	// Consultation agenda
	Agenda []StrategicQuestion `json:"agenda,omitempty"`

	// Recap fields, populated only by the recap phase
	RecapSummary *string  `json:"recap_summary,omitempty"`
	ActionItems  []string `json:"action_items,omitempty"`
	FollowUps    []string `json:"follow_ups,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeriveStatus computes the lifecycle status from the step flags and recap
// presence. It is the only way a status may be produced; callers persist the
// result rather than re-deriving on read.
//
// A recorded recap wins over every flag: recapping is a terminal action that
// is reachable even when the agenda was never prepared. Do not reorder these
// checks without product sign-off.
func DeriveStatus(flags StepFlags, recapSummary *string) VisitStatus {
	if recapSummary != nil {
		return VisitStatusCompleted
	}
	if flags.AgendaPrepared {
		return VisitStatusVisitReady
	}
	if flags.DataIngested || flags.GistGenerated {
		return VisitStatusPreparing
	}
	return VisitStatusDraft
}

// Refresh re-derives and stores the status from the appointment's own state
func (a *Appointment) Refresh() {
	a.Status = DeriveStatus(a.StepFlags, a.RecapSummary)
}

// IsCompleted reports whether the visit reached its terminal status
func (a *Appointment) IsCompleted() bool {
	return a.Status == VisitStatusCompleted
}
