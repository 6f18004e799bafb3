package entities

import (
	"time"
)

// Gist is the synthesized one-page plain-language clinical summary
type Gist struct {
	Cause    string `json:"cause"`
	Location string `json:"location"`
	Goal     string `json:"goal"`
}

// AnomalyAlert flags a physiological outlier derived from wearable metrics
type AnomalyAlert struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Timestamp    time.Time `json:"timestamp"`
	HighPriority bool      `json:"high_priority"`
}

// QuestionCategory groups strategic questions the way the generation models
// produce them
type QuestionCategory string

const (
	QuestionCategoryUnderstanding QuestionCategory = "understanding"
	QuestionCategoryTreatment     QuestionCategory = "treatment"
	QuestionCategoryLifestyle     QuestionCategory = "lifestyle"
)

// StrategicQuestion is one prioritized consultation question
type StrategicQuestion struct {
	Category             QuestionCategory `json:"category"`
	Question             string           `json:"question"`
	IsSecondaryOversight bool             `json:"is_secondary_oversight,omitempty"`
}

// Recap is the post-visit plain-language summary
type Recap struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
	FollowUps   []string `json:"follow_ups"`
}

// HealthMetric is one synced wearable data point
type HealthMetric struct {
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`
}

// FileDescriptor describes an uploaded medical document
type FileDescriptor struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Extension string `json:"extension"`
}

// QuestionInput carries everything the question generation model grounds on
type QuestionInput struct {
	MedicalInput string         `json:"medical_input"`
	HealthData   []HealthMetric `json:"health_data"`
	Symptoms     string         `json:"symptoms"`
}
