package providers

import (
	"context"

	"github.com/careloop/visitprep/internal/domain/entities"
)

// InsightProvider generates patient-facing AI content: the plain-language
// gist, anomaly alerts, strategic consultation questions and the post-visit
// recap. Calls may fail and are never retried by the core; retry is a
// user-initiated re-invocation.
type InsightProvider interface {
	// GenerateGist translates clinical text into a cause/location/goal summary
	GenerateGist(ctx context.Context, clinicalInput string) (*entities.Gist, error)

	// DetectAnomalies flags physiological outliers in synced metrics
	DetectAnomalies(ctx context.Context, metrics []entities.HealthMetric) ([]entities.AnomalyAlert, error)

	// GenerateQuestions produces prioritized consultation questions
	GenerateQuestions(ctx context.Context, input entities.QuestionInput) ([]entities.StrategicQuestion, error)

	// GenerateRecap summarizes a visit transcript into instructions,
	// action items and follow-ups
	GenerateRecap(ctx context.Context, transcript string) (*entities.Recap, error)
}
