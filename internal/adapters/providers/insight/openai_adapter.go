package insight

import (
	"context"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/infrastructure/clients/openai"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// OpenAIAdapter backs the insight provider with the OpenAI Responses API.
type OpenAIAdapter struct {
	client *openai.Client
}

// NewOpenAIAdapter creates an insight provider backed by OpenAI.
func NewOpenAIAdapter(client *openai.Client) providers.InsightProvider {
	return &OpenAIAdapter{client: client}
}

func (a *OpenAIAdapter) GenerateGist(ctx context.Context, clinicalInput string) (*entities.Gist, error) {
	gist, err := a.client.GenerateGist(ctx, clinicalInput)
	if err != nil {
		return nil, apperrors.NewExternalError("insight provider failed to generate gist", err)
	}
	return gist, nil
}

func (a *OpenAIAdapter) DetectAnomalies(ctx context.Context, metrics []entities.HealthMetric) ([]entities.AnomalyAlert, error) {
	alerts, err := a.client.DetectAnomalies(ctx, metrics)
	if err != nil {
		return nil, apperrors.NewExternalError("insight provider failed to detect anomalies", err)
	}
	return alerts, nil
}

func (a *OpenAIAdapter) GenerateQuestions(ctx context.Context, input entities.QuestionInput) ([]entities.StrategicQuestion, error) {
	questions, err := a.client.GenerateQuestions(ctx, input)
	if err != nil {
		return nil, apperrors.NewExternalError("insight provider failed to generate questions", err)
	}
	return questions, nil
}

func (a *OpenAIAdapter) GenerateRecap(ctx context.Context, transcript string) (*entities.Recap, error) {
	recap, err := a.client.GenerateRecap(ctx, transcript)
	if err != nil {
		return nil, apperrors.NewExternalError("insight provider failed to generate recap", err)
	}
	return recap, nil
}
