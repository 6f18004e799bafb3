package insight

import (
	"context"
	"strings"
	"time"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
)

// MockAdapter returns canned insight content for local development and demos.
// The content mirrors a realistic orthopedic visit so the full workflow can
// be walked without any API key.
type MockAdapter struct {
	latency time.Duration
}

// NewMockAdapter creates a mock insight provider.
func NewMockAdapter() providers.InsightProvider {
	return &MockAdapter{latency: 150 * time.Millisecond}
}

func (m *MockAdapter) simulate(ctx context.Context) error {
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GenerateGist returns a plain-language summary grounded in the input when
// possible, falling back to the canned knee scenario.
func (m *MockAdapter) GenerateGist(ctx context.Context, clinicalInput string) (*entities.Gist, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}

	gist := &entities.Gist{
		Cause:    "A small tear in the cushioning cartilage of your knee, likely from a twisting movement.",
		Location: "The inner side of your right knee, in the tissue called the meniscus.",
		Goal:     "Reduce pain and swelling first, then rebuild strength so you can move normally again.",
	}
	if strings.Contains(strings.ToLower(clinicalInput), "shoulder") {
		gist.Cause = "Irritation of the tendons that help lift your arm, often from repeated overhead movement."
		gist.Location = "The rotator cuff area at the top of your shoulder."
		gist.Goal = "Calm the irritation and restore pain-free range of motion."
	}
	return gist, nil
}

// DetectAnomalies flags a resting heart rate outlier when one exists in the
// provided metrics, plus a canned sleep finding.
func (m *MockAdapter) DetectAnomalies(ctx context.Context, metrics []entities.HealthMetric) ([]entities.AnomalyAlert, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}

	alerts := []entities.AnomalyAlert{
		{
			Title:        "Sleep shorter than usual",
			Description:  "Your sleep averaged under six hours across the last week, which is below your usual pattern.",
			Timestamp:    time.Now().Add(-24 * time.Hour),
			HighPriority: false,
		},
	}
	for _, metric := range metrics {
		if metric.Type == "resting_heart_rate" && metric.Value > 90 {
			alerts = append(alerts, entities.AnomalyAlert{
				Title:        "Elevated resting heart rate",
				Description:  "Your resting heart rate has been higher than your usual range. Worth mentioning to your doctor.",
				Timestamp:    metric.Timestamp,
				HighPriority: true,
			})
			break
		}
	}
	return alerts, nil
}

// GenerateQuestions returns a fixed prioritized question set covering all
// three categories plus one secondary oversight question.
func (m *MockAdapter) GenerateQuestions(ctx context.Context, input entities.QuestionInput) ([]entities.StrategicQuestion, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}

	return []entities.StrategicQuestion{
		{Category: entities.QuestionCategoryUnderstanding, Question: "What exactly is torn, and how bad is the tear?"},
		{Category: entities.QuestionCategoryUnderstanding, Question: "Could this get worse if I keep walking on it?"},
		{Category: entities.QuestionCategoryUnderstanding, Question: "Do I need another scan before we decide anything?"},
		{Category: entities.QuestionCategoryTreatment, Question: "Can this heal with physical therapy alone, or will I need surgery?"},
		{Category: entities.QuestionCategoryTreatment, Question: "What are the risks if we wait and watch instead of operating?"},
		{Category: entities.QuestionCategoryTreatment, Question: "How long would recovery take for each option?"},
		{Category: entities.QuestionCategoryLifestyle, Question: "Which activities should I avoid until this heals?"},
		{Category: entities.QuestionCategoryLifestyle, Question: "Is it safe to keep cycling or swimming in the meantime?"},
		{Category: entities.QuestionCategoryLifestyle, Question: "What can I do at home to bring the swelling down?"},
		{
			Category:             entities.QuestionCategoryUnderstanding,
			Question:             "My sleep tracker shows I have been sleeping much less lately. Could that slow my recovery?",
			IsSecondaryOversight: true,
		},
	}, nil
}

// GenerateRecap returns a canned post-visit summary.
func (m *MockAdapter) GenerateRecap(ctx context.Context, transcript string) (*entities.Recap, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}

	return &entities.Recap{
		Summary: "Your doctor confirmed a small meniscus tear and recommends starting with six weeks of physical therapy before considering surgery. Pain should improve within two to three weeks.",
		ActionItems: []string{
			"Schedule the first physical therapy session this week",
			"Take the prescribed anti-inflammatory with food, twice a day",
			"Ice the knee for 15 minutes after activity",
		},
		FollowUps: []string{
			"Follow-up appointment in six weeks to reassess",
			"Call the office sooner if the knee locks or gives way",
		},
	}, nil
}
