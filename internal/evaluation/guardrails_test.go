package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/visitprep/internal/domain/entities"
)

func questionsPerCategory(n int) []entities.StrategicQuestion {
	var qs []entities.StrategicQuestion
	for _, c := range []entities.QuestionCategory{
		entities.QuestionCategoryUnderstanding,
		entities.QuestionCategoryTreatment,
		entities.QuestionCategoryLifestyle,
	} {
		for i := 0; i < n; i++ {
			qs = append(qs, entities.StrategicQuestion{Category: c, Question: "What should I do next?"})
		}
	}
	return qs
}

func TestCheckQuestions(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	t.Run("accepts a balanced agenda", func(t *testing.T) {
		violations := g.CheckQuestions(questionsPerCategory(3))
		assert.Empty(t, violations)
	})

	t.Run("flags a sparse category", func(t *testing.T) {
		qs := questionsPerCategory(3)[:7] // lifestyle ends up with one question
		violations := g.CheckQuestions(qs)
		require.NotEmpty(t, violations)
	})

	t.Run("flags too many questions in a category", func(t *testing.T) {
		violations := g.CheckQuestions(questionsPerCategory(6))
		assert.NotEmpty(t, violations)
	})

	t.Run("flags alarming language", func(t *testing.T) {
		qs := questionsPerCategory(3)
		qs[0].Question = "Is this condition fatal?"
		violations := g.CheckQuestions(qs)
		require.NotEmpty(t, violations)
		assert.Contains(t, violations[0], "alarming term")
	})
}

func TestCheckGist(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	t.Run("accepts plain language", func(t *testing.T) {
		violations := g.CheckGist(&entities.Gist{
			Cause:    "You have a small tear in the soft pad of your knee.",
			Location: "It sits on the inner side of your right knee.",
			Goal:     "The plan is to ease the pain and help you move well again.",
		})
		assert.Empty(t, violations)
	})

	t.Run("flags missing gist", func(t *testing.T) {
		violations := g.CheckGist(nil)
		assert.Equal(t, []string{"gist is missing"}, violations)
	})

	t.Run("flags dense clinical prose", func(t *testing.T) {
		violations := g.CheckGist(&entities.Gist{
			Cause:    "Degenerative intrasubstance signal abnormality demonstrating characteristics consistent with horizontal oblique meniscal degeneration necessitating comprehensive arthroscopic evaluation",
			Location: "Posterior horn medial meniscus demonstrating intraarticular localization",
			Goal:     "Optimization of musculoskeletal functionality through conservative rehabilitative intervention",
		})
		assert.NotEmpty(t, violations)
	})
}

func TestCheckRecap(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	t.Run("accepts a calm summary", func(t *testing.T) {
		violations := g.CheckRecap(&entities.Recap{
			Summary:     "Your doctor wants you to try therapy first. Most tears like yours heal well with it.",
			ActionItems: []string{"Book your first therapy visit this week."},
		})
		assert.Empty(t, violations)
	})

	t.Run("flags alarming action items", func(t *testing.T) {
		violations := g.CheckRecap(&entities.Recap{
			Summary:     "Your doctor wants you to try therapy first. Most tears like yours heal well with it.",
			ActionItems: []string{"Go to the emergency room if it hurts."},
		})
		assert.NotEmpty(t, violations)
	})
}

func TestReadability(t *testing.T) {
	t.Run("simple text scores high ease", func(t *testing.T) {
		ease := FleschReadingEase("The dog ran to the park. It was a warm day.")
		assert.Greater(t, ease, 80.0)
	})

	t.Run("dense text scores low ease", func(t *testing.T) {
		ease := FleschReadingEase("Comprehensive multidisciplinary rehabilitation necessitates longitudinal physiological reassessment methodologies.")
		assert.Less(t, ease, 30.0)
	})

	t.Run("empty text scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, FleschReadingEase(""))
		assert.Equal(t, 0.0, FleschKincaidGrade(""))
	})

	t.Run("simple text stays under grade eight", func(t *testing.T) {
		grade := FleschKincaidGrade("The dog ran to the park. It was a warm day.")
		assert.Less(t, grade, 8.0)
	})
}
