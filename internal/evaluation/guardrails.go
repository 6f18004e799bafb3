package evaluation

import (
	"fmt"
	"strings"

	"github.com/careloop/visitprep/internal/domain/entities"
)

// GuardrailConfig bounds generated patient-facing content
type GuardrailConfig struct {
	MinQuestionsPerCategory int
	MaxQuestionsPerCategory int
	MinReadingEase          float64
	MaxGradeLevel           float64
}

// DefaultGuardrailConfig returns the production thresholds
func DefaultGuardrailConfig() GuardrailConfig {
	return GuardrailConfig{
		MinQuestionsPerCategory: 3,
		MaxQuestionsPerCategory: 5,
		MinReadingEase:          60.0,
		MaxGradeLevel:           8.0,
	}
}

// alarmingTerms must never appear in content shown to a patient before they
// have spoken to their doctor.
var alarmingTerms = []string{
	"terminal",
	"fatal",
	"dying",
	"malignant",
	"irreversible",
	"emergency",
	"life-threatening",
}

// Guardrails validates generated content against the quality gates
type Guardrails struct {
	config GuardrailConfig
}

// NewGuardrails creates guardrails, filling zero config values with defaults
func NewGuardrails(config GuardrailConfig) *Guardrails {
	defaults := DefaultGuardrailConfig()
	if config.MinQuestionsPerCategory <= 0 {
		config.MinQuestionsPerCategory = defaults.MinQuestionsPerCategory
	}
	if config.MaxQuestionsPerCategory <= 0 {
		config.MaxQuestionsPerCategory = defaults.MaxQuestionsPerCategory
	}
	if config.MinReadingEase <= 0 {
		config.MinReadingEase = defaults.MinReadingEase
	}
	if config.MaxGradeLevel <= 0 {
		config.MaxGradeLevel = defaults.MaxGradeLevel
	}
	return &Guardrails{config: config}
}

// CheckQuestions validates an agenda: per-category counts within bounds and
// no alarming language. Secondary oversight questions count toward their
// category.
func (g *Guardrails) CheckQuestions(questions []entities.StrategicQuestion) []string {
	var violations []string

	counts := make(map[entities.QuestionCategory]int)
	for _, q := range questions {
		counts[q.Category]++
		violations = append(violations, g.checkTone(q.Question)...)
	}

	for _, category := range []entities.QuestionCategory{
		entities.QuestionCategoryUnderstanding,
		entities.QuestionCategoryTreatment,
		entities.QuestionCategoryLifestyle,
	} {
		n := counts[category]
		if n < g.config.MinQuestionsPerCategory || n > g.config.MaxQuestionsPerCategory {
			violations = append(violations, fmt.Sprintf(
				"category %q has %d questions, want %d to %d",
				category, n, g.config.MinQuestionsPerCategory, g.config.MaxQuestionsPerCategory,
			))
		}
	}
	return violations
}

// CheckGist validates the plain-language summary for readability and tone
func (g *Guardrails) CheckGist(gist *entities.Gist) []string {
	if gist == nil {
		return []string{"gist is missing"}
	}
	text := strings.Join([]string{gist.Cause, gist.Location, gist.Goal}, " ")
	return g.checkProse(text)
}

// CheckRecap validates the post-visit summary for readability and tone
func (g *Guardrails) CheckRecap(recap *entities.Recap) []string {
	if recap == nil {
		return []string{"recap is missing"}
	}
	violations := g.checkProse(recap.Summary)
	for _, item := range recap.ActionItems {
		violations = append(violations, g.checkTone(item)...)
	}
	return violations
}

func (g *Guardrails) checkProse(text string) []string {
	var violations []string
	if ease := FleschReadingEase(text); ease < g.config.MinReadingEase {
		violations = append(violations, fmt.Sprintf("reading ease %.1f below %.1f", ease, g.config.MinReadingEase))
	}
	if grade := FleschKincaidGrade(text); grade > g.config.MaxGradeLevel {
		violations = append(violations, fmt.Sprintf("grade level %.1f above %.1f", grade, g.config.MaxGradeLevel))
	}
	violations = append(violations, g.checkTone(text)...)
	return violations
}

func (g *Guardrails) checkTone(text string) []string {
	lower := strings.ToLower(text)
	var violations []string
	for _, term := range alarmingTerms {
		if strings.Contains(lower, term) {
			violations = append(violations, fmt.Sprintf("alarming term %q in content", term))
		}
	}
	return violations
}
