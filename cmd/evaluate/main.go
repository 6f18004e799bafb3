package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/careloop/visitprep/internal/adapters/providers/insight"
	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/evaluation"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
)

// evaluate runs the content quality gates against the canned insight
// provider. The same gates apply to live provider output in CI smoke runs.
func main() {
	observability.InitLogger("visitprep-evaluate", "development")
	logger := observability.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider := insight.NewMockAdapter()
	guardrails := evaluation.NewGuardrails(evaluation.DefaultGuardrailConfig())

	var violations []string

	gist, err := provider.GenerateGist(ctx, "MRI shows a small medial meniscus tear of the right knee")
	if err != nil {
		logger.Fatal().Err(err).Msg("gist generation failed")
	}
	violations = append(violations, prefix("gist", guardrails.CheckGist(gist))...)

	questions, err := provider.GenerateQuestions(ctx, entities.QuestionInput{
		MedicalInput: "MRI shows a small medial meniscus tear of the right knee",
		Symptoms:     "Knee pain when twisting",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("question generation failed")
	}
	violations = append(violations, prefix("questions", guardrails.CheckQuestions(questions))...)

	recap, err := provider.GenerateRecap(ctx, "Doctor: start therapy, reassess in six weeks.")
	if err != nil {
		logger.Fatal().Err(err).Msg("recap generation failed")
	}
	violations = append(violations, prefix("recap", guardrails.CheckRecap(recap))...)

	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintln(os.Stderr, "violation:", v)
		}
		os.Exit(1)
	}

	logger.Info().
		Int("questions", len(questions)).
		Msg("all content quality gates passed")
}

func prefix(label string, violations []string) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, label+": "+v)
	}
	return out
}
