package insight

import (
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/infrastructure/clients/openai"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
	"github.com/careloop/visitprep/pkg/config"
)

// NewInsightProvider selects the live OpenAI adapter or the canned mock based
// on configuration. Missing credentials fall back to the mock so the app
// stays usable in development.
func NewInsightProvider(cfg *config.Config) providers.InsightProvider {
	if cfg.Insight.Mode != config.ProviderModeLive {
		return NewMockAdapter()
	}

	client, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		observability.GetLogger().Warn().
			Err(err).
			Msg("live insight provider unavailable, using mock")
		return NewMockAdapter()
	}
	return NewOpenAIAdapter(client)
}
