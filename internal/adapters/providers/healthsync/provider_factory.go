package healthsync

import (
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/infrastructure/clients/influx"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
	"github.com/careloop/visitprep/pkg/config"
)

// NewHealthDataProvider selects the InfluxDB adapter or the deterministic
// mock based on configuration. Missing credentials fall back to the mock.
func NewHealthDataProvider(cfg *config.Config) providers.HealthDataProvider {
	if cfg.HealthSync.Mode != config.ProviderModeLive {
		return NewMockAdapter()
	}

	client, err := influx.NewClient(&cfg.HealthSync)
	if err != nil {
		observability.GetLogger().Warn().
			Err(err).
			Msg("live health sync provider unavailable, using mock")
		return NewMockAdapter()
	}
	return NewInfluxAdapter(client)
}
