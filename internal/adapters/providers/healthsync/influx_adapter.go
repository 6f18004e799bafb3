package healthsync

import (
	"context"
	"time"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/infrastructure/clients/influx"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// InfluxAdapter reads synced wearable metrics from InfluxDB.
type InfluxAdapter struct {
	client *influx.Client
}

// NewInfluxAdapter creates a health data provider backed by InfluxDB.
func NewInfluxAdapter(client *influx.Client) providers.HealthDataProvider {
	return &InfluxAdapter{client: client}
}

// FetchMetrics queries the health bucket for points in [from, to).
func (a *InfluxAdapter) FetchMetrics(ctx context.Context, from, to time.Time) ([]entities.HealthMetric, error) {
	metrics, err := a.client.QueryMetrics(ctx, from, to)
	if err != nil {
		return nil, apperrors.NewExternalError("health sync provider failed to fetch metrics", err)
	}
	return metrics, nil
}
