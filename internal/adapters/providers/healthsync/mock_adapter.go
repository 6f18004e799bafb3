package healthsync

import (
	"context"
	"time"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
)

// MockAdapter generates deterministic wearable metrics for development. One
// day of data per metric type, spread evenly across the requested range, with
// a deliberate resting heart rate spike near the end so anomaly detection has
// something to find.
type MockAdapter struct{}

// NewMockAdapter creates a mock health data provider.
func NewMockAdapter() providers.HealthDataProvider {
	return &MockAdapter{}
}

// FetchMetrics returns synthetic metrics covering [from, to).
func (m *MockAdapter) FetchMetrics(ctx context.Context, from, to time.Time) ([]entities.HealthMetric, error) {
	if !to.After(from) {
		return nil, nil
	}

	days := int(to.Sub(from).Hours() / 24)
	if days < 1 {
		days = 1
	}
	if days > 30 {
		days = 30
	}

	metrics := make([]entities.HealthMetric, 0, days*3)
	for day := 0; day < days; day++ {
		ts := from.Add(time.Duration(day) * 24 * time.Hour)

		heartRate := 62.0 + float64(day%5)
		if day >= days-2 {
			// Spike in the final two days
			heartRate = 94.0
		}

		metrics = append(metrics,
			entities.HealthMetric{Type: "resting_heart_rate", Value: heartRate, Unit: "bpm", Timestamp: ts},
			entities.HealthMetric{Type: "steps", Value: 6500 + float64((day*937)%3000), Unit: "count", Timestamp: ts},
			entities.HealthMetric{Type: "sleep_duration", Value: 5.5 + float64(day%3)*0.5, Unit: "h", Timestamp: ts},
		)
	}
	return metrics, nil
}
