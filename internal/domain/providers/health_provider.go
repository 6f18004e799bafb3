package providers

import (
	"context"
	"time"

	"github.com/careloop/visitprep/internal/domain/entities"
)

// HealthDataProvider syncs wearable metrics for a time range
type HealthDataProvider interface {
	FetchMetrics(ctx context.Context, from, to time.Time) ([]entities.HealthMetric, error)
}

// DocumentProvider imports medical documents from an external source
type DocumentProvider interface {
	ImportDocuments(ctx context.Context, source string) ([]entities.FileDescriptor, error)
}

// TranscriptionProvider turns a captured visit recording into text
type TranscriptionProvider interface {
	TranscribeVisit(ctx context.Context, recordingRef string) (string, error)
}
