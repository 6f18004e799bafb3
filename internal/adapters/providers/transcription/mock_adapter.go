package transcription

import (
	"context"

	"github.com/careloop/visitprep/internal/domain/providers"
)

const cannedTranscript = `Doctor: The MRI confirms a small tear in the inner meniscus. The good news is it sits in an area with decent blood supply.
Patient: Does that mean surgery?
Doctor: Not yet. I want you to start physical therapy, twice a week for six weeks. Take the anti-inflammatory I am prescribing with food, twice a day.
Patient: Can I keep exercising?
Doctor: Swimming and cycling are fine. No pivoting sports until we reassess. Ice the knee after activity.
Doctor: Book a follow-up in six weeks. If the knee locks or gives way before then, call the office right away.`

// MockAdapter returns a canned visit transcript. A speech-to-text backend
// can replace it behind the same interface.
type MockAdapter struct{}

// NewMockAdapter creates a mock transcription provider.
func NewMockAdapter() providers.TranscriptionProvider {
	return &MockAdapter{}
}

// TranscribeVisit returns the canned transcript for any recording reference.
func (m *MockAdapter) TranscribeVisit(ctx context.Context, recordingRef string) (string, error) {
	return cannedTranscript, nil
}
