package documents

import (
	"context"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
)

// MockAdapter returns a fixed set of imported documents for development.
type MockAdapter struct{}

// NewMockAdapter creates a mock document provider.
func NewMockAdapter() providers.DocumentProvider {
	return &MockAdapter{}
}

// ImportDocuments returns sample medical documents regardless of source.
func (m *MockAdapter) ImportDocuments(ctx context.Context, source string) ([]entities.FileDescriptor, error) {
	return []entities.FileDescriptor{
		{Name: "mri_report_right_knee.pdf", SizeBytes: 482_331, Extension: "pdf"},
		{Name: "referral_letter.pdf", SizeBytes: 92_114, Extension: "pdf"},
		{Name: "bloodwork_panel.csv", SizeBytes: 4_820, Extension: "csv"},
	}, nil
}
