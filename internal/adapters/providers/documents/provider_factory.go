package documents

import (
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/pkg/config"
)

// NewDocumentProvider returns the local directory adapter when an import
// directory is configured, otherwise the mock.
func NewDocumentProvider(cfg *config.Config) providers.DocumentProvider {
	if cfg.Documents.ImportDir == "" {
		return NewMockAdapter()
	}
	return NewLocalAdapter(cfg.Documents.ImportDir)
}
