package storage

import (
	"context"
)

// DocumentStore is the backing medium for the appointment collection: one
// opaque document, loaded and overwritten whole. Implementations must make
// Store atomic — a reader never observes a partially written document.
type DocumentStore interface {
	// Load returns the current document, or nil when none has been
	// written yet. Medium failures surface as storage errors.
	Load(ctx context.Context) ([]byte, error)

	// Store atomically replaces the document
	Store(ctx context.Context, data []byte) error
}
