package storage

import (
	"context"
	"os"
	"path/filepath"

	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// FileDocumentStore keeps the collection in a single local JSON file.
// Writes go to a temp file in the same directory followed by a rename, so a
// crash mid-write leaves the previous document intact.
type FileDocumentStore struct {
	path string
}

// NewFileDocumentStore creates a file-backed document store
func NewFileDocumentStore(path string) *FileDocumentStore {
	return &FileDocumentStore{path: path}
}

// Load reads the current document; a missing file means no document yet
func (s *FileDocumentStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read appointment document", err)
	}
	return data, nil
}

// Store atomically replaces the document
func (s *FileDocumentStore) Store(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewStorageError("failed to create storage directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperrors.NewStorageError("failed to create temp document", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to write appointment document", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to flush appointment document", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to replace appointment document", err)
	}
	return nil
}
