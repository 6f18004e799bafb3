package documents

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/internal/domain/providers"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// LocalAdapter imports document metadata from a directory on disk. The app
// never reads document contents, only name and size, so the import is cheap.
type LocalAdapter struct {
	baseDir string
}

// NewLocalAdapter creates a document provider rooted at baseDir.
func NewLocalAdapter(baseDir string) providers.DocumentProvider {
	return &LocalAdapter{baseDir: baseDir}
}

// ImportDocuments lists files under the source subdirectory. A missing
// directory yields an empty import, not an error.
func (a *LocalAdapter) ImportDocuments(ctx context.Context, source string) ([]entities.FileDescriptor, error) {
	dir := a.baseDir
	if source != "" {
		dir = filepath.Join(a.baseDir, filepath.Clean("/"+source))
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewExternalError("failed to read document directory", err)
	}

	var files []entities.FileDescriptor
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		files = append(files, entities.FileDescriptor{
			Name:      item.Name(),
			SizeBytes: info.Size(),
			Extension: strings.TrimPrefix(filepath.Ext(item.Name()), "."),
		})
	}
	return files, nil
}
