package storage

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/careloop/visitprep/internal/infrastructure/clients/postgres"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// Single-row table holding the whole collection document. The fixed key
// keeps the upsert addressing one row regardless of content.
const documentKey = "appointments"

// PostgresDocumentStore keeps the collection document in one row of a
// visit_documents table, replaced whole on every write.
type PostgresDocumentStore struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresDocumentStore creates a Postgres-backed document store
func NewPostgresDocumentStore(client *postgres.Client) *PostgresDocumentStore {
	return &PostgresDocumentStore{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Load reads the current document; a missing row means no document yet
func (s *PostgresDocumentStore) Load(ctx context.Context) ([]byte, error) {
	query, args, err := s.db.Select("payload").
		From("visit_documents").
		Where(goqu.Ex{"key": documentKey}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build document query", err)
	}

	var payload []byte
	err = s.client.DB().QueryRowContext(ctx, query, args...).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read appointment document", err)
	}
	return payload, nil
}

// Store atomically replaces the document row
func (s *PostgresDocumentStore) Store(ctx context.Context, data []byte) error {
	query, args, err := s.db.Insert("visit_documents").
		Rows(goqu.Record{"key": documentKey, "payload": data}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{"payload": data})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build document upsert", err)
	}

	if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStorageError("failed to write appointment document", err)
	}
	return nil
}
