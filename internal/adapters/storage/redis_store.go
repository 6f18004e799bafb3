package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	redisclient "github.com/careloop/visitprep/internal/infrastructure/clients/redis"
	apperrors "github.com/careloop/visitprep/pkg/errors"
)

// RedisDocumentStore keeps the collection document under a single Redis key.
// SET replaces the value atomically, which satisfies the whole-document
// overwrite contract.
type RedisDocumentStore struct {
	client *redisclient.Client
	key    string
}

// NewRedisDocumentStore creates a Redis-backed document store
func NewRedisDocumentStore(client *redisclient.Client, key string) *RedisDocumentStore {
	return &RedisDocumentStore{client: client, key: key}
}

// Load reads the current document; a missing key means no document yet
func (s *RedisDocumentStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Client().Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read appointment document", err)
	}
	return data, nil
}

// Store atomically replaces the document
func (s *RedisDocumentStore) Store(ctx context.Context, data []byte) error {
	if err := s.client.Client().Set(ctx, s.key, data, 0).Err(); err != nil {
		return apperrors.NewStorageError("failed to write appointment document", err)
	}
	return nil
}
