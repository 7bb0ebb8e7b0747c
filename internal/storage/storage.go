package storage

import (
	"log/slog"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// Storage is the interface for all storage backends.
type Storage interface {
	// Store persists a batch of records.
	Store(records []*types.Record) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// New creates the storage backend named by cfg.Type.
func New(cfg config.Storage, logger *slog.Logger) (Storage, error) {
	switch cfg.Type {
	case "json":
		return NewJSONStorage(cfg.OutputPath, logger)
	case "jsonl":
		return NewJSONLStorage(cfg.OutputPath, logger)
	case "csv":
		return NewCSVStorage(cfg.OutputPath, logger)
	case "mongodb":
		return NewMongoStorage(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	case "none", "":
		return &NullStorage{}, nil
	default:
		return nil, &types.StorageError{Backend: cfg.Type, Err: types.ErrUnknownStorage}
	}
}

// NullStorage discards records. Used when a caller only wants the
// in-memory result, not a persisted copy.
type NullStorage struct{}

func (s *NullStorage) Name() string { return "none" }

func (s *NullStorage) Store(records []*types.Record) error { return nil }

func (s *NullStorage) Close() error { return nil }
