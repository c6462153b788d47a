package storage

import (
	"context"
	"fmt"

	"slicecraft/internal/config"
)

// Store persists session records by id
type Store interface {
	Save(ctx context.Context, id string, r *Record) error
	// Load returns ErrNotFound when no record exists for id
	Load(ctx context.Context, id string) (*Record, error)
	// List returns the stored ids in ascending order
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Open creates the store selected by the storage settings
func Open(s config.StorageSettings) (Store, error) {
	switch s.Backend {
	case config.BackendFile, "":
		return NewFileStore(s.Dir)
	case config.BackendBadger:
		return OpenBadger(s.Dir)
	}
	return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalid, s.Backend)
}
