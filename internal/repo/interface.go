package repo

import (
	"context"
	"errors"
	"fmt"
)

// DefaultKey is the slot key the task list is stored under.
const DefaultKey = "@tasks"

var ErrPersistence = errors.New("persistence error")

// Slot is a durable key-value store holding opaque blobs.
// Get reports ok=false when nothing was ever stored under key.
type Slot interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
