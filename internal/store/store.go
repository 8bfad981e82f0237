// Package store defines the persistence contract for task items.
//
// Concrete containers live in the sqlitestore and memstore sub-packages.
// Consumers depend on this interface so the backing container can be
// swapped in tests.
package store

import (
	"context"

	"github.com/idilsaglam/syncpad/internal/task"
)

// Store is the contract every persistence container satisfies. The task
// list treats writes as fire-and-forget: failures are logged by the
// caller and never retried, so implementations keep per-call atomicity
// and no retry logic of their own.
type Store interface {
	// Put inserts the item or replaces the stored one with the same ID.
	Put(ctx context.Context, item task.Item) error

	// Delete removes the item with the given ID. Deleting an absent ID
	// is not an error.
	Delete(ctx context.Context, id string) error

	// ListAll returns every stored item in unspecified order.
	ListAll(ctx context.Context) ([]task.Item, error)

	// Close releases the underlying container.
	Close() error
}
