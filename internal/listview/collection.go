// AngelaMos | 2026
// collection.go

package listview

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// Store is the snapshot cache a Collection keeps its last fetch in.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}

type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Collection keeps the last successful fetch of a table and re-fetches it
// after every mutation so list views never serve state older than the last write.
type Collection[T any] struct {
	key   string
	store Store
	fetch Fetcher[T]
}

func NewCollection[T any](name string, store Store, fetch Fetcher[T]) *Collection[T] {
	return &Collection[T]{
		key:   "collection:" + name,
		store: store,
		fetch: fetch,
	}
}

// Items returns the cached snapshot, fetching it on a miss.
func (c *Collection[T]) Items(ctx context.Context) ([]T, error) {
	if v, ok := c.store.Get(c.key); ok {
		if items, ok := v.([]T); ok {
			return slices.Clone(items), nil
		}
	}
	return c.Refresh(ctx)
}

// Refresh re-fetches the collection. On failure the previous snapshot stays.
func (c *Collection[T]) Refresh(ctx context.Context) ([]T, error) {
	items, err := c.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}

	c.store.Set(c.key, items)
	return slices.Clone(items), nil
}

// Mutate runs a write and resynchronises the snapshot. A failed write leaves
// the snapshot untouched. When the write succeeds but the re-fetch fails the
// snapshot is dropped so the next read goes to the database.
func (c *Collection[T]) Mutate(ctx context.Context, write func(ctx context.Context) error) error {
	if err := write(ctx); err != nil {
		return err
	}

	if _, err := c.Refresh(ctx); err != nil {
		slog.WarnContext(ctx, "snapshot refresh after write failed",
			"collection", c.key,
			"error", err,
		)
		c.store.Delete(c.key)
	}

	return nil
}

func (c *Collection[T]) Invalidate() {
	c.store.Delete(c.key)
}
