// Package cache stores analytics lookups between requests, in process or in
// Redis when several server instances share one store.
package cache

import (
	"context"
	"errors"
)

var ErrCacheMiss = errors.New("cache: key not found")

type Store[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V) error
	Close() error
}
