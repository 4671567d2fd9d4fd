package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type Memory[V any] struct {
	cache *ttlcache.Cache[string, V]
}

func NewMemory[V any](ttl time.Duration) *Memory[V] {
	c := ttlcache.New[string, V](
		ttlcache.WithTTL[string, V](ttl),
		ttlcache.WithDisableTouchOnHit[string, V](),
	)
	go c.Start()
	return &Memory[V]{cache: c}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	item := m.cache.Get(key)
	if item == nil {
		var zero V
		return zero, ErrCacheMiss
	}
	return item.Value(), nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V) error {
	m.cache.Set(key, value, ttlcache.DefaultTTL)
	return nil
}

func (m *Memory[V]) Close() error {
	m.cache.Stop()
	return nil
}
