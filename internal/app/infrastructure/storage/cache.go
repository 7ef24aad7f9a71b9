package storage

import (
	"sync/atomic"
	"time"

	"github.com/maypok86/otter/v2"
)

// Cache is a TTL cache over otter. The client uses it to answer repeated
// WHOIS and LIST queries locally instead of re-asking over the slow link.
type Cache[T any] struct {
	outer *otter.Cache[string, T]
	ttl   atomic.Int64
}

func NewCache[T any](capacity int, ttl time.Duration) *Cache[T] {
	c := &Cache[T]{}
	c.outer = otter.Must(&otter.Options[string, T]{
		InitialCapacity:  capacity,
		ExpiryCalculator: otter.ExpiryWriting[string, T](ttl),
	})
	c.ttl.Store(ttl.Nanoseconds())

	return c
}

func (c *Cache[T]) Set(key string, val T) {
	c.outer.Set(key, val)
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.outer.GetIfPresent(key)
}

func (c *Cache[T]) ClearKey(key string) {
	c.outer.Invalidate(key)
}

func (c *Cache[T]) ClearAll() {
	c.outer.InvalidateAll()
}

func (c *Cache[T]) SetTTL(newTTL time.Duration) {
	c.ttl.Store(newTTL.Nanoseconds())
}

func (c *Cache[T]) GetTTL() time.Duration {
	return time.Duration(c.ttl.Load())
}
