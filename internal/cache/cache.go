// Package cache memoizes single-position engine results.
//
// Entries live in a ristretto cache with a TTL and, when a Storage is
// supplied, in a BadgerDB second level that survives restarts.
package cache

import (
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/rs/zerolog"

	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/storage"
)

// Op tags the operation a cached result belongs to.
type Op byte

const (
	OpEvaluate Op = 'e'
	OpMoves    Op = 'm'
)

// Key returns the cache key of op applied to b with stm to move.
func Key(b *board.Board, stm board.Color, op Op) uint64 {
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], b.HashWithSide(stm))
	buf[8] = byte(op)
	return xxhash.Sum64(buf[:])
}

// Options configures a cache.
type Options struct {
	// MaxCost bounds the L1 size in estimated bytes.
	MaxCost int64
	TTL     time.Duration
	// Store is the optional second level. The cache does not close it.
	Store  *storage.Storage
	Logger zerolog.Logger
}

// Stats reports lookup counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	// L2Hits counts misses in memory that were served by Store.
	L2Hits uint64
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Cache maps position keys to values of type V.
type Cache[V any] struct {
	l1   *ristretto.Cache[uint64, V]
	l2   *storage.Storage
	ttl  time.Duration
	cost func(V) int64
	log  zerolog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
	l2Hits atomic.Uint64
}

// New creates a cache. cost estimates the memory footprint of a value.
func New[V any](opts Options, cost func(V) int64) (*Cache[V], error) {
	l1, err := ristretto.NewCache(&ristretto.Config[uint64, V]{
		NumCounters:        max(opts.MaxCost/8, 1000),
		MaxCost:            opts.MaxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Cache[V]{
		l1:   l1,
		l2:   opts.Store,
		ttl:  opts.TTL,
		cost: cost,
		log:  opts.Logger,
	}, nil
}

// Get looks up key in memory, then in Store.
func (c *Cache[V]) Get(key uint64) (V, bool) {
	if v, ok := c.l1.Get(key); ok {
		c.hits.Add(1)
		return v, true
	}

	if c.l2 != nil {
		var v V
		found, err := c.l2.Get(key, &v)
		if err != nil {
			c.log.Warn().Err(err).Uint64("key", key).Msg("cache: second level read failed")
		}
		if found {
			c.hits.Add(1)
			c.l2Hits.Add(1)
			c.l1.SetWithTTL(key, v, c.cost(v), c.ttl)
			return v, true
		}
	}

	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores v under key in both levels. The memory level applies writes
// asynchronously; call Wait to make them visible.
func (c *Cache[V]) Set(key uint64, v V) {
	c.l1.SetWithTTL(key, v, c.cost(v), c.ttl)
	if c.l2 != nil {
		if err := c.l2.Put(key, v, c.ttl); err != nil {
			c.log.Warn().Err(err).Uint64("key", key).Msg("cache: second level write failed")
		}
	}
}

// GetOrCompute returns the cached value of key, computing and storing it
// with fn on a miss.
func (c *Cache[V]) GetOrCompute(key uint64, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := fn()
	c.Set(key, v)
	return v
}

// Wait blocks until pending memory writes are applied.
func (c *Cache[V]) Wait() {
	c.l1.Wait()
}

// Stats returns the lookup counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		L2Hits: c.l2Hits.Load(),
	}
}

// Clear drops the memory level and resets the counters.
func (c *Cache[V]) Clear() {
	c.l1.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
	c.l2Hits.Store(0)
}

// Close releases the memory level.
func (c *Cache[V]) Close() {
	c.l1.Close()
}
