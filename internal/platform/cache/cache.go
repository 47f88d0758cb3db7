// Package cache provides a two tier byte cache: in process memory backed by
// an optional redis instance that survives restarts
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"streamdex/internal/platform/logger"
)

// Cache stores opaque values by key
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// Key builds a deterministic, bounded key from parts
func Key(prefix string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%x", prefix, sum[:12])
}

// Stats are hit and miss counters
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	L1Size int   `json:"l1_size"`
	Redis  bool  `json:"redis"`
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Tiered is an L1 memory cache with an optional L2 redis client
type Tiered struct {
	l1         sync.Map
	size       atomic.Int64
	rdb        redis.UniversalClient
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	hits       atomic.Int64
	misses     atomic.Int64
	log        logger.Logger
}

// Option configures a Tiered cache
type Option func(*Tiered)

// WithRedis enables the L2 tier
func WithRedis(rdb redis.UniversalClient) Option { return func(t *Tiered) { t.rdb = rdb } }

// WithTTL sets the default ttl used when Set receives zero
func WithTTL(d time.Duration) Option { return func(t *Tiered) { t.ttl = d } }

// WithMaxEntries bounds L1, zero means unbounded
func WithMaxEntries(n int) Option { return func(t *Tiered) { t.maxEntries = n } }

// New builds a Tiered cache
func New(opts ...Option) *Tiered {
	t := &Tiered{
		ttl: 15 * time.Minute,
		now: time.Now,
		log: *logger.Named("cache"),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Get tries L1 then L2, an L2 hit repopulates L1
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := t.l1.Load(key); ok {
		e := v.(*entry)
		if t.now().Before(e.expiresAt) {
			t.hits.Add(1)
			return e.data, true
		}
		if _, loaded := t.l1.LoadAndDelete(key); loaded {
			t.size.Add(-1)
		}
	}

	if t.rdb != nil {
		var (
			get  *redis.StringCmd
			pttl *redis.DurationCmd
		)
		_, _ = t.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
			get = p.Get(ctx, key)
			pttl = p.PTTL(ctx, key)
			return nil
		})
		b, err := get.Bytes()
		if err == nil {
			t.hits.Add(1)
			t.store(key, b, remainingTTL(pttl.Val(), t.ttl))
			return b, true
		}
		if !errors.Is(err, redis.Nil) {
			t.log.Warn().Err(err).Str("key", key).Msg("cache redis get failed")
		}
	}

	t.misses.Add(1)
	return nil, false
}

// remainingTTL keeps an L1 copy no longer than its L2 original
// redis answers -1 for keys without expiry
func remainingTTL(left, def time.Duration) time.Duration {
	if left <= 0 {
		return def
	}
	return min(left, def)
}

// Set writes both tiers; ttl <= 0 uses the cache default
func (t *Tiered) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = t.ttl
	}
	t.store(key, val, ttl)
	if t.rdb != nil {
		if err := t.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
			t.log.Warn().Err(err).Str("key", key).Msg("cache redis set failed")
		}
	}
}

func (t *Tiered) store(key string, val []byte, ttl time.Duration) {
	if t.maxEntries > 0 && int(t.size.Load()) >= t.maxEntries {
		t.evict()
	}
	if _, loaded := t.l1.Swap(key, &entry{data: val, expiresAt: t.now().Add(ttl)}); !loaded {
		t.size.Add(1)
	}
}

// evict drops expired entries, then arbitrary ones until under the bound
func (t *Tiered) evict() {
	now := t.now()
	t.l1.Range(func(k, v any) bool {
		if !now.Before(v.(*entry).expiresAt) {
			if _, loaded := t.l1.LoadAndDelete(k); loaded {
				t.size.Add(-1)
			}
		}
		return true
	})
	t.l1.Range(func(k, _ any) bool {
		if int(t.size.Load()) < t.maxEntries {
			return false
		}
		if _, loaded := t.l1.LoadAndDelete(k); loaded {
			t.size.Add(-1)
		}
		return true
	})
}

// Stats returns a counter snapshot
func (t *Tiered) Stats() Stats {
	return Stats{
		Hits:   t.hits.Load(),
		Misses: t.misses.Load(),
		L1Size: int(t.size.Load()),
		Redis:  t.rdb != nil,
	}
}

// Close releases the redis client if any
func (t *Tiered) Close() error {
	if t.rdb == nil {
		return nil
	}
	return t.rdb.Close()
}

// Ping checks the redis tier; a memory only cache is always ready
func (t *Tiered) Ping(ctx context.Context) error {
	if t.rdb == nil {
		return nil
	}
	return t.rdb.Ping(ctx).Err()
}
