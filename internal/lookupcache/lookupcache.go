// Package lookupcache memoizes online-lookup results so a library rescan
// does not re-query AcoustID/MusicBrainz for a fingerprint the cache still
// holds. It holds a bounded in-process LRU tier and an optional Redis L2
// tier that degrades gracefully when Redis is unreachable.
package lookupcache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/zfogg/sonicindex/internal/logger"
	"github.com/zfogg/sonicindex/internal/metrics"
	"github.com/zfogg/sonicindex/internal/onlinelookup"
)

const (
	defaultCapacity = 1000
	redisTTL        = 30 * 24 * time.Hour
	redisKeyPrefix  = "sonicindex:lookup:"
)

// Stats reports cache effectiveness for the status endpoint.
type Stats struct {
	Hits    int64
	Misses  int64
	L2Hits  int64
	Entries int
}

// Cache memoizes fingerprint -> MetadataDelta lookups. The zero value is not
// usable; construct with New. Get/Put are called concurrently from the
// worker pool, so the effectiveness counters are atomic.Int64 rather than
// plain int64.
type Cache struct {
	recordings *lru.Cache[string, *onlinelookup.MetadataDelta]
	redis      *redis.Client

	hits, misses, l2hits atomic.Int64
}

// New builds a Cache with the given in-process capacity. capacity <= 0
// falls back to defaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	l, err := lru.New[string, *onlinelookup.MetadataDelta](capacity)
	if err != nil {
		// Only returns an error for a non-positive size, which is excluded above.
		panic(err)
	}
	return &Cache{recordings: l}
}

// WithRedis attaches an optional L2 tier. redisURL == "" leaves the cache
// L1-only. A failed connection is logged and treated the same as "".
func (c *Cache) WithRedis(redisURL string) *Cache {
	if redisURL == "" {
		return c
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.WarnWithFields("invalid lookup cache redis url, continuing without L2 cache", err)
		return c
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WarnWithFields("lookup cache redis unreachable, continuing without L2 cache", err)
		return c
	}
	c.redis = client
	return c
}

// Get returns a cached delta for fingerprint, checking L1 then L2.
func (c *Cache) Get(ctx context.Context, fingerprint string) (*onlinelookup.MetadataDelta, bool) {
	m := metrics.Get()
	if delta, ok := c.recordings.Get(fingerprint); ok {
		c.hits.Add(1)
		m.LookupCacheHitsTotal.Inc()
		return delta, true
	}

	if c.redis != nil {
		raw, err := c.redis.Get(ctx, redisKeyPrefix+fingerprint).Result()
		if err == nil {
			var delta onlinelookup.MetadataDelta
			if json.Unmarshal([]byte(raw), &delta) == nil {
				c.recordings.Add(fingerprint, &delta)
				c.l2hits.Add(1)
				c.hits.Add(1)
				m.LookupCacheHitsTotal.Inc()
				return &delta, true
			}
		}
	}

	c.misses.Add(1)
	m.LookupCacheMissesTotal.Inc()
	return nil, false
}

// Put stores delta for fingerprint in both tiers.
func (c *Cache) Put(ctx context.Context, fingerprint string, delta *onlinelookup.MetadataDelta) {
	c.recordings.Add(fingerprint, delta)

	if c.redis != nil {
		if data, err := json.Marshal(delta); err == nil {
			if err := c.redis.Set(ctx, redisKeyPrefix+fingerprint, data, redisTTL).Err(); err != nil {
				logger.WarnWithFields("lookup cache redis write failed", err)
			}
		}
	}
}

// Stats returns a snapshot of cache effectiveness counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		L2Hits:  c.l2hits.Load(),
		Entries: c.recordings.Len(),
	}
}

// Close releases the Redis connection, if any.
func (c *Cache) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
