package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"filmorate/pkg/metrics"
	"filmorate/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "filmorate:popular:"
	versionKey = keyPrefix + "version"

	breakerName     = "redis-popular"
	defaultTTL      = 5 * time.Minute
	tripAfterErrors = 5
)

// RedisCache keys entries by a like-version counter. Invalidate bumps the
// counter, so older entries are unreachable and expire through their TTL.
// A failed bump is retried before the next read; until it succeeds this
// instance only reports misses. The stale mark is per process: other
// instances sharing the Redis keep serving the old generation until some
// bump goes through or the entries expire.
type RedisCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	ttl     time.Duration
	stale   atomic.Bool
	log     *zap.Logger
}

// NewRedisCache connects to Redis. An unreachable server is logged, not
// returned: the breaker keeps requests away until it recovers.
func NewRedisCache(cfg utils.CacheConfig, log *zap.Logger) *RedisCache {
	log = log.With(zap.String("cache", "popular"))

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		MaxRetries:   1,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c := &RedisCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfterErrors
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not reachable, popular cache degraded",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
	} else {
		log.Info("Redis connected", zap.String("addr", cfg.RedisAddr))
	}

	return c
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// State exposes the breaker state for health output.
func (c *RedisCache) State() gobreaker.State {
	return c.breaker.State()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func entryKey(version Version, key PopularKey) string {
	return fmt.Sprintf("%sv%d:%s", keyPrefix, version, key)
}

// version reads the current generation. A missing counter is generation 0.
func (c *RedisCache) version(ctx context.Context) (Version, error) {
	n, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return NoVersion, fmt.Errorf("read cache version: %w", err)
	}
	return Version(n), nil
}

func (c *RedisCache) Get(ctx context.Context, key PopularKey) ([]int64, Version, bool) {
	if c.stale.Load() && !c.bump(ctx) {
		return nil, NoVersion, false
	}

	version := NoVersion
	payload, err := c.breaker.Execute(func() ([]byte, error) {
		v, err := c.version(ctx)
		if err != nil {
			return nil, err
		}
		version = v
		return c.client.Get(ctx, entryKey(v, key)).Bytes()
	})

	if errors.Is(err, redis.Nil) {
		return nil, version, false
	}
	if err != nil {
		c.fail("get", err)
		return nil, NoVersion, false
	}

	var ids []int64
	if err := json.Unmarshal(payload, &ids); err != nil {
		c.fail("decode", err)
		return nil, version, false
	}
	return ids, version, true
}

// Set writes under the version the caller's Get returned. If an Invalidate
// ran in between, the entry lands on a retired generation and is never read.
func (c *RedisCache) Set(ctx context.Context, key PopularKey, version Version, filmIDs []int64) {
	if version == NoVersion || c.stale.Load() {
		return
	}

	payload, err := json.Marshal(filmIDs)
	if err != nil {
		c.fail("encode", err)
		return
	}

	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, entryKey(version, key), payload, c.ttl).Err()
	})
	if err != nil {
		c.fail("set", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	c.stale.Store(true)
	c.bump(ctx)
}

// bump increments the version and clears the stale mark on success.
func (c *RedisCache) bump(ctx context.Context) bool {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Incr(ctx, versionKey).Err()
	})
	if err != nil {
		c.fail("invalidate", err)
		return false
	}
	c.stale.Store(false)
	return true
}

func (c *RedisCache) fail(op string, err error) {
	metrics.RecordCacheError(op)
	c.log.Warn("Popular cache operation failed",
		zap.String("operation", op),
		zap.Error(err),
	)
}
