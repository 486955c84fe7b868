package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9" // Redis client
)

const (
	// RateWindow is the fixed window length for request counting.
	RateWindow = 15 * time.Minute
	// RateMaxGeneral caps requests per window for most routes.
	RateMaxGeneral = 100
	// RateMaxAuth caps requests per window for authentication routes.
	RateMaxAuth = 10
)

// RateLimiter caps request volume per key within a fixed window,
// independent of authentication outcome.
type RateLimiter interface {
	// Allow counts a request against the key. It returns false with the
	// time until the window resets when the key is over its cap.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// rateWindow tracks one key's current window
type rateWindow struct {
	count int
	start time.Time
}

// MemoryRateLimiter is the process-local fixed-window implementation.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	max     int
	windows map[string]*rateWindow
	now     func() time.Time // injectable clock for tests
}

// NewMemoryRateLimiter creates an in-process limiter with the given cap
func NewMemoryRateLimiter(max int) *MemoryRateLimiter {
	return &MemoryRateLimiter{max: max, windows: make(map[string]*rateWindow), now: time.Now}
}

// Allow increments the key's counter, restarting the window when it has
// elapsed.
func (l *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= RateWindow {
		l.windows[key] = &rateWindow{count: 1, start: now}
		return true, 0, nil
	}
	w.count++
	if w.count > l.max {
		return false, RateWindow - now.Sub(w.start), nil
	}
	return true, 0, nil
}

// RedisRateLimiter is the shared fixed-window implementation: INCR with a
// window-length TTL set on the first hit. Required when running more than
// one server instance.
type RedisRateLimiter struct {
	rdb    *redis.Client
	max    int
	prefix string
}

// NewRedisRateLimiter creates a shared limiter with the given cap and key
// namespace (e.g. "ratelimit:general").
func NewRedisRateLimiter(rdb *redis.Client, max int, prefix string) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, max: max, prefix: prefix + ":"}
}

// Allow counts via INCR; the TTL on the counter is the window
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + key
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := l.rdb.PExpire(ctx, k, RateWindow).Err(); err != nil {
			return false, 0, err
		}
	}
	if count > int64(l.max) {
		ttl, err := l.rdb.PTTL(ctx, k).Result()
		if err != nil || ttl < 0 {
			ttl = RateWindow
		}
		return false, ttl, nil
	}
	return true, 0, nil
}
