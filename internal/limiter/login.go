package limiter

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9" // Redis client
)

const (
	// LoginMaxFailures is the failure count at which an identifier locks.
	LoginMaxFailures = 5
	// LoginLockout is how long a locked identifier stays refused.
	LoginLockout = 15 * time.Minute
)

// LoginLimiter defends credential login against brute force, keyed by a
// caller-chosen identifier (the login email).
type LoginLimiter interface {
	// IsBlocked reports whether the identifier is locked out, and for how
	// much longer.
	IsBlocked(ctx context.Context, id string) (bool, time.Duration, error)
	// RecordAttempt registers a login outcome. Success clears the record
	// entirely; failure increments the count and refreshes the timestamp.
	RecordAttempt(ctx context.Context, id string, success bool) error
}

// loginRecord tracks failures for one identifier
type loginRecord struct {
	failures int
	lastSeen time.Time
}

// MemoryLoginLimiter keeps attempt records in a process-local map. It does
// not survive restarts and does not coordinate across instances; use
// RedisLoginLimiter for multi-instance deployments.
type MemoryLoginLimiter struct {
	mu      sync.Mutex
	records map[string]*loginRecord
	now     func() time.Time // injectable clock for tests
}

// NewMemoryLoginLimiter creates an empty in-process attempt limiter
func NewMemoryLoginLimiter() *MemoryLoginLimiter {
	return &MemoryLoginLimiter{records: make(map[string]*loginRecord), now: time.Now}
}

// IsBlocked checks the record, lazily purging it once the lockout window has
// elapsed.
func (l *MemoryLoginLimiter) IsBlocked(ctx context.Context, id string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[id]
	if !ok || rec.failures < LoginMaxFailures {
		return false, 0, nil
	}
	elapsed := l.now().Sub(rec.lastSeen)
	if elapsed >= LoginLockout {
		delete(l.records, id) // Lazy reset, no background sweep
		return false, 0, nil
	}
	return true, LoginLockout - elapsed, nil
}

// RecordAttempt updates the record for an identifier
func (l *MemoryLoginLimiter) RecordAttempt(ctx context.Context, id string, success bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if success {
		delete(l.records, id)
		return nil
	}
	rec, ok := l.records[id]
	if !ok {
		rec = &loginRecord{}
		l.records[id] = rec
	}
	rec.failures++
	rec.lastSeen = l.now()
	return nil
}

// RedisLoginLimiter keeps attempt counts in Redis so lockouts hold across
// server instances. The counter key carries the lockout window as its TTL,
// refreshed on every failure.
type RedisLoginLimiter struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisLoginLimiter creates a shared attempt limiter
func NewRedisLoginLimiter(rdb *redis.Client) *RedisLoginLimiter {
	return &RedisLoginLimiter{rdb: rdb, prefix: "login_attempts:"}
}

// IsBlocked reads the counter; expiry in Redis stands in for the lazy purge
func (l *RedisLoginLimiter) IsBlocked(ctx context.Context, id string) (bool, time.Duration, error) {
	val, err := l.rdb.Get(ctx, l.prefix+id).Result()
	if err == redis.Nil {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	count, _ := strconv.Atoi(val)
	if count < LoginMaxFailures {
		return false, 0, nil
	}
	ttl, err := l.rdb.PTTL(ctx, l.prefix+id).Result()
	if err != nil || ttl < 0 {
		return false, 0, err
	}
	return true, ttl, nil
}

// RecordAttempt increments or clears the shared counter
func (l *RedisLoginLimiter) RecordAttempt(ctx context.Context, id string, success bool) error {
	key := l.prefix + id
	if success {
		return l.rdb.Del(ctx, key).Err()
	}
	if err := l.rdb.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return l.rdb.PExpire(ctx, key, LoginLockout).Err()
}
