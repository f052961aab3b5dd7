package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lock lifetime must outlast the longest reminder cycle so a crashed worker
// cannot block the next day's run.
const defaultLockTTL = 25 * time.Hour

// releaseScript deletes the lock only when the stored token still belongs to
// this worker. Doing the compare and the delete in one script keeps an
// expired-and-reacquired lock safe from a stale release.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) end return 0`

// Lock coordinates exclusive cron runs.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// redisStore defines the operations used by RedisLock.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Eval(ctx context.Context, script string, keys []string, args ...any) (any, error)
}

// RedisLock implements Lock with SETNX plus a per-acquisition owner token.
type RedisLock struct {
	client redisStore
	key    string
	ttl    time.Duration
	token  string
}

// NewRedisLock constructs a Redis-backed lock for the reminder worker.
func NewRedisLock(client redisStore, key string, ttl time.Duration) (*RedisLock, error) {
	if client == nil {
		return nil, errors.New("redis client required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLock{client: client, key: key, ttl: ttl}, nil
}

// Acquire tries to own the lock for the configured TTL. The stored value is
// a fresh token so Release can prove the lock is still ours.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl)
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release frees the lock only if our token is still stored under the key.
func (l *RedisLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	if _, err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	l.token = ""
	return nil
}
