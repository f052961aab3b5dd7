package cron

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type fakeRedisStore struct {
	values map[string]string
}

func newFakeRedisStore() *fakeRedisStore {
	return &fakeRedisStore{values: map[string]string{}}
}

func (f *fakeRedisStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, held := f.values[key]; held {
		return false, nil
	}
	f.values[key] = fmt.Sprint(value)
	return true, nil
}

func (f *fakeRedisStore) Eval(_ context.Context, _ string, keys []string, args ...any) (any, error) {
	if f.values[keys[0]] == fmt.Sprint(args[0]) {
		delete(f.values, keys[0])
		return int64(1), nil
	}
	return int64(0), nil
}

func TestRedisLockAcquireIsExclusive(t *testing.T) {
	store := newFakeRedisStore()
	lock, err := NewRedisLock(store, "carrental:test:lock", time.Hour)
	if err != nil {
		t.Fatalf("construct lock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("first acquire must win, got ok=%v err=%v", ok, err)
	}
	ok, err = lock.Acquire(context.Background())
	if err != nil || ok {
		t.Fatalf("second acquire must lose while held, got ok=%v err=%v", ok, err)
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("acquire after release must win, got ok=%v err=%v", ok, err)
	}
}

func TestRedisLockReleaseKeepsForeignOwner(t *testing.T) {
	store := newFakeRedisStore()
	lock, err := NewRedisLock(store, "carrental:test:lock", time.Hour)
	if err != nil {
		t.Fatalf("construct lock: %v", err)
	}
	if ok, err := lock.Acquire(context.Background()); err != nil || !ok {
		t.Fatalf("acquire: ok=%v err=%v", ok, err)
	}

	// TTL expiry followed by another worker taking the lock.
	store.values["carrental:test:lock"] = "other-worker"

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := store.values["carrental:test:lock"]; got != "other-worker" {
		t.Fatalf("release must not delete another worker's lock, got %q", got)
	}
}

func TestRedisLockReleaseWithoutAcquireIsNoop(t *testing.T) {
	store := newFakeRedisStore()
	store.values["carrental:test:lock"] = "other-worker"
	lock, err := NewRedisLock(store, "carrental:test:lock", time.Hour)
	if err != nil {
		t.Fatalf("construct lock: %v", err)
	}
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := store.values["carrental:test:lock"]; got != "other-worker" {
		t.Fatalf("unacquired release must leave the lock alone, got %q", got)
	}
}
