package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
	l := NewLocalLocker()
	l.clock = func() time.Time { return now }

	first, ok, err := l.Acquire(ctx, "orders:2024-01-15", time.Minute)
	if err != nil || !ok || first == "" {
		t.Fatalf("first acquire = %q, %v, %v", first, ok, err)
	}

	if _, ok, _ = l.Acquire(ctx, "orders:2024-01-15", time.Minute); ok {
		t.Fatal("second acquire should fail while held")
	}

	if _, ok, _ = l.Acquire(ctx, "orders:2024-01-16", time.Minute); !ok {
		t.Fatal("a different key should not be blocked")
	}

	now = now.Add(2 * time.Minute)
	second, ok, _ := l.Acquire(ctx, "orders:2024-01-15", time.Minute)
	if !ok {
		t.Fatal("expired lock should be reacquired")
	}

	_ = l.Release(ctx, "orders:2024-01-15", first)
	if _, ok, _ = l.Acquire(ctx, "orders:2024-01-15", time.Minute); ok {
		t.Fatal("a stale holder must not release the current lock")
	}

	_ = l.Release(ctx, "orders:2024-01-15", second)
	if _, ok, _ = l.Acquire(ctx, "orders:2024-01-15", time.Minute); !ok {
		t.Fatal("released lock should be reacquired")
	}
}

// memLockClient emulates SET NX and the compare-and-delete script
type memLockClient struct {
	values map[string]string
}

func (c *memLockClient) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	if _, ok := c.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	c.values[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (c *memLockClient) Eval(_ context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	if script != releaseScript || len(keys) != 1 || len(args) != 1 {
		return redis.NewCmdResult(nil, errors.New("unexpected script call"))
	}
	if c.values[keys[0]] == args[0] {
		delete(c.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestRedisLocker_ReleaseChecksToken(t *testing.T) {
	ctx := context.Background()
	client := &memLockClient{values: make(map[string]string)}
	a := &redisLocker{rdb: client}
	b := &redisLocker{rdb: client}

	stale, ok, err := a.Acquire(ctx, "daily-orders:2025-03-10", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire = %v, %v", ok, err)
	}
	if _, ok, _ := b.Acquire(ctx, "daily-orders:2025-03-10", time.Minute); ok {
		t.Fatal("second holder should be refused while the lock is held")
	}

	// the first holder's ttl runs out and another generator takes over
	delete(client.values, lockPrefix+"daily-orders:2025-03-10")
	current, ok, _ := b.Acquire(ctx, "daily-orders:2025-03-10", time.Minute)
	if !ok {
		t.Fatal("expired lock should be reacquired")
	}

	if err := a.Release(ctx, "daily-orders:2025-03-10", stale); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if client.values[lockPrefix+"daily-orders:2025-03-10"] != current {
		t.Fatal("a stale release removed the current holder's lock")
	}

	if err := b.Release(ctx, "daily-orders:2025-03-10", current); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, held := client.values[lockPrefix+"daily-orders:2025-03-10"]; held {
		t.Fatal("the holder's release should remove the lock")
	}
}

func TestNilStoreIsAMiss(t *testing.T) {
	var s *Store
	var v map[string]int
	found, err := s.Get(context.Background(), "k", &v)
	if found || err != nil {
		t.Fatalf("got %v, %v", found, err)
	}
	if err := s.Set(context.Background(), "k", 1, time.Second); err != nil {
		t.Fatal(err)
	}
}
