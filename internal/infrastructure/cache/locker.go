package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
)

const lockPrefix = "snaz:lock:"

// releaseScript deletes the lock only while it still carries the caller's token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// lockClient is the part of *redis.Client the locker uses
type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisLocker struct {
	rdb lockClient
}

// NewRedisLocker returns a locker backed by SET NX with expiry
func NewRedisLocker(rdb *redis.Client) domainRepo.Locker {
	return &redisLocker{rdb: rdb}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, lockPrefix+key, token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (l *redisLocker) Release(ctx context.Context, key, token string) error {
	return l.rdb.Eval(ctx, releaseScript, []string{lockPrefix + key}, token).Err()
}

type localLock struct {
	token string
	until time.Time
}

// LocalLocker serializes lock holders within one process. It is used when
// redis is disabled and in tests.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localLock
	clock func() time.Time
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localLock), clock: time.Now}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if lock, ok := l.held[key]; ok && now.Before(lock.until) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = localLock{token: token, until: now.Add(ttl)}
	return token, true, nil
}

func (l *LocalLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lock, ok := l.held[key]; ok && lock.token == token {
		delete(l.held, key)
	}
	return nil
}
