package repository

import (
	"context"
	"time"
)

// Transactor runs fn inside a database transaction. Repositories called with
// the context handed to fn join that transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker holds short-lived named locks shared across processes
type Locker interface {
	// Acquire takes the lock and reports false when another holder has it.
	// The returned token identifies this holder to Release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release drops the lock only while token still holds it
	Release(ctx context.Context, key, token string) error
}
