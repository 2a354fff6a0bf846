package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyTTL is how long a stored response can be replayed
const IdempotencyTTL = 24 * time.Hour

// IdempotencyKey caches the response of a retried write, such as a payment
// or a generation run, keyed by the client's Idempotency-Key header.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_user_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	Endpoint     string    `gorm:"size:255;not null"`
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired at now
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// SameRequest reports whether a replay carries the body the key was first used with
func (i *IdempotencyKey) SameRequest(endpoint, requestHash string) bool {
	if i.Endpoint != endpoint {
		return false
	}
	return i.RequestHash == "" || i.RequestHash == requestHash
}
