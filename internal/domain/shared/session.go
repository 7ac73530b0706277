package shared

import (
	"context"
	"time"
)

// SessionStore tracks issued admin sessions by token ID. A token is only
// honoured while its ID is present in the store, so revoking an ID logs
// that session out regardless of the token's own expiry.
type SessionStore interface {
	// Put records a session ID with the given time to live
	Put(ctx context.Context, id string, ttl time.Duration) error
	// Exists reports whether a session ID is still active
	Exists(ctx context.Context, id string) (bool, error)
	// Revoke removes a session ID
	Revoke(ctx context.Context, id string) error
	// Close releases any resources held by the store
	Close() error
}
