/*
Package storage keeps the client-side state that a browser would hold in its own storage.

A Store holds byte values by scope and key. The tab scope is addressed by a browser
session cookie and holds the game state of one tab (the Bridge); the device scope is
addressed by a long-lived cookie and holds the login (the Vault). Values expire after
the TTL of the store they were written to.
*/
package storage

import (
	"context"
	"errors"
	"time"

	"thinkle/internal/pkg/logx"
)

// Keys of the tab scope.
const (
	KeyGameSession    = "gameSession"
	KeyRemainingLives = "remainingLives"
	KeyBoardState     = "boardState"
)

// Keys of the device scope.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// ErrNotFound is returned by Get for a missing or expired value.
var ErrNotFound = errors.New("storage: value not found")

// Store is a key/value store partitioned by scope.
type Store interface {
	// Get returns the value of key in scope, or ErrNotFound.
	Get(ctx context.Context, scope, key string) ([]byte, error)

	// Set stores value under key in scope and renews its expiry.
	Set(ctx context.Context, scope, key string, value []byte) error

	// Delete removes keys from scope. Missing keys are ignored.
	Delete(ctx context.Context, scope string, keys ...string) error

	// Purge removes every expired value and returns how many were removed.
	Purge(ctx context.Context) (int, error)

	Close() error
}

// RunJanitor purges expired values from stores every interval until ctx is done.
func RunJanitor(ctx context.Context, interval time.Duration, stores ...Store) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, s := range stores {
				n, err := s.Purge(ctx)
				if err != nil {
					logx.Error(err, "Storage purge failed")
					continue
				}
				if n > 0 {
					logx.Debug("Expired storage values purged", "removed", n)
				}
			}
		}
	}
}
