package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"thinkle/internal/app/user"
	"thinkle/internal/pkg/auth/jwt"
	"thinkle/internal/pkg/logx"
)

// Vault keeps the login of a device in the device scope of a Store.
type Vault struct {
	store Store
	now   func() time.Time
}

// NewVault returns a vault over store.
func NewVault(store Store) *Vault {
	return &Vault{store: store, now: time.Now}
}

// Save stores the token and the user of session for deviceID.
func (v *Vault) Save(ctx context.Context, deviceID string, session *user.Session) error {
	raw, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := v.store.Set(ctx, deviceID, KeyAuthToken, []byte(session.Token)); err != nil {
		return err
	}
	return v.store.Set(ctx, deviceID, KeyUser, raw)
}

// Load returns the stored login of deviceID. A stored user that does not decode, or a
// token that has expired, clears both keys and reports no login.
func (v *Vault) Load(ctx context.Context, deviceID string) (*user.Session, bool) {
	token, err := v.store.Get(ctx, deviceID, KeyAuthToken)
	if err != nil {
		v.logReadError(err)
		return nil, false
	}
	raw, err := v.store.Get(ctx, deviceID, KeyUser)
	if err != nil {
		v.logReadError(err)
		return nil, false
	}

	var u user.User
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "undefined" || text == "null" || json.Unmarshal(raw, &u) != nil {
		logx.Warn("Stored user is malformed, clearing the login", "device_id", deviceID)
		v.Clear(ctx, deviceID)
		return nil, false
	}

	session := &user.Session{User: u, Token: string(token)}
	if !session.Authenticated() {
		v.Clear(ctx, deviceID)
		return nil, false
	}
	if jwt.IsExpired(session.Token, v.now()) {
		logx.Info("Stored token has expired, clearing the login", "device_id", deviceID)
		v.Clear(ctx, deviceID)
		return nil, false
	}
	return session, true
}

// Clear removes the login of deviceID.
func (v *Vault) Clear(ctx context.Context, deviceID string) {
	if err := v.store.Delete(ctx, deviceID, KeyAuthToken, KeyUser); err != nil {
		logx.Error(err, "Failed to clear device storage", "device_id", deviceID)
	}
}

func (v *Vault) logReadError(err error) {
	if !errors.Is(err, ErrNotFound) {
		logx.Error(err, "Failed to read device storage")
	}
}
