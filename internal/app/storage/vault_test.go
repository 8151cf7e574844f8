package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt"

	"thinkle/internal/app/user"
	"thinkle/internal/pkg/auth/jwt"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.Claims{StandardClaims: gojwt.StandardClaims{ExpiresAt: exp.Unix()}}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestVaultSaveLoad(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore(time.Hour))
	in := &user.Session{User: user.User{ID: 5, Username: "ada", Email: "ada@thinkle.test"}, Token: signedToken(t, time.Now().Add(time.Hour))}

	if err := v.Save(ctx, "device", in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok := v.Load(ctx, "device")
	if !ok || got.User != in.User || got.Token != in.Token {
		t.Errorf("Load() = %+v, %v", got, ok)
	}
	if _, ok := v.Load(ctx, "other-device"); ok {
		t.Error("Load() found a login on another device")
	}
}

func TestVaultClearsInvalidLogin(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		token string
		user  string
	}{
		{"undefined user", "opaque", "undefined"},
		{"broken json", "opaque", `{"id":`},
		{"no id", "opaque", `{"username":"ada"}`},
		{"expired token", signedToken(t, time.Now().Add(-time.Hour)), `{"id":5,"username":"ada"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := NewMemoryStore(time.Hour)
			_ = store.Set(ctx, "device", KeyAuthToken, []byte(c.token))
			_ = store.Set(ctx, "device", KeyUser, []byte(c.user))

			if _, ok := NewVault(store).Load(ctx, "device"); ok {
				t.Fatal("Load() ok = true")
			}
			for _, key := range []string{KeyAuthToken, KeyUser} {
				if _, err := store.Get(ctx, "device", key); !errors.Is(err, ErrNotFound) {
					t.Errorf("%s not cleared: %v", key, err)
				}
			}
		})
	}
}

func TestVaultOpaqueTokenStays(t *testing.T) {
	ctx := context.Background()
	v := NewVault(NewMemoryStore(time.Hour))
	_ = v.Save(ctx, "device", &user.Session{User: user.User{ID: 9}, Token: "opaque-token"})

	if _, ok := v.Load(ctx, "device"); !ok {
		t.Error("opaque token rejected")
	}

	v.Clear(ctx, "device")
	if _, ok := v.Load(ctx, "device"); ok {
		t.Error("Load() after Clear ok = true")
	}
}
