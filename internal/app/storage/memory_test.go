package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newClockedStore(ttl time.Duration) (*MemoryStore, *clock) {
	c := &clock{t: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = c.now
	return s, c
}

func TestMemoryStoreScopes(t *testing.T) {
	ctx := context.Background()
	s, _ := newClockedStore(time.Hour)

	if err := s.Set(ctx, "tab-a", KeyGameSession, []byte("a")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := s.Get(ctx, "tab-b", KeyGameSession); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(other scope) error = %v, want ErrNotFound", err)
	}

	got, err := s.Get(ctx, "tab-a", KeyGameSession)
	if err != nil || string(got) != "a" {
		t.Fatalf("Get() = %q, %v", got, err)
	}
	got[0] = 'z'
	if again, _ := s.Get(ctx, "tab-a", KeyGameSession); string(again) != "a" {
		t.Error("Get() returned the stored slice")
	}

	if err := s.Delete(ctx, "tab-a", KeyGameSession, "missing"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "tab-a", KeyGameSession); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, c := newClockedStore(time.Minute)

	_ = s.Set(ctx, "tab", KeyBoardState, []byte("[]"))
	_ = s.Set(ctx, "tab", KeyRemainingLives, []byte("9"))

	c.t = c.t.Add(30 * time.Second)
	_ = s.Set(ctx, "tab", KeyRemainingLives, []byte("8"))

	c.t = c.t.Add(45 * time.Second)
	if _, err := s.Get(ctx, "tab", KeyBoardState); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired value still readable: %v", err)
	}
	if v, err := s.Get(ctx, "tab", KeyRemainingLives); err != nil || string(v) != "8" {
		t.Errorf("renewed value = %q, %v", v, err)
	}

	n, err := s.Purge(ctx)
	if err != nil || n != 1 {
		t.Errorf("Purge() = %d, %v; want 1", n, err)
	}
}

func TestRunJanitorStops(t *testing.T) {
	s, c := newClockedStore(time.Millisecond)
	_ = s.Set(context.Background(), "tab", KeyGameSession, []byte("{}"))
	c.t = c.t.Add(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, time.Millisecond, s)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		s.mu.RLock()
		empty := len(s.scopes) == 0
		s.mu.RUnlock()
		if empty {
			break
		}
		select {
		case <-deadline:
			t.Fatal("janitor did not purge the expired value")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done
}
