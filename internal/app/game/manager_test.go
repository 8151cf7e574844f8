package game

import (
	"context"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	backend := &fakeBackend{session: func() (*GameSession, error) { return freshSession(), nil }}
	m := NewManager(backend, func(string) Persister { return &memPersister{} }, time.Hour)
	t.Cleanup(m.Shutdown)
	return m
}

func TestManagerReusesControllers(t *testing.T) {
	m := newTestManager(t)

	a := m.Controller("tab-a")
	if m.Controller("tab-a") != a {
		t.Error("Controller() returned a new instance for the same tab")
	}
	if m.Controller("tab-b") == a {
		t.Error("tabs share a controller")
	}
	if m.Lookup("tab-c") != nil {
		t.Error("Lookup() created a controller")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestManagerRemovesIdle(t *testing.T) {
	m := newTestManager(t)
	m.Controller("old")
	m.Controller("fresh")

	m.mu.Lock()
	m.controllers["old"].lastSeen = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()

	if n := m.removeIdle(time.Now()); n != 1 {
		t.Errorf("removeIdle() = %d, want 1", n)
	}
	if m.Lookup("old") != nil || m.Lookup("fresh") == nil {
		t.Error("wrong controller removed")
	}
}

func TestPollStopsWhenGameEnds(t *testing.T) {
	fetches := 0
	backend := &fakeBackend{}
	backend.session = func() (*GameSession, error) {
		fetches++
		s := freshSession()
		if fetches > 2 {
			s.GameStatus = StatusLost
			s.RemainingLives = 0
		}
		return s, nil
	}
	ctrl, _ := startedController(t, backend)

	done := make(chan struct{})
	go func() {
		Poll(context.Background(), ctrl, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Poll() did not stop after the game ended")
	}
	if got := backend.count("fetch"); got != 2 {
		t.Errorf("fetch calls = %d, want 2", got)
	}
	if st := ctrl.Snapshot(); st.Session.GameStatus != StatusLost {
		t.Errorf("status = %q, want LOST", st.Session.GameStatus)
	}
}

func TestPollStopsOnCancel(t *testing.T) {
	ctrl, _ := startedController(t, &fakeBackend{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Poll(ctx, ctrl, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Poll() ignored cancellation")
	}
}

func TestPollSkipsFinishedGame(t *testing.T) {
	ctrl, _ := newTestController(t, &fakeBackend{})

	done := make(chan struct{})
	go func() {
		Poll(context.Background(), ctrl, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Poll() ran without a session")
	}
}

func TestManagerShutdownStopsWatchers(t *testing.T) {
	backend := &fakeBackend{session: func() (*GameSession, error) { return freshSession(), nil }}
	m := NewManager(backend, func(string) Persister { return &memPersister{} }, time.Hour)

	ctrl := m.Controller("tab")
	ctrl.SetAuth(testAuth)
	ctrl.MarkChecked()
	if err := ctrl.CreateSession(context.Background()); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	m.Watch(context.Background(), ctrl, time.Hour)

	done := make(chan struct{})
	go func() {
		m.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown() waited on a running poller")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after Shutdown", m.Len())
	}
}
