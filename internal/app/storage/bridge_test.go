package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"thinkle/internal/app/game"
	"thinkle/internal/app/user"
)

func sampleSession() *game.GameSession {
	return &game.GameSession{
		RemainingLives: 9,
		GameStatus:     game.StatusInProgress,
		Guesses: game.GuessHistory{
			{GuessedWord: "CRANE", CorrectPositions: []int{0, 4}, MissedPositions: []int{2}, AIResponse: "Close!"},
		},
		AllHintTypes: []game.HintType{{Type: "CATEGORY", DisplayName: "Category"}},
	}
}

func TestBridgeWritesNothingBeforeLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	_ = store.Set(ctx, "tab", KeyGameSession, []byte(`{"gameStatus":"IN_PROGRESS"}`))

	b := NewBridge(store, "tab")
	b.Persist(ctx, nil, nil, nil)

	if _, err := store.Get(ctx, "tab", KeyGameSession); err != nil {
		t.Fatalf("stored session wiped before load: %v", err)
	}

	b.MarkLoaded()
	b.Persist(ctx, nil, nil, nil)
	if _, err := store.Get(ctx, "tab", KeyGameSession); !errors.Is(err, ErrNotFound) {
		t.Errorf("emptied session still stored: %v", err)
	}
}

func TestBridgeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	b := NewBridge(store, "tab")
	b.MarkLoaded()

	session := sampleSession()
	lives := 9
	board := game.BoardFromSession(session.Guesses)
	b.Persist(ctx, session, &lives, board)

	raw, err := store.Get(ctx, "tab", KeyRemainingLives)
	if err != nil || string(raw) != "9" {
		t.Errorf("remainingLives = %q, %v; want stringified number", raw, err)
	}

	got, gotLives, gotBoard, ok := NewBridge(store, "tab").Restore(ctx)
	if !ok {
		t.Fatal("Restore() ok = false")
	}
	if got.RemainingLives != 9 || len(got.Guesses) != 1 || got.Guesses[0].AIResponse != "Close!" {
		t.Errorf("session = %+v", got)
	}
	if gotLives == nil || *gotLives != 9 {
		t.Errorf("lives = %v", gotLives)
	}
	if len(gotBoard) != 1 || gotBoard[0].GuessedWord != "CRANE" {
		t.Errorf("board = %+v", gotBoard)
	}

	b.Persist(ctx, session, &lives, nil)
	if _, err := store.Get(ctx, "tab", KeyBoardState); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty board still stored: %v", err)
	}

	b.Clear(ctx)
	if _, _, _, ok := b.Restore(ctx); ok {
		t.Error("Restore() after Clear ok = true")
	}
}

func TestBridgeIgnoresMalformedSession(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"undefined", "{", "{}", `"text"`} {
		store := NewMemoryStore(time.Hour)
		_ = store.Set(ctx, "tab", KeyGameSession, []byte(raw))
		_ = store.Set(ctx, "tab", KeyRemainingLives, []byte("3"))

		if _, _, _, ok := NewBridge(store, "tab").Restore(ctx); ok {
			t.Errorf("Restore(%q) ok = true", raw)
		}
	}
}

type refusingBackend struct{ calls int }

func (r *refusingBackend) CreateSession(context.Context, *user.Session) (*game.GameSession, error) {
	r.calls++
	return nil, errors.New("unexpected backend call")
}

func (r *refusingBackend) FetchSession(context.Context, *user.Session) (*game.GameSession, error) {
	r.calls++
	return nil, errors.New("unexpected backend call")
}

func (r *refusingBackend) SubmitGuess(context.Context, *user.Session, string) (*game.GuessOutcome, error) {
	r.calls++
	return nil, errors.New("unexpected backend call")
}

func (r *refusingBackend) GetHint(context.Context, *user.Session, string) (*game.HintOutcome, error) {
	r.calls++
	return nil, errors.New("unexpected backend call")
}

func TestReloadRestoresWithoutBackend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	first := NewBridge(store, "tab")
	first.MarkLoaded()
	lives := 9
	session := sampleSession()
	first.Persist(ctx, session, &lives, game.BoardFromSession(session.Guesses))

	backend := &refusingBackend{}
	ctrl := game.NewController("tab", backend, NewBridge(store, "tab"))
	ctrl.SetAuth(&user.Session{User: user.User{ID: 1}, Token: "t"})

	if !ctrl.Mount(ctx) {
		t.Fatal("Mount() = false")
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times", backend.calls)
	}

	st := ctrl.Snapshot()
	if st.Lives == nil || *st.Lives != 9 || len(st.Board) != 1 || st.Loading {
		t.Errorf("restored state = %+v", st)
	}
}
