package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"thinkle/internal/app/game"
	"thinkle/internal/pkg/logx"
)

// Bridge mirrors the game state of one tab into the tab scope of a Store.
// Storage failures are logged, never returned: a tab without storage keeps playing.
type Bridge struct {
	store  Store
	scope  string
	loaded atomic.Bool
	logger zerolog.Logger
}

// NewBridge returns the bridge of the tab identified by tabID.
func NewBridge(store Store, tabID string) *Bridge {
	return &Bridge{
		store:  store,
		scope:  tabID,
		logger: logx.Component("StorageBridge").With().Str("tab_id", tabID).Logger(),
	}
}

// MarkLoaded ends the initial load phase. Persist writes nothing before it, so the
// stored state survives until it has been restored.
func (b *Bridge) MarkLoaded() { b.loaded.Store(true) }

// Loaded reports whether the initial load phase has ended.
func (b *Bridge) Loaded() bool { return b.loaded.Load() }

// Persist stores each non-empty value under its key and deletes the keys of empty ones.
func (b *Bridge) Persist(ctx context.Context, session *game.GameSession, lives *int, board []game.BoardGuess) {
	if !b.loaded.Load() {
		return
	}

	if session == nil {
		b.delete(ctx, KeyGameSession)
	} else {
		b.setJSON(ctx, KeyGameSession, session)
	}

	if lives == nil {
		b.delete(ctx, KeyRemainingLives)
	} else {
		b.set(ctx, KeyRemainingLives, []byte(strconv.Itoa(*lives)))
	}

	if len(board) == 0 {
		b.delete(ctx, KeyBoardState)
	} else {
		b.setJSON(ctx, KeyBoardState, board)
	}
}

// Restore reads the stored state. ok is false when the session key is missing or does
// not decode; lives and board are nil when their keys are missing or invalid.
func (b *Bridge) Restore(ctx context.Context) (*game.GameSession, *int, []game.BoardGuess, bool) {
	raw, ok := b.get(ctx, KeyGameSession)
	if !ok {
		return nil, nil, nil, false
	}

	var session game.GameSession
	if err := json.Unmarshal(raw, &session); err != nil || session.GameStatus == "" {
		b.logger.Warn().Err(err).Msg("Stored game session is malformed, ignoring it")
		return nil, nil, nil, false
	}

	var lives *int
	if raw, ok := b.get(ctx, KeyRemainingLives); ok {
		if n, err := strconv.Atoi(string(raw)); err == nil {
			lives = &n
		}
	}

	var board []game.BoardGuess
	if raw, ok := b.get(ctx, KeyBoardState); ok {
		if err := json.Unmarshal(raw, &board); err != nil {
			board = nil
		}
	}

	return &session, lives, board, true
}

// Clear deletes every key of the tab.
func (b *Bridge) Clear(ctx context.Context) {
	b.delete(ctx, KeyGameSession, KeyRemainingLives, KeyBoardState)
}

func (b *Bridge) get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := b.store.Get(ctx, b.scope, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			b.logger.Error().Err(err).Str("key", key).Msg("Failed to read tab storage")
		}
		return nil, false
	}
	return raw, true
}

func (b *Bridge) set(ctx context.Context, key string, value []byte) {
	if err := b.store.Set(ctx, b.scope, key, value); err != nil {
		b.logger.Error().Err(err).Str("key", key).Msg("Failed to write tab storage")
	}
}

func (b *Bridge) setJSON(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		b.logger.Error().Err(err).Str("key", key).Msg("Failed to encode tab storage value")
		return
	}
	b.set(ctx, key, raw)
}

func (b *Bridge) delete(ctx context.Context, keys ...string) {
	if err := b.store.Delete(ctx, b.scope, keys...); err != nil {
		b.logger.Error().Err(err).Strs("keys", keys).Msg("Failed to clear tab storage")
	}
}

var _ game.Persister = (*Bridge)(nil)
