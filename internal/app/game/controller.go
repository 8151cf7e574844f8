/*
Package game holds the client-side state of a Thinkle game.

This file defines the Controller, the single owner of one tab's session, lives and
board. It calls the backend outside of its lock, so calls made concurrently (a poll and a
guess, for instance) are not serialised: the last response to land replaces the session.
*/
package game

import (
	"context"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"thinkle/internal/app/user"
	"thinkle/internal/pkg/errs"
	"thinkle/internal/pkg/logx"
)

// Backend is the part of the API gateway used by the Controller.
type Backend interface {
	CreateSession(ctx context.Context, auth *user.Session) (*GameSession, error)
	FetchSession(ctx context.Context, auth *user.Session) (*GameSession, error)
	SubmitGuess(ctx context.Context, auth *user.Session, word string) (*GuessOutcome, error)
	GetHint(ctx context.Context, auth *user.Session, hintType string) (*HintOutcome, error)
}

// Persister mirrors the controller state into per-tab storage.
// Persist is a no-op until MarkLoaded has been called.
type Persister interface {
	Persist(ctx context.Context, session *GameSession, lives *int, board []BoardGuess)
	Restore(ctx context.Context) (session *GameSession, lives *int, board []BoardGuess, ok bool)
	Clear(ctx context.Context)
	MarkLoaded()
}

// View is the page a tab is currently showing.
type View string

const (
	ViewHome View = "home"
	ViewGame View = "game"
)

// State is a copy of the controller state handed to the views.
type State struct {
	Session *GameSession
	Lives   *int
	Board   []BoardGuess
	Error   string
	View    View
	Loading bool
	Checked bool
}

// Pending reports whether a guess is waiting for the backend.
func (s State) Pending() bool { return lastSubmitting(s.Board) }

// Controller owns the game state of one browser tab.
type Controller struct {
	tabID   string
	backend Backend
	store   Persister

	mu      sync.Mutex
	auth    *user.Session
	session *GameSession
	lives   *int
	board   []BoardGuess
	errMsg  string
	view    View
	loading bool
	checked bool

	// persistMu keeps snapshot and write in the same order across goroutines.
	persistMu sync.Mutex

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan struct{}

	logger zerolog.Logger
}

// NewController builds the controller of tab tabID.
func NewController(tabID string, backend Backend, store Persister) *Controller {
	return &Controller{
		tabID:   tabID,
		backend: backend,
		store:   store,
		view:    ViewHome,
		subs:    make(map[int]chan struct{}),
		logger:  logx.Component("GameController").With().Str("tab_id", tabID).Logger(),
	}
}

// TabID returns the identifier of the tab owning this controller.
func (c *Controller) TabID() string { return c.tabID }

// SetAuth installs the authentication state used for every backend call.
// A nil session signs the tab out.
func (c *Controller) SetAuth(auth *user.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = auth
}

// Auth returns the authentication state of the tab.
func (c *Controller) Auth() *user.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Session: c.session.Clone(),
		Board:   CloneBoard(c.board),
		Error:   c.errMsg,
		View:    c.view,
		Loading: c.loading,
		Checked: c.checked,
	}
	if c.lives != nil {
		lives := *c.lives
		st.Lives = &lives
	}
	return st
}

// Error returns the message currently surfaced to the player.
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// DismissError clears the surfaced error.
func (c *Controller) DismissError() {
	c.mu.Lock()
	changed := c.errMsg != ""
	c.errMsg = ""
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// Pending reports whether a guess is waiting for the backend.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lastSubmitting(c.board)
}

// InProgress reports whether a session is loaded and still accepts guesses.
func (c *Controller) InProgress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.GameStatus == StatusInProgress
}

// CreateSession starts a new game and switches the tab to the game view.
// On failure the state is left unchanged and the error is surfaced and returned.
func (c *Controller) CreateSession(ctx context.Context) error {
	auth, err := c.requireAuth()
	if err != nil {
		return err
	}

	c.setLoading(true)
	defer c.setLoading(false)

	session, err := c.backend.CreateSession(ctx, auth)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to create game session")
		c.surface(err)
		return err
	}

	c.mu.Lock()
	c.replaceLocked(session)
	c.checked = true
	c.view = ViewGame
	c.errMsg = ""
	c.mu.Unlock()

	c.logger.Info().Str("status", string(session.GameStatus)).Msg("Game session created")
	c.store.MarkLoaded()
	c.persist(ctx)
	c.notify()
	return nil
}

// FetchSession replaces the local state with the backend snapshot and returns a copy
// of it. It returns nil on failure; the failure is only surfaced once the initial
// session check has completed, so background polls stay quiet during the first load.
func (c *Controller) FetchSession(ctx context.Context) *GameSession {
	auth, ok := c.authSession()
	if !ok {
		return nil
	}

	session, err := c.backend.FetchSession(ctx, auth)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to fetch game session")
		c.mu.Lock()
		checked := c.checked
		if checked {
			c.errMsg = errs.UserMessage(err)
		}
		c.mu.Unlock()
		if checked {
			c.notify()
		}
		return nil
	}

	c.mu.Lock()
	c.replaceLocked(session)
	out := c.session.Clone()
	c.mu.Unlock()

	c.persist(ctx)
	c.notify()
	return out
}

// SubmitGuess scores word. An optimistic row is shown at once; it is replaced by the
// confirmed row on success and removed on failure, in which case the error is surfaced
// and returned. While another guess is waiting for the backend it returns
// errs.ErrGuessInFlight and leaves the state untouched.
func (c *Controller) SubmitGuess(ctx context.Context, word string) error {
	word = strings.ToUpper(strings.TrimSpace(word))
	if verr := ValidateGuess(word); verr != nil {
		return verr
	}

	auth, err := c.requireAuth()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return c.refuse(errs.ErrNoActiveSession)
	}
	if c.session.GameStatus.Terminal() {
		c.mu.Unlock()
		return c.refuse(errs.ErrGameOver)
	}
	if lastSubmitting(c.board) {
		c.mu.Unlock()
		return errs.ErrGuessInFlight
	}
	c.board = append(c.board, PendingGuess(word))
	c.mu.Unlock()
	c.notify()

	outcome, err := c.backend.SubmitGuess(ctx, auth, word)

	c.mu.Lock()
	if err != nil {
		if lastSubmitting(c.board) {
			c.board = c.board[:len(c.board)-1]
		}
		c.errMsg = errs.UserMessage(err)
		c.mu.Unlock()

		c.logger.Warn().Err(err).Str("guess", word).Msg("Guess rejected")
		c.persist(ctx)
		c.notify()
		return err
	}

	confirmed := NewBoardGuess(outcome.Record)
	applied := c.appliedLocked(outcome.Record)
	switch {
	case lastSubmitting(c.board):
		c.board[len(c.board)-1] = confirmed
	case applied:
		c.board[len(c.board)-1] = confirmed
	default:
		c.board = append(c.board, confirmed)
	}
	if c.session != nil && !applied {
		c.session.Guesses = append(c.session.Guesses, outcome.Record.clone())
		if outcome.RemainingLives != nil {
			c.session.RemainingLives = *outcome.RemainingLives
		}
		if outcome.GameStatus != nil {
			c.session.GameStatus = *outcome.GameStatus
		}
	}
	if outcome.RemainingLives != nil {
		lives := *outcome.RemainingLives
		c.lives = &lives
	}
	c.mu.Unlock()

	c.logger.Debug().Str("guess", word).Msg("Guess scored")
	c.persist(ctx)
	c.notify()
	return nil
}

// GetHint reveals a hint of hintType. A hint already revealed for the same type is
// replaced, otherwise it is appended and counted. On failure the error is surfaced and
// returned.
func (c *Controller) GetHint(ctx context.Context, hintType string) error {
	hintType = strings.TrimSpace(hintType)

	auth, err := c.requireAuth()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return c.refuse(errs.ErrNoActiveSession)
	}
	if _, known := c.session.HintType(hintType); !known {
		c.mu.Unlock()
		return c.refuse(errs.ErrUnknownHintType, hintType)
	}
	c.mu.Unlock()

	outcome, err := c.backend.GetHint(ctx, auth, hintType)
	if err != nil {
		c.logger.Warn().Err(err).Str("hint_type", hintType).Msg("Hint request failed")
		c.surface(err)
		return err
	}

	c.mu.Lock()
	if outcome.RemainingLives != nil {
		lives := *outcome.RemainingLives
		c.lives = &lives
	}
	if c.session != nil {
		if outcome.RemainingLives != nil {
			c.session.RemainingLives = *outcome.RemainingLives
		}
		c.session.HintsInfo = MergeHint(c.session.HintsInfo, HintDetails{HintType: hintType, HintText: outcome.HintText})
	}
	c.mu.Unlock()

	c.persist(ctx)
	c.notify()
	return nil
}

// ResetToHome drops the game state and its persisted copy and shows the home view.
func (c *Controller) ResetToHome(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.lives = nil
	c.board = nil
	c.errMsg = ""
	c.view = ViewHome
	c.checked = true
	c.mu.Unlock()

	c.persistMu.Lock()
	c.store.Clear(ctx)
	c.persistMu.Unlock()

	c.notify()
}

// Mount prepares the game view. On the first call the state is restored from storage
// without contacting the backend; when nothing valid is stored the session is fetched.
// It reports whether a session is available to show.
func (c *Controller) Mount(ctx context.Context) bool {
	c.mu.Lock()
	if c.checked {
		ok := c.session != nil
		if ok {
			c.view = ViewGame
		}
		c.mu.Unlock()
		return ok
	}
	c.mu.Unlock()

	if c.Restore(ctx) {
		return true
	}

	c.setLoading(true)
	session := c.FetchSession(ctx)
	c.setLoading(false)

	c.mu.Lock()
	c.checked = true
	if session != nil {
		c.view = ViewGame
	}
	c.mu.Unlock()

	c.store.MarkLoaded()
	c.persist(ctx)
	return session != nil
}

// Restore loads the persisted state of the tab. It reports false, leaving the state
// untouched, when no valid session is stored.
func (c *Controller) Restore(ctx context.Context) bool {
	session, lives, board, ok := c.store.Restore(ctx)
	if !ok {
		return false
	}

	if lives == nil {
		l := session.RemainingLives
		lives = &l
	}
	if board == nil {
		board = BoardFromSession(session.Guesses)
	}

	c.mu.Lock()
	c.session = session
	c.lives = lives
	c.board = Confirmed(board)
	c.checked = true
	c.view = ViewGame
	c.mu.Unlock()

	c.store.MarkLoaded()
	c.logger.Debug().Msg("Game state restored from storage")
	c.notify()
	return true
}

// MarkChecked ends the initial load phase without a session, as when a tab opens on
// the home page with nothing stored.
func (c *Controller) MarkChecked() {
	c.mu.Lock()
	c.checked = true
	c.mu.Unlock()
	c.store.MarkLoaded()
}

// Subscribe returns a channel signalled after every state change, and a function that
// cancels the subscription.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	c.subMu.Unlock()

	return ch, func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) notify() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// replaceLocked swaps in session and the lives and board derived from it.
func (c *Controller) replaceLocked(session *GameSession) {
	c.session = session
	lives := session.RemainingLives
	c.lives = &lives
	c.board = BoardFromSession(session.Guesses)
}

// appliedLocked reports whether a refresh that landed while rec was in flight already
// brought it in as the last confirmed guess.
func (c *Controller) appliedLocked(rec GuessRecord) bool {
	if c.session == nil || len(c.session.Guesses) == 0 || len(c.board) == 0 {
		return false
	}
	last := c.board[len(c.board)-1]
	stored := c.session.Guesses[len(c.session.Guesses)-1]
	return !last.IsSubmitting &&
		strings.EqualFold(last.GuessedWord, rec.GuessedWord) &&
		strings.EqualFold(stored.GuessedWord, rec.GuessedWord)
}

// persist writes the state without the optimistic entry.
func (c *Controller) persist(ctx context.Context) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	session := c.session.Clone()
	var lives *int
	if c.lives != nil {
		l := *c.lives
		lives = &l
	}
	board := Confirmed(CloneBoard(c.board))
	c.mu.Unlock()

	c.store.Persist(ctx, session, lives, board)
}

func (c *Controller) authSession() (*user.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.auth.Authenticated() {
		return nil, false
	}
	return c.auth, true
}

func (c *Controller) requireAuth() (*user.Session, error) {
	auth, ok := c.authSession()
	if !ok {
		c.surface(errs.ErrNotAuthenticated)
		return nil, errs.ErrNotAuthenticated
	}
	return auth, nil
}

// refuse surfaces and returns the StateError for code.
func (c *Controller) refuse(code int, details ...any) error {
	err := &errs.StateError{Message: errs.NewError(code, details...).Message}
	c.surface(err)
	return err
}

func (c *Controller) surface(err error) {
	c.mu.Lock()
	c.errMsg = errs.UserMessage(err)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

// MergeHint stores detail in info. An entry of the same type is replaced in place;
// a new type is appended and counted.
func MergeHint(info HintsInfo, detail HintDetails) HintsInfo {
	details := slices.Clone(info.UsedHintDetails)
	_, idx, found := lo.FindIndexOf(details, func(d HintDetails) bool { return d.HintType == detail.HintType })
	if found {
		details[idx] = detail
	} else {
		details = append(details, detail)
		info.NumberOfHintsUsed++
	}
	info.UsedHintDetails = lo.UniqBy(details, func(d HintDetails) string { return d.HintType })
	return info
}

// ValidateGuess checks that word is made of exactly WordLength letters.
func ValidateGuess(word string) *errs.ValidationError {
	letters := []rune(word)
	valid := len(letters) == WordLength
	for _, r := range letters {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			valid = false
		}
	}
	if valid {
		return nil
	}
	return &errs.ValidationError{Fields: map[string]string{
		"guess": errs.NewError(errs.ErrInvalidGuess, WordLength).Message,
	}}
}
