package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thinkle/internal/app/game"
	"thinkle/internal/app/user"
)

func mustRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func sampleState() game.State {
	lives := 9
	return game.State{
		Session: &game.GameSession{
			RemainingLives: 9,
			GameStatus:     game.StatusInProgress,
			HintsInfo: game.HintsInfo{NumberOfHintsUsed: 1, UsedHintDetails: []game.HintDetails{
				{HintType: "CATEGORY", HintText: "Animals"},
			}},
			AllHintTypes: []game.HintType{
				{Type: "CATEGORY", DisplayName: "Category"},
				{Type: "FIRST_LETTER", DisplayName: "First letter"},
			},
		},
		Lives: &lives,
		Board: []game.BoardGuess{{
			GuessedWord:      "CRANE",
			CorrectPositions: []int{0, 4},
			MissedPositions:  []int{2},
			AIResponse:       "Close!",
		}},
	}
}

func TestNewGamePage(t *testing.T) {
	page := NewGamePage(sampleState(), user.User{Username: "ada"}, 10)

	if page.Lives.Remaining != 9 || page.Lives.Total != 10 || len(page.Lives.Hearts) != 10 || page.Lives.Hearts[9] {
		t.Errorf("Lives = %+v", page.Lives)
	}
	if page.StatusText != "IN PROGRESS" || page.Over {
		t.Errorf("status = %q over = %v", page.StatusText, page.Over)
	}
	if len(page.Rows) != game.MaxRows {
		t.Errorf("len(Rows) = %d", len(page.Rows))
	}
	if !page.Hints[0].Used || page.Hints[1].Used {
		t.Errorf("Hints = %+v", page.Hints)
	}
	if page.UsedHints[0].DisplayName != "Category" {
		t.Errorf("UsedHints = %+v", page.UsedHints)
	}
	if g := page.Guesses[0]; g.Correct != "0, 4" || g.Missed != "2" {
		t.Errorf("Guesses = %+v", page.Guesses)
	}
}

func TestNewLivesClamps(t *testing.T) {
	if l := NewLives(12, 10); l.Remaining != 10 {
		t.Errorf("NewLives(12, 10).Remaining = %d", l.Remaining)
	}
	if l := NewLives(-1, 10); l.Remaining != 0 || l.Hearts[0] {
		t.Errorf("NewLives(-1, 10) = %+v", l)
	}
}

func TestRenderGamePage(t *testing.T) {
	r := mustRenderer(t)
	rec := httptest.NewRecorder()

	r.Page(rec, http.StatusOK, PageGame, NewGamePage(sampleState(), user.User{Username: "ada"}, 10))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"9/10", "IN PROGRESS", "status-in-progress", "cell-correct", "Close!", `value="FIRST_LETTER"`, `pattern="[A-Za-z]{5}"`} {
		if !strings.Contains(body, want) {
			t.Errorf("game page missing %q", want)
		}
	}
}

func TestRenderBoardFragmentPending(t *testing.T) {
	r := mustRenderer(t)
	st := sampleState()
	st.Board = append(st.Board, game.PendingGuess("SLATE"))

	var buf bytes.Buffer
	if err := r.Fragment(&buf, FragmentBoard, NewGamePage(st, user.User{}, 10)); err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), `<div id="board"`) {
		t.Errorf("fragment does not start with the board: %.60q", out)
	}
	if !strings.Contains(out, "Submitting...") || !strings.Contains(out, "cell-submitting") {
		t.Error("pending guess not shown")
	}
	if strings.Contains(out, "<html") {
		t.Error("fragment contains the layout")
	}
}

func TestRenderLoginErrors(t *testing.T) {
	r := mustRenderer(t)
	rec := httptest.NewRecorder()

	r.Page(rec, http.StatusUnprocessableEntity, PageLogin, LoginPage{
		SignUp: true,
		Email:  "ada@",
		Errors: map[string]string{"email": "Please enter a valid email address"},
	})

	body := rec.Body.String()
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(body, "Please enter a valid email address") {
		t.Errorf("status = %d body = %s", rec.Code, body)
	}
	if !strings.Contains(body, `action="/auth/register"`) || !strings.Contains(body, `name="confirmPassword"`) {
		t.Error("sign-up form not rendered")
	}
}

func TestStaticServesAssets(t *testing.T) {
	rec := httptest.NewRecorder()
	http.StripPrefix("/static/", Static()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "WebSocket") {
		t.Errorf("status = %d", rec.Code)
	}
}
