package web

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"thinkle/internal/app/game"
	"thinkle/internal/app/user"
)

// LoginPage is the data of the login and registration page.
type LoginPage struct {
	SignUp   bool
	Email    string
	Username string
	Errors   map[string]string
	Message  string
}

// HomePage is the data of the home page.
type HomePage struct {
	User    user.User
	HasGame bool
	Error   string
}

// HintOption is an entry of the hint catalog as offered to the player.
type HintOption struct {
	Type        string
	DisplayName string
	Used        bool
}

// UsedHint is a revealed hint with its display name.
type UsedHint struct {
	DisplayName string
	Text        string
}

// GuessSummary lists the positions scored for one confirmed guess.
type GuessSummary struct {
	Word       string
	Correct    string
	Missed     string
	AIResponse string
}

// LivesView is the heart row of the game page.
type LivesView struct {
	Remaining int
	Total     int
	Hearts    []bool
}

// GamePage is the data of the game page and of its live board fragment.
type GamePage struct {
	User       user.User
	Status     game.GameStatus
	StatusText string
	Lives      LivesView
	Rows       []game.Row
	Hints      []HintOption
	UsedHints  []UsedHint
	Guesses    []GuessSummary
	Error      string
	Pending    bool
	Over       bool
	Won        bool
	WordLength int
}

// NewLives builds the heart row: remaining hearts alive, the rest up to total lost.
func NewLives(remaining, total int) LivesView {
	remaining = max(0, min(remaining, total))
	hearts := make([]bool, total)
	for i := range remaining {
		hearts[i] = true
	}
	return LivesView{Remaining: remaining, Total: total, Hearts: hearts}
}

// NewGamePage projects the controller state of a tab into the game page data.
func NewGamePage(st game.State, u user.User, totalLives int) GamePage {
	page := GamePage{
		User:       u,
		Rows:       game.Grid(st.Board, game.MaxRows, game.MaxCols),
		Error:      st.Error,
		Pending:    st.Pending(),
		WordLength: game.WordLength,
	}

	lives := 0
	if st.Lives != nil {
		lives = *st.Lives
	}
	page.Lives = NewLives(lives, totalLives)

	s := st.Session
	if s == nil {
		return page
	}

	page.Status = s.GameStatus
	page.StatusText = strings.ReplaceAll(string(s.GameStatus), "_", " ")
	page.Over = s.GameStatus.Terminal()
	page.Won = s.GameStatus == game.StatusWon

	page.Hints = lo.Map(s.AllHintTypes, func(ht game.HintType, _ int) HintOption {
		_, used := s.HintsInfo.Detail(ht.Type)
		return HintOption{Type: ht.Type, DisplayName: ht.DisplayName, Used: used}
	})
	page.UsedHints = lo.Map(s.HintsInfo.UsedHintDetails, func(d game.HintDetails, _ int) UsedHint {
		name := d.HintType
		if ht, ok := s.HintType(d.HintType); ok && ht.DisplayName != "" {
			name = ht.DisplayName
		}
		return UsedHint{DisplayName: name, Text: d.HintText}
	})
	page.Guesses = lo.Map(game.Confirmed(st.Board), func(g game.BoardGuess, _ int) GuessSummary {
		return GuessSummary{
			Word:       strings.ToUpper(g.GuessedWord),
			Correct:    positions(g.CorrectPositions),
			Missed:     positions(g.MissedPositions),
			AIResponse: g.AIResponse,
		}
	})
	return page
}

// positions joins letter indices, or returns "None".
func positions(ps []int) string {
	if len(ps) == 0 {
		return "None"
	}
	return strings.Join(lo.Map(ps, func(p int, _ int) string { return strconv.Itoa(p) }), ", ")
}
