package game

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestBoardFromRawNonArray(t *testing.T) {
	inputs := []string{"", "null", "{}", "42", `"CRANE"`, "true", "{not json"}
	for _, in := range inputs {
		board := BoardFromRaw(json.RawMessage(in))
		if board == nil || len(board) != 0 {
			t.Errorf("BoardFromRaw(%q) = %#v, want empty board", in, board)
		}
	}
}

func TestBoardFromRawDefaultsMissingFields(t *testing.T) {
	raw := json.RawMessage(`[
		{},
		{"guessedWord": "CRANE"},
		{"guessedWord": 7, "correctPositions": "0,1", "missedPositions": [1, "x", 3], "aiResponse": null},
		null
	]`)

	board := BoardFromRaw(raw)
	if len(board) != 4 {
		t.Fatalf("len(board) = %d, want 4", len(board))
	}

	empty := BoardGuess{CorrectPositions: []int{}, MissedPositions: []int{}}
	if !reflect.DeepEqual(board[0], empty) {
		t.Errorf("board[0] = %#v, want %#v", board[0], empty)
	}
	if board[1].GuessedWord != "CRANE" || len(board[1].CorrectPositions) != 0 || board[1].AIResponse != "" {
		t.Errorf("board[1] = %#v", board[1])
	}
	if board[2].GuessedWord != "" || len(board[2].CorrectPositions) != 0 {
		t.Errorf("board[2] = %#v", board[2])
	}
	if !reflect.DeepEqual(board[2].MissedPositions, []int{1, 3}) {
		t.Errorf("board[2].MissedPositions = %v, want [1 3]", board[2].MissedPositions)
	}
	if !reflect.DeepEqual(board[3], empty) {
		t.Errorf("board[3] = %#v, want empty entry", board[3])
	}
	for i, g := range board {
		if g.IsSubmitting {
			t.Errorf("board[%d] is marked submitting", i)
		}
	}
}

func TestBoardFromSessionKeepsOrder(t *testing.T) {
	history := GuessHistory{
		{GuessedWord: "SLATE", CorrectPositions: []int{4}},
		{GuessedWord: "CRANE", CorrectPositions: []int{0, 4}, MissedPositions: []int{2}, AIResponse: "Close!"},
	}
	board := BoardFromSession(history)
	if len(board) != 2 || board[0].GuessedWord != "SLATE" || board[1].GuessedWord != "CRANE" {
		t.Fatalf("board = %#v", board)
	}
	if board[1].AIResponse != "Close!" || !reflect.DeepEqual(board[1].MissedPositions, []int{2}) {
		t.Errorf("board[1] = %#v", board[1])
	}

	board[1].CorrectPositions[0] = 3
	if history[1].CorrectPositions[0] != 0 {
		t.Error("projection shares position slices with the history")
	}
}

func TestGameSessionDecodesHintDetailsFallback(t *testing.T) {
	raw := []byte(`{
		"remainingLives": 8,
		"gameStatus": "IN_PROGRESS",
		"hintsInfo": {"numberOfHintsUsed": 1, "hintDetails": [{"hintType": "FIRST_LETTER", "hintText": "C"}]},
		"guesses": "oops",
		"allHintTypes": [{"type": "FIRST_LETTER", "displayName": "First letter"}]
	}`)

	var s GameSession
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.RemainingLives != 8 || s.GameStatus != StatusInProgress {
		t.Errorf("session = %+v", s)
	}
	if len(s.Guesses) != 0 {
		t.Errorf("Guesses = %v, want empty", s.Guesses)
	}
	if d, ok := s.HintsInfo.Detail("FIRST_LETTER"); !ok || d.HintText != "C" {
		t.Errorf("HintsInfo = %+v", s.HintsInfo)
	}
	if ht, ok := s.HintType("FIRST_LETTER"); !ok || ht.DisplayName != "First letter" {
		t.Errorf("HintType() = %+v, %v", ht, ok)
	}
}

func TestGuessOutcomeOptionalFields(t *testing.T) {
	var o GuessOutcome
	if err := json.Unmarshal([]byte(`{"guessedWord":"CRANE","correctPositions":[0,4],"missedPositions":[2],"aiResponse":"Close!","remainingLives":9,"gameStatus":"IN_PROGRESS"}`), &o); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if o.Record.GuessedWord != "CRANE" || o.RemainingLives == nil || *o.RemainingLives != 9 {
		t.Errorf("outcome = %+v", o)
	}
	if o.GameStatus == nil || *o.GameStatus != StatusInProgress {
		t.Errorf("GameStatus = %v", o.GameStatus)
	}

	var bare GuessOutcome
	if err := json.Unmarshal([]byte(`{"guessedWord":"CRANE"}`), &bare); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if bare.RemainingLives != nil || bare.GameStatus != nil {
		t.Errorf("bare outcome = %+v, want no lives or status", bare)
	}
}
