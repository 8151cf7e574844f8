package game

import (
	"encoding/json"
	"slices"

	"github.com/samber/lo"
)

// BoardGuess is one row of the board. IsSubmitting marks the optimistic entry of a
// guess that the backend has not confirmed yet; only the last entry may carry it.
type BoardGuess struct {
	GuessedWord      string `json:"guessedWord"`
	CorrectPositions []int  `json:"correctPositions"`
	MissedPositions  []int  `json:"missedPositions"`
	AIResponse       string `json:"aiResponse"`
	IsSubmitting     bool   `json:"isSubmitting,omitempty"`
}

// NewBoardGuess projects a confirmed guess record.
func NewBoardGuess(rec GuessRecord) BoardGuess {
	return BoardGuess{
		GuessedWord:      rec.GuessedWord,
		CorrectPositions: nonNil(rec.CorrectPositions),
		MissedPositions:  nonNil(rec.MissedPositions),
		AIResponse:       rec.AIResponse,
	}
}

// PendingGuess is the optimistic entry shown while word is being scored.
func PendingGuess(word string) BoardGuess {
	return BoardGuess{
		GuessedWord:      word,
		CorrectPositions: []int{},
		MissedPositions:  []int{},
		IsSubmitting:     true,
	}
}

// BoardFromSession projects a guess history into board rows, preserving order.
// A nil history yields an empty, non-nil board.
func BoardFromSession(history GuessHistory) []BoardGuess {
	return lo.Map(history, func(rec GuessRecord, _ int) BoardGuess {
		return NewBoardGuess(rec)
	})
}

// BoardFromRaw decodes a raw guess history and projects it. Input that is absent or
// not a JSON array yields an empty board.
func BoardFromRaw(raw json.RawMessage) []BoardGuess {
	var history GuessHistory
	if len(raw) > 0 {
		_ = history.UnmarshalJSON(raw)
	}
	return BoardFromSession(history)
}

// CloneBoard returns a deep copy of board.
func CloneBoard(board []BoardGuess) []BoardGuess {
	if board == nil {
		return nil
	}
	return lo.Map(board, func(g BoardGuess, _ int) BoardGuess {
		g.CorrectPositions = slices.Clone(g.CorrectPositions)
		g.MissedPositions = slices.Clone(g.MissedPositions)
		return g
	})
}

// Confirmed returns board without its optimistic entry.
func Confirmed(board []BoardGuess) []BoardGuess {
	return lo.Reject(board, func(g BoardGuess, _ int) bool { return g.IsSubmitting })
}

func lastSubmitting(board []BoardGuess) bool {
	return len(board) > 0 && board[len(board)-1].IsSubmitting
}

func nonNil(positions []int) []int {
	if positions == nil {
		return []int{}
	}
	return slices.Clone(positions)
}
