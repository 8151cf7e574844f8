/*
Package game holds the client-side state of a Thinkle game: the session snapshot received
from the backend, the board projected from its guess history, and the per-tab Controller
that reconciles optimistic guesses with backend responses.

This file defines the data model and its tolerant JSON decoding. Backend payloads are
decoded here once; malformed or missing fields default to empty values so that no
consumer has to re-check them.
*/
package game

import (
	"bytes"
	"encoding/json"
	"slices"
)

// WordLength is the number of letters in every guess.
const WordLength = 5

// GameStatus is the lifecycle state of a session as reported by the backend.
type GameStatus string

const (
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusWon        GameStatus = "WON"
	StatusLost       GameStatus = "LOST"
)

// Terminal reports whether no more guesses may be submitted.
func (s GameStatus) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// GameSession is the backend snapshot of one user's current game.
type GameSession struct {
	RemainingLives int          `json:"remainingLives"`
	GameStatus     GameStatus   `json:"gameStatus"`
	HintsInfo      HintsInfo    `json:"hintsInfo"`
	Guesses        GuessHistory `json:"guesses"`
	AllHintTypes   []HintType   `json:"allHintTypes"`
}

// Clone returns a deep copy of s.
func (s *GameSession) Clone() *GameSession {
	if s == nil {
		return nil
	}
	c := *s
	c.HintsInfo.UsedHintDetails = slices.Clone(s.HintsInfo.UsedHintDetails)
	c.AllHintTypes = slices.Clone(s.AllHintTypes)
	c.Guesses = make(GuessHistory, len(s.Guesses))
	for i, g := range s.Guesses {
		c.Guesses[i] = g.clone()
	}
	return &c
}

// HintType looks up a hint type of the session catalog by its identifier.
func (s *GameSession) HintType(name string) (HintType, bool) {
	if s == nil {
		return HintType{}, false
	}
	for _, ht := range s.AllHintTypes {
		if ht.Type == name {
			return ht, true
		}
	}
	return HintType{}, false
}

// GuessRecord is a scored guess as returned by the backend.
type GuessRecord struct {
	GuessedWord      string `json:"guessedWord"`
	CorrectPositions []int  `json:"correctPositions"`
	MissedPositions  []int  `json:"missedPositions"`
	AIResponse       string `json:"aiResponse"`
}

func (g GuessRecord) clone() GuessRecord {
	g.CorrectPositions = slices.Clone(g.CorrectPositions)
	g.MissedPositions = slices.Clone(g.MissedPositions)
	return g
}

// UnmarshalJSON decodes each field independently. A field of the wrong type is left
// empty instead of failing the whole record, and non-integer positions are skipped.
func (g *GuessRecord) UnmarshalJSON(data []byte) error {
	*g = GuessRecord{CorrectPositions: []int{}, MissedPositions: []int{}}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	g.GuessedWord = decodeString(fields["guessedWord"])
	g.AIResponse = decodeString(fields["aiResponse"])
	g.CorrectPositions = decodePositions(fields["correctPositions"])
	g.MissedPositions = decodePositions(fields["missedPositions"])
	return nil
}

// GuessHistory is the ordered guess list of a session, earliest first.
type GuessHistory []GuessRecord

// UnmarshalJSON normalises anything that is not a JSON array to an empty history.
func (h *GuessHistory) UnmarshalJSON(data []byte) error {
	*h = GuessHistory{}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	for _, item := range items {
		var rec GuessRecord
		_ = rec.UnmarshalJSON(item)
		*h = append(*h, rec)
	}
	return nil
}

// HintsInfo tracks the hints revealed so far in a session.
type HintsInfo struct {
	NumberOfHintsUsed int           `json:"numberOfHintsUsed"`
	UsedHintDetails   []HintDetails `json:"usedHintDetails"`
}

// UnmarshalJSON accepts the older hintDetails field name as a fallback.
func (h *HintsInfo) UnmarshalJSON(data []byte) error {
	*h = HintsInfo{UsedHintDetails: []HintDetails{}}

	var wire struct {
		NumberOfHintsUsed json.RawMessage `json:"numberOfHintsUsed"`
		UsedHintDetails   json.RawMessage `json:"usedHintDetails"`
		HintDetails       json.RawMessage `json:"hintDetails"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}

	_ = json.Unmarshal(wire.NumberOfHintsUsed, &h.NumberOfHintsUsed)

	details := wire.UsedHintDetails
	if isNull(details) {
		details = wire.HintDetails
	}
	var list []HintDetails
	if err := json.Unmarshal(details, &list); err == nil {
		h.UsedHintDetails = list
	}
	return nil
}

// Detail returns the stored hint for hintType, if one was revealed.
func (h HintsInfo) Detail(hintType string) (HintDetails, bool) {
	for _, d := range h.UsedHintDetails {
		if d.HintType == hintType {
			return d, true
		}
	}
	return HintDetails{}, false
}

// HintDetails is one revealed hint.
type HintDetails struct {
	HintType string `json:"hintType"`
	HintText string `json:"hintText"`
}

// HintType is an entry of the hint catalog supplied with every session.
type HintType struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
}

// GuessOutcome is the backend response to a submitted guess. RemainingLives and
// GameStatus are nil when the response did not carry them.
type GuessOutcome struct {
	Record         GuessRecord
	RemainingLives *int
	GameStatus     *GameStatus
}

// UnmarshalJSON decodes the scored guess and the optional session updates.
func (o *GuessOutcome) UnmarshalJSON(data []byte) error {
	*o = GuessOutcome{}
	if err := o.Record.UnmarshalJSON(data); err != nil {
		return err
	}

	var extra struct {
		RemainingLives *int        `json:"remainingLives"`
		GameStatus     *GameStatus `json:"gameStatus"`
	}
	if err := json.Unmarshal(data, &extra); err == nil {
		o.RemainingLives = extra.RemainingLives
		if extra.GameStatus != nil && *extra.GameStatus != "" {
			o.GameStatus = extra.GameStatus
		}
	}
	return nil
}

// HintOutcome is the backend response to a hint request.
type HintOutcome struct {
	HintText       string `json:"hintText"`
	RemainingLives *int   `json:"remainingLives"`
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func decodePositions(raw json.RawMessage) []int {
	positions := []int{}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return positions
	}
	for _, item := range items {
		var p int
		if err := json.Unmarshal(item, &p); err == nil {
			positions = append(positions, p)
		}
	}
	return positions
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
