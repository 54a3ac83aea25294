// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - LetterStatus: per-letter result of a guess (correct/present/absent).
//   - Evaluation: ordered statuses for one submitted guess.
//   - Outcome: coarse state of a game (active/won/lost).
//   - Stats: cumulative counters carried across games of one session.
//   - Validator / SecretSource: collaborators supplied by the caller.

package game

import (
	"errors"
	"fmt"
)

const (
	// WordLength is the number of letters in every secret and guess.
	WordLength = 5
	// MaxRows is the number of guesses a player gets per game.
	MaxRows = 6
)

// Recoverable submission errors. None of them changes session state.
var (
	ErrIncompleteGuess = errors.New("incomplete guess")
	ErrInvalidWord     = errors.New("invalid word")
	ErrGameOver        = errors.New("game over")
)

// LetterStatus is the evaluation of one letter of a guess.
// Values are ordered by priority: Correct > Present > Absent.
type LetterStatus int

const (
	Absent LetterStatus = iota
	Present
	Correct
)

// Better reports whether s has strictly higher priority than other.
func (s LetterStatus) Better(other LetterStatus) bool { return s > other }

func (s LetterStatus) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("LetterStatus(%d)", int(s))
}

// MarshalText encodes the status as its lowercase name.
func (s LetterStatus) MarshalText() ([]byte, error) {
	switch s {
	case Absent, Present, Correct:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("game: unknown letter status %d", int(s))
}

// UnmarshalText decodes a lowercase status name.
func (s *LetterStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "absent":
		*s = Absent
	case "present":
		*s = Present
	case "correct":
		*s = Correct
	default:
		return fmt.Errorf("game: unknown letter status %q", string(b))
	}
	return nil
}

// Evaluation holds one LetterStatus per position of a guess.
type Evaluation []LetterStatus

// Solved reports whether every position is Correct.
func (e Evaluation) Solved() bool {
	if len(e) == 0 {
		return false
	}
	for _, s := range e {
		if s != Correct {
			return false
		}
	}
	return true
}

// Outcome is the coarse state of the current game.
type Outcome int

const (
	Active Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText encodes the outcome as its lowercase name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// GuessResult is returned by a successful SubmitGuess.
type GuessResult struct {
	Row        int        `json:"row"`
	Guess      string     `json:"guess"`
	Evaluation Evaluation `json:"marks"`
	Outcome    Outcome    `json:"outcome"`
}

// Stats are cumulative counters for every game played in a session.
type Stats struct {
	GamesPlayed   int              `json:"gamesPlayed"`
	GamesWon      int              `json:"gamesWon"`
	CurrentStreak int              `json:"currentStreak"`
	MaxStreak     int              `json:"maxStreak"`
	Distribution  [MaxRows + 1]int `json:"distribution"` // wins by number of guesses; index 0 unused
}

// Validator decides whether an assembled guess may be submitted.
type Validator interface {
	IsAllowed(word string) bool
}

// SecretSource picks the secret word for a new game.
type SecretSource interface {
	PickSecret() string
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(word string) bool

func (f ValidatorFunc) IsAllowed(word string) bool { return f(word) }

// AnyWord accepts every complete guess.
var AnyWord Validator = ValidatorFunc(func(string) bool { return true })
