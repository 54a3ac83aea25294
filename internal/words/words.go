// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or the embedded defaults
//     in the assets package; FromLists accepts lists read elsewhere (wordstore).
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Act as the game's collaborators: IsAllowed (game.Validator) and
//     PickSecret (game.SecretSource).
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 uppercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load order:
//  1. AnswersFile and AllowedFile both set: one list from each.
//  2. Only AllowedFile set: that file serves as both lists.
//  3. Neither set: embedded assets.
//
// Constraints:
//   - Words must be 5 alphabetic letters; anything else is dropped.
//   - Lists are normalized to uppercase.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"

	"github.com/ishirchatnani/wordle-clone/assets"
	"github.com/ishirchatnani/wordle-clone/internal/game"
)

// ErrNoAnswers is returned when loading produced an empty answer list.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Fallback is picked when a Lexicon somehow has no answers.
const Fallback = "CRANE"

// Source selects where word lists come from.
type Source struct {
	AnswersFile string
	AllowedFile string
	// Strict enforces the allowed list. When false any 5-letter alphabetic
	// guess is accepted.
	Strict bool
}

// Lexicon holds the loaded word lists. It is read-only after construction
// and safe for concurrent use.
type Lexicon struct {
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{}
	strict     bool
}

var (
	_ game.Validator    = (*Lexicon)(nil)
	_ game.SecretSource = (*Lexicon)(nil)
)

// Load builds a Lexicon from src.
func Load(src Source) (*Lexicon, error) {
	var ansList, allowList []string
	var err error

	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}

	case src.AllowedFile != "":
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("words: embedded allowed: %w", err)
		}
	}

	return FromLists(ansList, allowList, src.Strict)
}

// FromLists builds a Lexicon from in-memory lists. Invalid entries are
// dropped and duplicates collapsed; answers keep their first-seen order.
func FromLists(answers, allowed []string, strict bool) (*Lexicon, error) {
	lx := &Lexicon{
		answersSet: make(map[string]struct{}, len(answers)),
		allowedSet: make(map[string]struct{}, len(answers)+len(allowed)),
		strict:     strict,
	}
	for _, w := range normalize(answers) {
		if _, dup := lx.answersSet[w]; dup {
			continue
		}
		lx.answersSet[w] = struct{}{}
		lx.allowedSet[w] = struct{}{}
		lx.answers = append(lx.answers, w)
	}
	for _, w := range normalize(allowed) {
		lx.allowedSet[w] = struct{}{}
	}
	if len(lx.answers) == 0 {
		return nil, ErrNoAnswers
	}
	return lx, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return out, nil
}

// normalize uppercases and trims each entry, keeping only valid words.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, line := range list {
		if w := game.Normalize(line); game.IsWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsAllowed reports whether w may be submitted as a guess.
func (lx *Lexicon) IsAllowed(w string) bool {
	w = game.Normalize(w)
	if !lx.strict {
		return game.IsWord(w)
	}
	_, ok := lx.allowedSet[w]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (lx *Lexicon) IsAnswer(w string) bool {
	_, ok := lx.answersSet[game.Normalize(w)]
	return ok
}

// PickSecret returns a cryptographically random answer.
func (lx *Lexicon) PickSecret() string {
	if len(lx.answers) == 0 {
		return Fallback
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(lx.answers))))
	if err != nil {
		return lx.answers[0]
	}
	return lx.answers[n.Int64()]
}

// Answers returns a copy of the answer list.
func (lx *Lexicon) Answers() []string {
	return append([]string(nil), lx.answers...)
}

// Allowed returns the allowed guesses (answers included), sorted.
func (lx *Lexicon) Allowed() []string {
	out := make([]string, 0, len(lx.allowedSet))
	for w := range lx.allowedSet {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Strict reports whether guesses are checked against the allowed list.
func (lx *Lexicon) Strict() bool { return lx.strict }

// Stats returns counts of loaded words: (answers, allowed).
func (lx *Lexicon) Stats() (answersCount int, allowedCount int) {
	return len(lx.answers), len(lx.allowedSet)
}

// String summarizes the lexicon for logs.
func (lx *Lexicon) String() string {
	a, g := lx.Stats()
	return fmt.Sprintf("answers=%d allowed=%d strict=%t", a, g, lx.strict)
}

