// internal/game/engine.go
//
// Guess evaluation for the Wordle engine.
// Evaluate implements the classic two-pass scoring: exact matches first,
// then present/absent against the letters the exact matches did not use.
// A guessed letter never earns more Correct+Present marks than it has
// occurrences in the secret.

package game

import "strings"

// Evaluate scores guess against secret. Both must be WordLength uppercase
// letters; callers normalize first. A guess whose length differs from the
// secret is scored all Absent.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) secret letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
func Evaluate(guess, secret string) Evaluation {
	n := len(secret)
	res := make(Evaluation, n)
	if len(guess) != n {
		return res
	}

	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = Correct
		} else if j := idx(secret[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = Present
			counts[j]--
		}
	}
	return res
}

// idx maps an uppercase ASCII letter to 0..25, or -1 for anything else.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

// Normalize trims and uppercases w.
func Normalize(w string) string { return strings.ToUpper(strings.TrimSpace(w)) }

// IsWord reports whether w is exactly WordLength uppercase letters A–Z.
func IsWord(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if idx(w[i]) < 0 {
			return false
		}
	}
	return true
}
