// internal/game/session.go
//
// Session is the state machine for one player's games.
// Responsibilities:
//   - Board input: add/delete letters in the current row.
//   - Submission: validate, evaluate, aggregate keyboard statuses, and move
//     Active → Over (won or lost) or on to the next row.
//   - One-time hint per game and cumulative stats across games.
//
// Notes:
//   - Invalid input is a silent no-op so stray keypresses never corrupt state.
//     SubmitGuess is the only operation that reports why it refused.
//   - A Session is not safe for concurrent use.

package game

// Session holds the mutable state of the current game plus cumulative stats.
type Session struct {
	validator Validator

	secret   string
	board    [MaxRows][WordLength]byte
	history  []GuessResult
	row, col int
	over     bool
	outcome  Outcome
	hintUsed bool
	keys     map[byte]LetterStatus
	stats    Stats
}

// NewSession returns a session with no game started. A nil validator accepts
// every complete guess.
func NewSession(v Validator) *Session {
	if v == nil {
		v = AnyWord
	}
	return &Session{validator: v, keys: make(map[byte]LetterStatus)}
}

// Reset starts a new game with secret. Stats are kept. A secret that is not a
// WordLength A–Z word leaves the session without a game, so every input
// operation is a no-op until the next valid Reset.
func (s *Session) Reset(secret string) {
	secret = Normalize(secret)
	if !IsWord(secret) {
		secret = ""
	}
	s.secret = secret
	s.board = [MaxRows][WordLength]byte{}
	s.history = nil
	s.row, s.col = 0, 0
	s.over = false
	s.outcome = Active
	s.hintUsed = false
	s.keys = make(map[byte]LetterStatus)
}

// NewGame resets the session with a secret drawn from src.
func (s *Session) NewGame(src SecretSource) {
	s.Reset(src.PickSecret())
}

// playable reports whether input may change the board.
func (s *Session) playable() bool { return s.secret != "" && !s.over }

// AddLetter writes r at the current position and advances the column.
// Non-letters, a full row, or a finished game make it a no-op.
func (s *Session) AddLetter(r rune) {
	if !s.playable() || s.col >= WordLength {
		return
	}
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return
	}
	s.board[s.row][s.col] = byte(r)
	s.col++
}

// DeleteLetter retracts the column by one.
func (s *Session) DeleteLetter() {
	if s.over || s.col == 0 {
		return
	}
	s.col--
	s.board[s.row][s.col] = 0
}

// SubmitGuess evaluates the current row.
//
// Errors (state unchanged):
//   - ErrGameOver: the game is finished or was never started.
//   - ErrIncompleteGuess: fewer than WordLength letters entered.
//   - ErrInvalidWord: the validator rejected the word.
func (s *Session) SubmitGuess() (GuessResult, error) {
	if !s.playable() {
		return GuessResult{}, ErrGameOver
	}
	if s.col < WordLength {
		return GuessResult{}, ErrIncompleteGuess
	}
	guess := s.CurrentGuess()
	if !s.validator.IsAllowed(guess) {
		return GuessResult{}, ErrInvalidWord
	}

	eval := Evaluate(guess, s.secret)
	for i, st := range eval {
		if cur, ok := s.keys[guess[i]]; !ok || st.Better(cur) {
			s.keys[guess[i]] = st
		}
	}

	res := GuessResult{Row: s.row, Guess: guess, Evaluation: eval}
	switch {
	case eval.Solved():
		s.finish(Won)
	case s.row == MaxRows-1:
		s.finish(Lost)
	default:
		s.row++
		s.col = 0
	}
	res.Outcome = s.outcome
	s.history = append(s.history, res)
	return res, nil
}

// finish moves the game to Over and records the result in the stats.
func (s *Session) finish(o Outcome) {
	s.over = true
	s.outcome = o
	s.stats.GamesPlayed++
	if o != Won {
		s.stats.CurrentStreak = 0
		return
	}
	s.stats.GamesWon++
	s.stats.CurrentStreak++
	if s.stats.CurrentStreak > s.stats.MaxStreak {
		s.stats.MaxStreak = s.stats.CurrentStreak
	}
	s.stats.Distribution[s.row+1]++
}

// UseHint returns the first letter of the secret. The hint is marked used on
// the first call; later calls in the same game return the same letter.
// ok is false when the game is over or no secret is set.
func (s *Session) UseHint() (letter rune, ok bool) {
	if !s.playable() {
		return 0, false
	}
	s.hintUsed = true
	return rune(s.secret[0]), true
}

// ------------------------------ accessors ----------------------------------

func (s *Session) Row() int { return s.row }
func (s *Session) Col() int { return s.col }
func (s *Session) Over() bool { return s.over }
func (s *Session) Outcome() Outcome { return s.outcome }
func (s *Session) HintUsed() bool { return s.hintUsed }
func (s *Session) Started() bool { return s.secret != "" }
func (s *Session) Stats() Stats { return s.stats }
func (s *Session) Secret() string { return s.secret }
func (s *Session) History() []GuessResult {
	return append([]GuessResult(nil), s.history...)
}

// CurrentGuess returns the letters entered in the current row.
func (s *Session) CurrentGuess() string {
	return string(s.board[s.row][:s.col])
}

// KeyStatuses returns a copy of the best status seen per letter this game.
func (s *Session) KeyStatuses() map[rune]LetterStatus {
	out := make(map[rune]LetterStatus, len(s.keys))
	for k, v := range s.keys {
		out[rune(k)] = v
	}
	return out
}

// Board returns the letters of every row; unused cells are empty strings.
func (s *Session) Board() [MaxRows]string {
	var out [MaxRows]string
	for i := range s.board {
		n := 0
		for n < WordLength && s.board[i][n] != 0 {
			n++
		}
		out[i] = string(s.board[i][:n])
	}
	return out
}
