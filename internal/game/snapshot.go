package game

// Snapshot is a read-only, JSON-friendly view of a session for adapters.
// Secret is only filled once the game is over.
type Snapshot struct {
	Started  bool                    `json:"started"`
	Row      int                     `json:"row"`
	Col      int                     `json:"col"`
	Over     bool                    `json:"over"`
	Outcome  Outcome                 `json:"outcome"`
	HintUsed bool                    `json:"hintUsed"`
	Board    [MaxRows]string         `json:"board"`
	Guesses  []GuessResult           `json:"guesses"`
	Keys     map[string]LetterStatus `json:"keys"`
	Stats    Stats                   `json:"stats"`
	Secret   string                  `json:"secret,omitempty"`
}

// Snapshot captures the current state of s.
func (s *Session) Snapshot() Snapshot {
	keys := make(map[string]LetterStatus, len(s.keys))
	for k, v := range s.keys {
		keys[string(rune(k))] = v
	}
	snap := Snapshot{
		Started:  s.Started(),
		Row:      s.row,
		Col:      s.col,
		Over:     s.over,
		Outcome:  s.outcome,
		HintUsed: s.hintUsed,
		Board:    s.Board(),
		Guesses:  s.History(),
		Keys:     keys,
		Stats:    s.stats,
	}
	if snap.Guesses == nil {
		snap.Guesses = []GuessResult{}
	}
	if s.over {
		snap.Secret = s.secret
	}
	return snap
}
