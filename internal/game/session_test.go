package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedSecret string

func (f fixedSecret) PickSecret() string { return string(f) }

func typeWord(s *Session, w string) {
	for _, r := range w {
		s.AddLetter(r)
	}
}

func play(t *testing.T, s *Session, w string) GuessResult {
	t.Helper()
	typeWord(s, w)
	res, err := s.SubmitGuess()
	require.NoError(t, err, "submit %s", w)
	return res
}

func newStarted(secret string) *Session {
	s := NewSession(nil)
	s.Reset(secret)
	return s
}

func TestSessionInput(t *testing.T) {
	t.Run("letters advance the column and are uppercased", func(t *testing.T) {
		s := newStarted("crane")
		typeWord(s, "tr")
		require.Equal(t, 2, s.Col())
		require.Equal(t, "TR", s.CurrentGuess())
	})

	t.Run("column never exceeds word length", func(t *testing.T) {
		s := newStarted("CRANE")
		typeWord(s, "ABCDEFGH")
		require.Equal(t, WordLength, s.Col())
		require.Equal(t, "ABCDE", s.CurrentGuess())
	})

	t.Run("non-letters are ignored", func(t *testing.T) {
		s := newStarted("CRANE")
		typeWord(s, "1 -é")
		require.Equal(t, 0, s.Col())
	})

	t.Run("delete retracts and is a no-op at column zero", func(t *testing.T) {
		s := newStarted("CRANE")
		s.DeleteLetter()
		require.Equal(t, 0, s.Col())
		typeWord(s, "AB")
		s.DeleteLetter()
		require.Equal(t, 1, s.Col())
		typeWord(s, "X")
		require.Equal(t, "AX", s.CurrentGuess())
	})

	t.Run("no input before a game is started", func(t *testing.T) {
		s := NewSession(nil)
		typeWord(s, "CRANE")
		require.Equal(t, 0, s.Col())
		_, err := s.SubmitGuess()
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("malformed secret leaves the session unstarted", func(t *testing.T) {
		s := NewSession(nil)
		s.Reset("toolong")
		require.False(t, s.Started())
		typeWord(s, "CRANE")
		require.Equal(t, 0, s.Col())
	})
}

func TestSessionSubmit(t *testing.T) {
	t.Run("incomplete guess leaves row and column unchanged", func(t *testing.T) {
		s := newStarted("CRANE")
		typeWord(s, "CRA")
		_, err := s.SubmitGuess()
		require.ErrorIs(t, err, ErrIncompleteGuess)
		require.Equal(t, 0, s.Row())
		require.Equal(t, 3, s.Col())
		require.Empty(t, s.KeyStatuses())
	})

	t.Run("rejected word leaves state unchanged", func(t *testing.T) {
		s := NewSession(ValidatorFunc(func(w string) bool { return w == "CRANE" }))
		s.Reset("CRANE")
		typeWord(s, "XXXXX")
		_, err := s.SubmitGuess()
		require.ErrorIs(t, err, ErrInvalidWord)
		require.Equal(t, 0, s.Row())
		require.Equal(t, WordLength, s.Col())
		require.Empty(t, s.History())
	})

	t.Run("wrong guess advances to the next row", func(t *testing.T) {
		s := newStarted("CRANE")
		res := play(t, s, "TRACE")
		require.Equal(t, 0, res.Row)
		require.Equal(t, Active, res.Outcome)
		require.Equal(t, 1, s.Row())
		require.Equal(t, 0, s.Col())
		require.False(t, s.Over())
	})

	t.Run("correct guess wins", func(t *testing.T) {
		s := newStarted("CRANE")
		play(t, s, "TRACE")
		res := play(t, s, "CRANE")
		require.Equal(t, Won, res.Outcome)
		require.True(t, res.Evaluation.Solved())
		require.True(t, s.Over())
		st := s.Stats()
		require.Equal(t, 1, st.GamesPlayed)
		require.Equal(t, 1, st.GamesWon)
		require.Equal(t, 1, st.CurrentStreak)
		require.Equal(t, 1, st.MaxStreak)
		require.Equal(t, 1, st.Distribution[2], "won on the second guess")
	})

	t.Run("row limit loses and resets the streak", func(t *testing.T) {
		s := newStarted("CRANE")
		play(t, s, "CRANE")
		require.Equal(t, 1, s.Stats().CurrentStreak)

		s.Reset("CRANE")
		var res GuessResult
		for i := 0; i < MaxRows; i++ {
			res = play(t, s, "PIOUS")
		}
		require.Equal(t, Lost, res.Outcome)
		require.Equal(t, MaxRows-1, res.Row)
		require.True(t, s.Over())
		require.Equal(t, Lost, s.Outcome())
		st := s.Stats()
		require.Equal(t, 2, st.GamesPlayed)
		require.Equal(t, 1, st.GamesWon)
		require.Equal(t, 0, st.CurrentStreak)
		require.Equal(t, 1, st.MaxStreak)
	})

	t.Run("input after game over does not mutate state", func(t *testing.T) {
		s := newStarted("CRANE")
		play(t, s, "CRANE")
		row, col := s.Row(), s.Col()

		typeWord(s, "AB")
		s.DeleteLetter()
		_, err := s.SubmitGuess()
		require.ErrorIs(t, err, ErrGameOver)
		require.Equal(t, row, s.Row())
		require.Equal(t, col, s.Col())
		require.Equal(t, 1, s.Stats().GamesPlayed, "finished game is only counted once")
	})
}

func TestSessionKeyStatuses(t *testing.T) {
	t.Run("keeps the best status per letter", func(t *testing.T) {
		s := newStarted("CRANE")
		play(t, s, "TRACE")
		keys := s.KeyStatuses()
		require.Equal(t, Absent, keys['T'])
		require.Equal(t, Correct, keys['R'])
		require.Equal(t, Present, keys['C'])

		// C is now in place; R is only present this time.
		play(t, s, "CIDER")
		keys = s.KeyStatuses()
		require.Equal(t, Correct, keys['C'])
		require.Equal(t, Correct, keys['R'], "correct never downgrades to present")
		require.Equal(t, Absent, keys['I'])
	})

	t.Run("present is not downgraded by a later absent", func(t *testing.T) {
		s := newStarted("CRANE")
		play(t, s, "TRACE")
		require.Equal(t, Present, s.KeyStatuses()['C'])
		// CRANE has one C: the first C of OCCUR is present, the second absent.
		res := play(t, s, "OCCUR")
		require.Equal(t, Absent, res.Evaluation[2])
		require.Equal(t, Present, s.KeyStatuses()['C'])
	})

	t.Run("present upgrades to correct", func(t *testing.T) {
		s := newStarted("ERASE")
		play(t, s, "SPEED")
		require.Equal(t, Present, s.KeyStatuses()['E'])
		play(t, s, "TEPEE")
		require.Equal(t, Correct, s.KeyStatuses()['E'])
		play(t, s, "ROBOT")
		require.Equal(t, Correct, s.KeyStatuses()['E'])
	})

	t.Run("reset clears keys but keeps stats", func(t *testing.T) {
		s := newStarted("CRANE")
		play(t, s, "CRANE")
		s.NewGame(fixedSecret("PLANT"))
		require.Empty(t, s.KeyStatuses())
		require.Equal(t, 0, s.Row())
		require.Equal(t, 0, s.Col())
		require.False(t, s.Over())
		require.False(t, s.HintUsed())
		require.Equal(t, "PLANT", s.Secret())
		require.Equal(t, 1, s.Stats().GamesWon)
	})
}

func TestSessionHint(t *testing.T) {
	t.Run("returns the first letter and marks used once", func(t *testing.T) {
		s := newStarted("CRANE")
		require.False(t, s.HintUsed())

		l, ok := s.UseHint()
		require.True(t, ok)
		require.Equal(t, 'C', l)
		require.True(t, s.HintUsed())

		l, ok = s.UseHint()
		require.True(t, ok)
		require.Equal(t, 'C', l, "same letter on repeat calls")
		require.True(t, s.HintUsed())
	})

	t.Run("unavailable without a secret or after game over", func(t *testing.T) {
		s := NewSession(nil)
		_, ok := s.UseHint()
		require.False(t, ok)
		require.False(t, s.HintUsed())

		s.Reset("CRANE")
		play(t, s, "CRANE")
		_, ok = s.UseHint()
		require.False(t, ok)
		require.False(t, s.HintUsed())
	})
}

func TestSessionSnapshot(t *testing.T) {
	s := newStarted("CRANE")
	typeWord(s, "TRACE")
	s.SubmitGuess()
	typeWord(s, "CR")

	snap := s.Snapshot()
	require.True(t, snap.Started)
	require.Equal(t, 1, snap.Row)
	require.Equal(t, 2, snap.Col)
	require.Equal(t, "TRACE", snap.Board[0])
	require.Equal(t, "CR", snap.Board[1])
	require.Len(t, snap.Guesses, 1)
	require.Equal(t, Correct, snap.Keys["R"])
	require.Empty(t, snap.Secret, "secret hidden while active")

	typeWord(s, "ANE")
	s.SubmitGuess()
	require.Equal(t, "CRANE", s.Snapshot().Secret)
}
