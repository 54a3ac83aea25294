package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("mixed feedback", func(t *testing.T) {
		got := Evaluate("TRACE", "CRANE")
		require.Equal(t, Evaluation{Absent, Correct, Correct, Present, Correct}, got,
			"T absent, R and A in place, C elsewhere, E in place")
	})

	t.Run("identical words are all correct", func(t *testing.T) {
		for _, w := range []string{"CRANE", "SPEED", "AAAAA", "LEVEL"} {
			got := Evaluate(w, w)
			require.True(t, got.Solved(), "Evaluate(%s, %s) should be solved", w, w)
		}
	})

	t.Run("correct iff letters match at the position", func(t *testing.T) {
		cases := [][2]string{
			{"SPEED", "ERASE"}, {"ABBEY", "BABES"}, {"EERIE", "THEME"}, {"LLAMA", "HELLO"},
		}
		for _, c := range cases {
			got := Evaluate(c[0], c[1])
			for i := range got {
				require.Equal(t, c[0][i] == c[1][i], got[i] == Correct,
					"position %d of %s vs %s", i, c[0], c[1])
			}
		}
	})

	t.Run("duplicate guessed letter with a single copy in the secret", func(t *testing.T) {
		// ERASE has two Es; SPEED has two Es and one S.
		got := Evaluate("SPEED", "ERASE")
		require.Equal(t, Evaluation{Present, Absent, Present, Present, Absent}, got)
	})

	t.Run("exact match consumes its copy before presents are assigned", func(t *testing.T) {
		got := Evaluate("TTTTT", "PLANT")
		require.Equal(t, Evaluation{Absent, Absent, Absent, Absent, Correct}, got)

		// THEME has two Es: one exact at the end, one left for the first E.
		got = Evaluate("EERIE", "THEME")
		require.Equal(t, Evaluation{Present, Absent, Absent, Absent, Correct}, got)
	})

	t.Run("repeated guess letter matching repeated secret letters", func(t *testing.T) {
		got := Evaluate("LLAMA", "HELLO")
		require.Equal(t, Evaluation{Present, Present, Absent, Absent, Absent}, got)
	})

	t.Run("marks per letter never exceed its count in the secret", func(t *testing.T) {
		pairs := [][2]string{
			{"SPEED", "ERASE"}, {"EERIE", "THEME"}, {"AAAAA", "ABACK"}, {"MAMMA", "MADAM"},
		}
		for _, p := range pairs {
			guess, secret := p[0], p[1]
			got := Evaluate(guess, secret)
			credited := map[byte]int{}
			for i, st := range got {
				if st != Absent {
					credited[guess[i]]++
				}
			}
			for letter, n := range credited {
				var inSecret int
				for i := 0; i < len(secret); i++ {
					if secret[i] == letter {
						inSecret++
					}
				}
				require.LessOrEqual(t, n, inSecret, "%c over-credited in %s vs %s", letter, guess, secret)
			}
		}
	})

	t.Run("length mismatch scores all absent", func(t *testing.T) {
		got := Evaluate("CRAN", "CRANE")
		require.Len(t, got, 5)
		for _, st := range got {
			require.Equal(t, Absent, st)
		}
	})
}

func TestLetterStatusPriority(t *testing.T) {
	require.True(t, Correct.Better(Present))
	require.True(t, Present.Better(Absent))
	require.False(t, Present.Better(Present), "equal priority is not better")
	require.False(t, Absent.Better(Correct))
}

func TestLetterStatusText(t *testing.T) {
	b, err := Present.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "present", string(b))

	var s LetterStatus
	require.NoError(t, s.UnmarshalText([]byte("correct")))
	require.Equal(t, Correct, s)
	require.Error(t, s.UnmarshalText([]byte("green")))
}

func TestIsWord(t *testing.T) {
	require.True(t, IsWord("CRANE"))
	require.False(t, IsWord("crane"), "lowercase must be normalized first")
	require.False(t, IsWord("CRAN"))
	require.False(t, IsWord("CR4NE"))
	require.Equal(t, "CRANE", Normalize("  crane "))
}
