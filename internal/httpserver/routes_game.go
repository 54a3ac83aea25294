// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game. Each player has one live session.
//   - POST /game/new     → start a game ("random" or "daily" secret)
//   - POST /game/letter  → type one letter into the current row
//   - POST /game/delete  → remove the last letter of the current row
//   - POST /game/submit  → submit the current row
//   - POST /game/guess   → type a whole word into the current row and submit it
//   - POST /game/hint    → first letter of the secret (once per game)
//   - GET  /game/state   → board, keyboard statuses, stats
//   - GET  /stats        → cumulative stats
//
// Refused submissions answer 422 with {"error": "incomplete_guess" |
// "invalid_word" | "game_over"} and leave the session untouched.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/ishirchatnani/wordle-clone/internal/game"
	"github.com/ishirchatnani/wordle-clone/internal/store"
)

// mountGame registers all game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/letter", s.handleLetter)
		r.Post("/delete", s.handleDelete)
		r.Post("/submit", s.handleSubmit)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Get("/state", s.handleState)
	})
	r.Get("/stats", s.handleStats)
}

// -----------------------------------------------------------------------------
// /game/new

// newGameReq is the request payload for /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // fixed answer, honoured only with AllowFixedAnswer
}

// newGameRes is returned by /game/new.
type newGameRes struct {
	Mode  string        `json:"mode"`
	Date  string        `json:"date,omitempty"`
	State game.Snapshot `json:"state"`
}

// handleNewGame resets the player's session with a new secret, creating the
// session on first use. Stats carry over from previous games.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var src game.SecretSource = s.opts.Lexicon
	res := newGameRes{Mode: "random"}
	switch req.Mode {
	case "", "random":
	case "daily":
		res.Mode = "daily"
		date, _, answer := s.opts.Daily.Today()
		res.Date = date
		src = fixedSecret(answer)
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}
	if req.Answer != "" {
		if !s.opts.AllowFixedAnswer {
			writeError(w, http.StatusForbidden, "fixed_answer_disabled")
			return
		}
		if !game.IsWord(game.Normalize(req.Answer)) {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
		res.Mode = "fixed"
		src = fixedSecret(req.Answer)
	}

	id := playerID(r.Context())
	start := func(sess *game.Session) error {
		sess.NewGame(src)
		res.State = sess.Snapshot()
		return nil
	}
	create := func() *game.Session { return game.NewSession(s.opts.Lexicon) }
	if err := s.opts.Store.Upsert(r.Context(), id, create, start); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("player", id).Msg("start game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if !res.State.Started {
		writeError(w, http.StatusServiceUnavailable, "no_answers")
		return
	}
	hlog.FromRequest(r).Debug().Str("player", id).Str("mode", res.Mode).Msg("new game")
	writeJSON(w, http.StatusOK, res)
}

type fixedSecret string

func (f fixedSecret) PickSecret() string { return string(f) }

// -----------------------------------------------------------------------------
// board input

// letterReq is the request payload for /game/letter.
type letterReq struct {
	Letter string `json:"letter"`
}

// handleLetter types one letter. Non-letters and a full row are ignored.
func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || utf8.RuneCountInString(req.Letter) != 1 {
		writeError(w, http.StatusBadRequest, "bad_letter")
		return
	}
	letter, _ := utf8.DecodeRuneInString(req.Letter)
	s.withSession(w, r, func(sess *game.Session) (any, error) {
		sess.AddLetter(letter)
		return sess.Snapshot(), nil
	})
}

// handleDelete removes the last typed letter.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session) (any, error) {
		sess.DeleteLetter()
		return sess.Snapshot(), nil
	})
}

// -----------------------------------------------------------------------------
// submission

// guessRes is the response payload for /game/submit and /game/guess.
type guessRes struct {
	game.GuessResult
	Keys   map[string]game.LetterStatus `json:"keys"`
	Stats  game.Stats                   `json:"stats"`
	Answer string                       `json:"answer,omitempty"` // revealed once the game is over
}

func newGuessRes(sess *game.Session, res game.GuessResult) guessRes {
	snap := sess.Snapshot()
	return guessRes{GuessResult: res, Keys: snap.Keys, Stats: snap.Stats, Answer: snap.Secret}
}

// handleSubmit submits the letters typed so far.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session) (any, error) {
		res, err := sess.SubmitGuess()
		if err != nil {
			return nil, err
		}
		return newGuessRes(sess, res), nil
	})
}

// guessReq is the request payload for /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess replaces the current row with a whole word and submits it.
// On refusal the row is restored to what was typed before. Words longer than
// a row or holding anything but letters are refused before touching the row.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess := game.Normalize(req.Guess)
	if utf8.RuneCountInString(guess) > game.WordLength || strings.IndexFunc(guess, notLetter) >= 0 {
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	}
	s.withSession(w, r, func(sess *game.Session) (any, error) {
		prev := sess.CurrentGuess()
		retype(sess, guess)
		res, err := sess.SubmitGuess()
		if err != nil {
			retype(sess, prev)
			return nil, err
		}
		return newGuessRes(sess, res), nil
	})
}

func notLetter(r rune) bool { return r < 'A' || r > 'Z' }

// retype clears the current row and types word into it.
func retype(sess *game.Session, word string) {
	for sess.Col() > 0 && !sess.Over() {
		sess.DeleteLetter()
	}
	for _, c := range word {
		sess.AddLetter(c)
	}
}

// -----------------------------------------------------------------------------
// hint, state, stats

// handleHint reveals the first letter of the secret.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session) (any, error) {
		letter, ok := sess.UseHint()
		if !ok {
			return nil, errHintUnavailable
		}
		return map[string]string{"letter": string(letter)}, nil
	})
}

// handleState returns the full session snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session) (any, error) {
		return sess.Snapshot(), nil
	})
}

// handleStats returns cumulative stats; a player with no session has zeros.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var st game.Stats
	err := s.opts.Store.Update(r.Context(), playerID(r.Context()), func(sess *game.Session) error {
		st = sess.Stats()
		return nil
	})
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// -----------------------------------------------------------------------------
// plumbing

var errHintUnavailable = errors.New("hint unavailable")

// withSession runs fn on the caller's session and writes its result or the
// mapped error.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*game.Session) (any, error)) {
	var out any
	err := s.opts.Store.Update(r.Context(), playerID(r.Context()), func(sess *game.Session) error {
		var err error
		out, err = fn(sess)
		return err
	})
	if err != nil {
		status, code := errorStatus(err)
		if status >= http.StatusInternalServerError {
			hlog.FromRequest(r).Error().Err(err).Msg("session update")
		}
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// errorStatus maps session errors to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "no_game"
	case errors.Is(err, game.ErrIncompleteGuess):
		return http.StatusUnprocessableEntity, "incomplete_guess"
	case errors.Is(err, game.ErrInvalidWord):
		return http.StatusUnprocessableEntity, "invalid_word"
	case errors.Is(err, game.ErrGameOver):
		return http.StatusUnprocessableEntity, "game_over"
	case errors.Is(err, errHintUnavailable):
		return http.StatusConflict, "hint_unavailable"
	}
	return http.StatusInternalServerError, "server_error"
}
