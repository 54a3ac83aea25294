// internal/httpserver/player.go
//
// Player identity for the HTTP adapter.
// Every client gets a player ID (uuid) inside an HS256 JWT. The token travels
// in a cookie for browsers or an Authorization: Bearer header for other
// clients. A missing, expired, or forged token is replaced with a fresh
// player; it only identifies the in-memory session and holds no account data.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

// tokenHeader echoes a newly issued token for clients that do not keep cookies.
const tokenHeader = "X-Player-Token"

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

// playerID returns the player ID placed in the context by withPlayer.
func playerID(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// signPlayer creates an HS256 JWT whose subject is the player ID.
func (s *Server) signPlayer(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.opts.JWTSecret)
	return ss, exp, err
}

// parsePlayer validates tok and returns its player ID.
func (s *Server) parsePlayer(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid subject")
	}
	return claims.Subject, nil
}

// withPlayer resolves the caller's player ID, issuing a new one when needed.
// It never rejects a request.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if tok := s.bearerOrCookie(r); tok != "" {
			var err error
			if id, err = s.parsePlayer(tok); err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("discarding player token")
			}
		}
		if id == "" {
			id = uuid.NewString()
			tok, exp, err := s.signPlayer(id)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			s.setPlayerCookie(w, tok, exp)
			w.Header().Set(tokenHeader, tok)
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setPlayerCookie writes the player token cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.CookieSecure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or player cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		return c.Value
	}
	return ""
}
