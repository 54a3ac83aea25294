// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints under /game and /stats, one live session per player.
//   - Background sweep of idle sessions.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The game core is synchronous; this layer only translates HTTP calls
//     into Session method calls under the store's per-player lock.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/ishirchatnani/wordle-clone/internal/daily"
	"github.com/ishirchatnani/wordle-clone/internal/store"
	"github.com/ishirchatnani/wordle-clone/internal/words"
	"github.com/ishirchatnani/wordle-clone/internal/wordstore"
)

// Options configures a Server. Lexicon is required.
type Options struct {
	Lexicon *words.Lexicon
	Store   store.Store
	Daily   *daily.Picker
	// WordDB is optional; when set /debug/words reports its imports.
	WordDB *wordstore.Store

	JWTSecret    []byte
	TokenTTL     time.Duration
	CookieName   string
	CookieSecure bool

	ClientOrigin     string
	RequestTimeout   time.Duration
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	AllowFixedAnswer bool
}

func (o *Options) defaults() {
	if o.Store == nil {
		o.Store = store.NewMemoryStore()
	}
	if len(o.JWTSecret) == 0 {
		o.JWTSecret = []byte("dev_secret_change_me")
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = 30 * 24 * time.Hour
	}
	if o.CookieName == "" {
		o.CookieName = "wordle_player"
	}
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 24 * time.Hour
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = 10 * time.Minute
	}
	if o.Daily == nil && o.Lexicon != nil {
		o.Daily = &daily.Picker{Answers: o.Lexicon.Answers(), Salt: "local_dev_salt"}
	}
}

// Server bundles router, session store, and word lists.
type Server struct {
	r    *chi.Mux
	opts Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	opts.defaults()
	s := &Server{r: chi.NewRouter(), opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))        // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))      // one line per request
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(corsFor(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","POST /game/new","POST /game/letter","POST /game/delete","POST /game/submit","POST /game/guess","POST /game/hint","GET /game/state","GET /stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	// --- game ---
	s.mountGame(s.r.With(s.withPlayer))

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully. Idle sessions are swept in the background meanwhile.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sweep drops idle sessions every SweepInterval until ctx is done.
func (s *Server) sweep(ctx context.Context) {
	t := time.NewTicker(s.opts.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.opts.Store.Sweep(ctx, s.opts.SessionTTL); n > 0 {
				log.Info().Int("evicted", n).Int("live", s.opts.Store.Len()).Msg("swept idle sessions")
			}
		}
	}
}

// handleDebugWords reports word list counts and, with a word database, its imports.
func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	a, g := s.opts.Lexicon.Stats()
	out := map[string]any{
		"answers":  a,
		"allowed":  g,
		"strict":   s.opts.Lexicon.Strict(),
		"sessions": s.opts.Store.Len(),
	}
	if s.opts.WordDB != nil {
		imports, err := s.opts.WordDB.Imports(r.Context(), 10)
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("list word imports")
		} else {
			out["imports"] = imports
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ----------------------------- middleware ----------------------------------

// accessLog writes one structured line per request.
func accessLog(r *http.Request, status, size int, duration time.Duration) {
	lvl := zerolog.InfoLevel
	if status >= http.StatusInternalServerError {
		lvl = zerolog.ErrorLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("requestId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", tokenHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
