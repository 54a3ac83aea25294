package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ishirchatnani/wordle-clone/internal/config"
	"github.com/ishirchatnani/wordle-clone/internal/daily"
	"github.com/ishirchatnani/wordle-clone/internal/httpserver"
	"github.com/ishirchatnani/wordle-clone/internal/store"
	"github.com/ishirchatnani/wordle-clone/internal/words"
	"github.com/ishirchatnani/wordle-clone/internal/wordstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lx, err := words.Load(words.Source{
		AnswersFile: cfg.WordsAnswersFile,
		AllowedFile: cfg.WordsAllowedFile,
		Strict:      cfg.WordsStrict,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	var wdb *wordstore.Store
	if cfg.WordsDB != "" {
		wdb, lx, err = openWordDB(ctx, cfg.WordsDB, lx, cfg.WordsStrict)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.WordsDB).Msg("failed to open word database")
		}
		defer wdb.Close()
	}
	log.Info().Stringer("lexicon", lx).Msg("word lists loaded")

	srv := httpserver.New(httpserver.Options{
		Lexicon:          lx,
		Store:            store.NewMemoryStore(),
		Daily:            &daily.Picker{Answers: lx.Answers(), Salt: cfg.DailySalt},
		WordDB:           wdb,
		JWTSecret:        []byte(cfg.JWTSecret),
		TokenTTL:         cfg.TokenTTL,
		CookieName:       cfg.CookieName,
		CookieSecure:     cfg.CookieSecure,
		ClientOrigin:     cfg.ClientOrigin,
		RequestTimeout:   cfg.RequestTimeout,
		SessionTTL:       cfg.SessionTTL,
		SweepInterval:    cfg.SweepInterval,
		AllowFixedAnswer: cfg.AllowFixedAnswer,
	})
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// openWordDB migrates the word database, seeds it from the file or embedded
// lists on first use, and returns the lexicon read back from it.
func openWordDB(ctx context.Context, dsn string, seed *words.Lexicon, strict bool) (*wordstore.Store, *words.Lexicon, error) {
	wdb, err := wordstore.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := wdb.Migrate(ctx); err != nil {
		_ = wdb.Close()
		return nil, nil, err
	}
	if err := wdb.SeedIfEmpty(ctx, "startup", seed); err != nil {
		_ = wdb.Close()
		return nil, nil, err
	}
	lx, err := wdb.Lexicon(ctx, strict)
	if err != nil {
		_ = wdb.Close()
		return nil, nil, err
	}
	return wdb, lx, nil
}
