// internal/wordstore/store.go
//
// SQLite storage for the answer and allowed-guess lists.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Seeding and reading the word lists.
//
// Only word lists live here; game state is never written to disk.

package wordstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/ishirchatnani/wordle-clone/internal/game"
)

//go:embed sql/*.sql
var migrations embed.FS

// Store wraps the word database.
type Store struct {
	db *sql.DB
}

/**
 * Open opens (and creates if missing) a SQLite database file.
 *
 * - Ensures parent directory exists for relative DSNs (e.g. ./data/words.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Enforces foreign keys.
 */
func Open(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

/**
 * Migrate applies the embedded SQL migrations.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each *.sql file in lexical order, each in its own transaction.
 * - Skips files already applied.
 */
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Seed inserts answers and allowed words, ignoring ones already stored.
// Answers are also inserted into allowed. Words are stored uppercase and
// entries that are not five letters are skipped.
func (s *Store) Seed(ctx context.Context, source string, answers, allowed []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM answers`).Scan(&next); err != nil {
		return fmt.Errorf("next position: %w", err)
	}

	insAns, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO answers(word, position) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer insAns.Close()
	insAll, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO allowed(word) VALUES (?)`)
	if err != nil {
		return err
	}
	defer insAll.Close()

	var nAns, nAll int
	for _, w := range answers {
		if w = game.Normalize(w); !game.IsWord(w) {
			continue
		}
		res, err := insAns.ExecContext(ctx, w, next)
		if err != nil {
			return fmt.Errorf("insert answer %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			next++
			nAns++
		}
		if _, err := insAll.ExecContext(ctx, w); err != nil {
			return fmt.Errorf("insert allowed %q: %w", w, err)
		}
	}
	for _, w := range allowed {
		if w = game.Normalize(w); !game.IsWord(w) {
			continue
		}
		res, err := insAll.ExecContext(ctx, w)
		if err != nil {
			return fmt.Errorf("insert allowed %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			nAll++
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO imports(source, answers, allowed) VALUES (?, ?, ?)`,
		source, nAns, nAll); err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return tx.Commit()
}

// Lists returns the stored answers (in insertion order) and allowed words.
func (s *Store) Lists(ctx context.Context) (answers, allowed []string, err error) {
	if answers, err = s.column(ctx, `SELECT word FROM answers ORDER BY position`); err != nil {
		return nil, nil, err
	}
	if allowed, err = s.column(ctx, `SELECT word FROM allowed ORDER BY word`); err != nil {
		return nil, nil, err
	}
	return answers, allowed, nil
}

// Counts returns the number of stored answers and allowed words.
func (s *Store) Counts(ctx context.Context) (answers, allowed int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(1) FROM answers), (SELECT COUNT(1) FROM allowed)`,
	).Scan(&answers, &allowed)
	return answers, allowed, err
}

// Import describes one Seed call.
type Import struct {
	Source     string `json:"source"`
	Answers    int    `json:"answers"`
	Allowed    int    `json:"allowed"`
	ImportedAt string `json:"importedAt"`
}

// Imports lists past seeds, newest first.
func (s *Store) Imports(ctx context.Context, limit int) ([]Import, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT source, answers, allowed, imported_at
        FROM imports
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Import, 0, limit)
	for rows.Next() {
		var im Import
		if err := rows.Scan(&im.Source, &im.Answers, &im.Allowed, &im.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}

func (s *Store) column(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
