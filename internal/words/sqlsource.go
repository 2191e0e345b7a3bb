// internal/words/sqlsource.go
//
// SQLite-backed dictionary.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (assets/sql/*.sql), recorded in _migrations.
//   - Seeding the words table from a List the first time it is empty.
//   - Answering IsValidWord / SolutionForToday with queries.
//
// The daily pick uses the same sorted order and salt as List, so a database
// seeded from a list yields the same word of the day as the list itself.

package words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/assets"
	"github.com/robalobadob/wordgrid/internal/daily"
)

const queryTimeout = 2 * time.Second

// SQLSource is a Source backed by a SQLite words table.
type SQLSource struct {
	db   *sql.DB
	opts options
}

// OpenSQL opens (creating if needed) the dictionary database at dsn,
// migrates it, and seeds it from seed when the table is empty.
func OpenSQL(ctx context.Context, dsn string, seed *List, opts ...Option) (*SQLSource, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if seed != nil {
		if err := seedWords(ctx, db, seed); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &SQLSource{db: db, opts: buildOptions(opts)}, nil
}

// Close releases the database handle.
func (s *SQLSource) Close() error { return s.db.Close() }

// IsValidWord reports whether w is in the words table.
// Query failures are logged and treated as "not valid".
func (s *SQLSource) IsValidWord(w string) bool {
	n, ok := Normalize(w)
	if !ok {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM words WHERE word=?`, n).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		log.Warn().Err(err).Str("word", n).Msg("dictionary lookup")
		return false
	}
	return true
}

// SolutionFor returns the answer for t's UTC date, or "" if there are no answers.
func (s *SQLSource) SolutionFor(t time.Time) string {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words WHERE is_answer=1`).Scan(&n); err != nil {
		log.Error().Err(err).Msg("count answers")
		return ""
	}
	if n == 0 {
		return ""
	}
	idx := daily.WordIndex(t, s.opts.salt, n)

	var word string
	err := s.db.QueryRowContext(ctx,
		`SELECT word FROM words WHERE is_answer=1 ORDER BY word LIMIT 1 OFFSET ?`, idx,
	).Scan(&word)
	if err != nil {
		log.Error().Err(err).Int("index", idx).Msg("select answer")
		return ""
	}
	return word
}

// SolutionForToday returns the answer for the current UTC date.
func (s *SQLSource) SolutionForToday() string {
	return s.SolutionFor(s.opts.now())
}

// Stats returns counts of stored words: (answers, allowed).
func (s *SQLSource) Stats() (answersCount int, allowedCount int) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(is_answer), 0), COUNT(1) FROM words`,
	).Scan(&answersCount, &allowedCount)
	if err != nil {
		log.Warn().Err(err).Msg("dictionary stats")
	}
	return answersCount, allowedCount
}

// openDB opens (and creates if missing) a SQLite database file.
//
// - Ensures parent directory exists for relative DSNs (e.g. ./data/words.db).
// - Configures busy timeout and WAL journaling.
// - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
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
	// Readers only after seeding; one connection keeps ":memory:" coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies embedded migrations in lexical order, each in its own
// transaction, skipping any already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// seedWords fills an empty words table from l inside one transaction.
func seedWords(ctx context.Context, db *sql.DB, l *List) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n); err != nil {
		return fmt.Errorf("count words: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word, is_answer) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, w := range l.Allowed() {
		isAnswer := 0
		if l.IsAnswer(w) {
			isAnswer = 1
		}
		if _, err := stmt.ExecContext(ctx, w, isAnswer); err != nil {
			return fmt.Errorf("seed %s: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	a, g := l.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("seeded dictionary")
	return nil
}
