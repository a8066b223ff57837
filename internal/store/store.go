// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/bookscore/internal/bands"
	"github.com/verte-zerg/bookscore/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for band snapshots and score history.
type Store struct {
	db *sql.DB
}

var _ bands.Storage = (*Store)(nil)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	// A single connection keeps :memory: databases shared across queries.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate db: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS band_sets (
			key TEXT PRIMARY KEY,
			boundaries TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS band_members (
			key TEXT NOT NULL,
			band INTEGER NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (key, word)
		);`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			scored_at TEXT NOT NULL,
			book_path TEXT NOT NULL,
			band_key TEXT NOT NULL,
			total_score INTEGER NOT NULL,
			score_excluding_oor INTEGER NOT NULL,
			v1_score INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			band_labels TEXT NOT NULL,
			band_counts TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_band_members_key ON band_members(key, band);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_scored_at ON scores(scored_at);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_book_path ON scores(book_path);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the band snapshot stored under key.
func (s *Store) Save(ctx context.Context, key string, snap bands.Snapshot) (err error) {
	boundaries, err := json.Marshal(snap.Boundaries)
	if err != nil {
		return fmt.Errorf("failed to encode boundaries: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM band_members WHERE key = ?`, key); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO band_sets (key, boundaries, created_at) VALUES (?, ?, ?)`,
		key, string(boundaries), time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO band_members (key, band, word) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for band, words := range snap.Bands {
		for _, word := range words {
			if _, err = stmt.ExecContext(ctx, key, band, word); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Load returns the band snapshot stored under key.
func (s *Store) Load(ctx context.Context, key string) (bands.Snapshot, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT boundaries FROM band_sets WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return bands.Snapshot{}, false, nil
	}
	if err != nil {
		return bands.Snapshot{}, false, err
	}
	var snap bands.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap.Boundaries); err != nil {
		return bands.Snapshot{}, false, fmt.Errorf("failed to decode boundaries: %w", err)
	}
	if len(snap.Boundaries) < 2 {
		return bands.Snapshot{}, false, fmt.Errorf("stored boundaries for %s are invalid", key)
	}
	snap.Bands = make([][]string, len(snap.Boundaries)-1)
	for i := range snap.Bands {
		snap.Bands[i] = []string{}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT band, word FROM band_members WHERE key = ? ORDER BY band, word`, key)
	if err != nil {
		return bands.Snapshot{}, false, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var band int
		var word string
		if err := rows.Scan(&band, &word); err != nil {
			return bands.Snapshot{}, false, err
		}
		if band < 0 || band >= len(snap.Bands) {
			return bands.Snapshot{}, false, fmt.Errorf("stored band %d out of range for %s", band, key)
		}
		snap.Bands[band] = append(snap.Bands[band], word)
	}
	if err := rows.Err(); err != nil {
		return bands.Snapshot{}, false, err
	}
	return snap, true, nil
}

// InsertScore stores a scored book and returns its id.
func (s *Store) InsertScore(ctx context.Context, rec model.ScoreRecord) (int64, error) {
	labels, err := json.Marshal(rec.BandLabels)
	if err != nil {
		return 0, fmt.Errorf("failed to encode band labels: %w", err)
	}
	counts, err := json.Marshal(rec.BandCounts)
	if err != nil {
		return 0, fmt.Errorf("failed to encode band counts: %w", err)
	}
	scoredAt := rec.ScoredAt
	if scoredAt.IsZero() {
		scoredAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (scored_at, book_path, band_key, total_score, score_excluding_oor, v1_score, word_count, band_labels, band_counts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scoredAt.UTC().Format(time.RFC3339Nano),
		rec.BookPath,
		rec.BandKey,
		rec.TotalScore,
		rec.ScoreExcludingOutOfRange,
		rec.V1Score,
		rec.WordCount,
		string(labels),
		string(counts),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListScores returns score records matching filter, oldest first.
func (s *Store) ListScores(ctx context.Context, filter model.HistoryFilter) ([]model.ScoreRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Book != "" {
		clauses = append(clauses, "book_path = ?")
		args = append(args, filter.Book)
	}
	if filter.Since != nil {
		clauses = append(clauses, "scored_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	limit := -1
	if filter.Last > 0 {
		limit = filter.Last
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT * FROM (
		SELECT id, scored_at, book_path, band_key, total_score, score_excluding_oor, v1_score, word_count, band_labels, band_counts
		FROM scores
		WHERE %s
		ORDER BY scored_at DESC, id DESC
		LIMIT ?
	) ORDER BY scored_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ScoreRecord
	for rows.Next() {
		var rec model.ScoreRecord
		var scoredAt, labels, counts string
		if err := rows.Scan(&rec.ID, &scoredAt, &rec.BookPath, &rec.BandKey, &rec.TotalScore,
			&rec.ScoreExcludingOutOfRange, &rec.V1Score, &rec.WordCount, &labels, &counts); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, scoredAt)
		if err != nil {
			return nil, err
		}
		rec.ScoredAt = parsed
		if err := json.Unmarshal([]byte(labels), &rec.BandLabels); err != nil {
			return nil, fmt.Errorf("failed to decode band labels: %w", err)
		}
		if err := json.Unmarshal([]byte(counts), &rec.BandCounts); err != nil {
			return nil, fmt.Errorf("failed to decode band counts: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
