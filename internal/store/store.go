// Package store handles SQLite persistence of quiz rounds.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/kanjiq/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			played_at TEXT NOT NULL,
			kanji TEXT NOT NULL,
			category TEXT NOT NULL,
			outcome TEXT NOT NULL,
			answer TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_played_at ON rounds(played_at);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_category ON rounds(category);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores a completed round. Quit rounds are not recorded.
func (s *Store) InsertRound(ctx context.Context, round model.RoundResult) error {
	if !round.Outcome.Recorded() {
		return nil
	}
	if round.ID == "" {
		return fmt.Errorf("round id is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (id, played_at, kanji, category, outcome, answer)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		round.ID,
		round.PlayedAt.UTC().Format(time.RFC3339Nano),
		round.Character,
		round.Category,
		string(round.Outcome),
		round.Answer,
	)
	return err
}

func whereClause(filter model.HistoryFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Since != nil {
		clauses = append(clauses, "played_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

// ListRounds returns rounds matching filter, oldest first.
func (s *Store) ListRounds(ctx context.Context, filter model.HistoryFilter) ([]model.RoundResult, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT id, played_at, kanji, category, outcome, answer
		FROM rounds
		WHERE %s
		ORDER BY played_at ASC`, where)
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

	var rounds []model.RoundResult
	for rows.Next() {
		var r model.RoundResult
		var playedAt, outcome string
		if err := rows.Scan(&r.ID, &playedAt, &r.Character, &r.Category, &outcome, &r.Answer); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, playedAt)
		if err != nil {
			return nil, err
		}
		r.PlayedAt = parsed
		r.Outcome = model.Outcome(outcome)
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

// CategoryAggregates sums outcomes per category for rounds matching filter.
func (s *Store) CategoryAggregates(ctx context.Context, filter model.HistoryFilter) ([]model.CategoryAggregate, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf(`SELECT category, COUNT(*) AS rounds,
		SUM(CASE WHEN outcome = 'correct' THEN 1 ELSE 0 END) AS correct,
		SUM(CASE WHEN outcome = 'incorrect' THEN 1 ELSE 0 END) AS incorrect,
		SUM(CASE WHEN outcome = 'unknown' THEN 1 ELSE 0 END) AS unknown
		FROM rounds
		WHERE %s
		GROUP BY category
		ORDER BY category ASC`, where)
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

	var result []model.CategoryAggregate
	for rows.Next() {
		var agg model.CategoryAggregate
		if err := rows.Scan(&agg.Category, &agg.Rounds, &agg.Correct, &agg.Incorrect, &agg.Unknown); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
