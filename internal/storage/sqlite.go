// Package storage keeps the run ledger for the current process.
// It uses the pure-Go modernc.org/sqlite driver in memory mode, so nothing
// outlives the process: closing the ledger forgets every run.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Ledger records finished runs for the lifetime of the process.
// It is safe for concurrent use by several sessions; Close must not race
// with other calls.
type Ledger struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID       int64
	GameID   string
	Player   string // "local" or the SSH user
	Seed     int64
	Score    int
	Coins    int
	Duration time.Duration
	EndedAt  time.Time
}

// Stats aggregates the runs of one game.
type Stats struct {
	GameID     string
	Runs       int
	Best       int
	AvgScore   float64
	TotalCoins int
	Longest    time.Duration
	LastPlayed time.Time
}

// ErrClosed is returned after Close.
var ErrClosed = errors.New("storage: ledger closed")

// OpenSession creates an empty in-memory ledger.
func OpenSession() (*Ledger, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database; keep exactly one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return l, nil
}

// migrate creates the schema.
func (l *Ledger) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Close drops the ledger and everything in it.
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// SaveRun records a finished run and returns its ID.
// A zero EndedAt is stamped with the current time.
func (l *Ledger) SaveRun(r Run) (int64, error) {
	if l == nil || l.db == nil {
		return 0, ErrClosed
	}
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}

	result, err := l.db.Exec(
		`INSERT INTO runs (game_id, player, seed, score, coins, duration_ms, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Player, r.Seed, r.Score, r.Coins,
		r.Duration.Milliseconds(), r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs of a game, highest score first.
// Ties go to the earlier run. A non-positive limit means 10.
func (l *Ledger) TopRuns(gameID string, limit int) ([]Run, error) {
	if l == nil || l.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.Query(
		`SELECT id, game_id, player, seed, score, coins, duration_ms, ended_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durMS, endedMS int64
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Seed, &r.Score, &r.Coins, &durMS, &endedMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durMS) * time.Millisecond
		r.EndedAt = time.UnixMilli(endedMS)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Best returns the highest score of a game, or 0 if it has no runs.
func (l *Ledger) Best(gameID string) (int, error) {
	if l == nil || l.db == nil {
		return 0, ErrClosed
	}

	var best sql.NullInt64
	err := l.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats aggregates the runs of one game. A game without runs yields zero stats.
func (l *Ledger) Stats(gameID string) (*Stats, error) {
	if l == nil || l.db == nil {
		return nil, ErrClosed
	}

	stats := &Stats{GameID: gameID}
	var longestMS, lastMS int64
	err := l.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(coins), 0), COALESCE(MAX(duration_ms), 0), COALESCE(MAX(ended_at), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.Best, &stats.AvgScore, &stats.TotalCoins, &longestMS, &lastMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.Longest = time.Duration(longestMS) * time.Millisecond
	if lastMS > 0 {
		stats.LastPlayed = time.UnixMilli(lastMS)
	}
	return stats, nil
}

// Clear forgets every run of a game.
func (l *Ledger) Clear(gameID string) error {
	if l == nil || l.db == nil {
		return ErrClosed
	}
	if _, err := l.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
