// Package storage persists completed battle summaries to SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// BattleRecord is one finished battle as kept in history.
type BattleRecord struct {
	ID      int64
	RoomID  string
	Winner  string
	Turns   int
	EndedAt time.Time
}

// Store wraps the battle history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS battles (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id  TEXT NOT NULL,
	winner   TEXT NOT NULL,
	turns    INTEGER NOT NULL,
	ended_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_battles_ended_at ON battles(ended_at);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBattle records one finished battle.
func (s *Store) SaveBattle(ctx context.Context, rec BattleRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO battles (room_id, winner, turns, ended_at) VALUES (?, ?, ?, ?)`,
		rec.RoomID, rec.Winner, rec.Turns, rec.EndedAt)
	if err != nil {
		return fmt.Errorf("insert battle: %w", err)
	}
	return nil
}

// RecentBattles returns the most recently finished battles, newest first.
func (s *Store) RecentBattles(ctx context.Context, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, winner, turns, ended_at FROM battles
		 ORDER BY ended_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query battles: %w", err)
	}
	defer rows.Close()

	var out []BattleRecord
	for rows.Next() {
		var rec BattleRecord
		if err := rows.Scan(&rec.ID, &rec.RoomID, &rec.Winner, &rec.Turns, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate battles: %w", err)
	}
	return out, nil
}
