// Package history persists settled parking sessions in SQLite.
package history

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/LeeJaeHaeng/parking-pass/core/session"
)

// SQLiteStore implements session.HistoryStore over a local database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS parking_history (
        id TEXT PRIMARY KEY,
        lot_name TEXT NOT NULL,
        started_at INTEGER NOT NULL,
        ended_at INTEGER NOT NULL,
        duration_min INTEGER NOT NULL,
        fee INTEGER NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts the settled session.
func (s *SQLiteStore) Add(r session.Record) error {
	_, err := s.db.Exec(`INSERT INTO parking_history (id, lot_name, started_at, ended_at, duration_min, fee)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO NOTHING`,
		r.ID, r.LotName, r.StartedAt.Unix(), r.EndedAt.Unix(), r.DurationMin, r.FeeWon)
	return err
}

// List returns the most recent records, newest first.
func (s *SQLiteStore) List(limit int) ([]session.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, lot_name, started_at, ended_at, duration_min, fee
        FROM parking_history ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []session.Record
	for rows.Next() {
		var r session.Record
		var started, ended int64
		if err := rows.Scan(&r.ID, &r.LotName, &started, &ended, &r.DurationMin, &r.FeeWon); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		r.EndedAt = time.Unix(ended, 0).UTC()
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
