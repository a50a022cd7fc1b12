// Package storage keeps the CalDAV sync ledger in SQLite. Holiday sets are
// always recomputed; only the record of what was published is persisted.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Sync is one publication of a year's holidays to a calendar.
type Sync struct {
	Year     int
	Calendar string
	Events   int
	SyncedAt time.Time
}

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create db dir")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping db")
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS syncs (
			year INTEGER NOT NULL,
			calendar TEXT NOT NULL,
			events INTEGER NOT NULL DEFAULT 0,
			synced_at DATETIME NOT NULL,
			PRIMARY KEY (year, calendar)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_syncs_synced_at ON syncs(synced_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// RecordSync stores or refreshes the ledger row for year and calendar.
func (s *Storage) RecordSync(year int, calendar string, events int, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO syncs (year, calendar, events, synced_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(year, calendar) DO UPDATE SET events = excluded.events, synced_at = excluded.synced_at`,
		year, calendar, events, at.UTC(),
	)
	return errors.Wrapf(err, "record sync %d", year)
}

// LastSync returns the ledger row for year and calendar, or nil if the year
// was never published there.
func (s *Storage) LastSync(year int, calendar string) (*Sync, error) {
	row := s.db.QueryRow(
		`SELECT year, calendar, events, synced_at FROM syncs WHERE year = ? AND calendar = ?`,
		year, calendar,
	)

	var sync Sync
	err := row.Scan(&sync.Year, &sync.Calendar, &sync.Events, &sync.SyncedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "last sync %d", year)
	}
	return &sync, nil
}

// ListSyncs returns every ledger row, newest year first.
func (s *Storage) ListSyncs() ([]Sync, error) {
	rows, err := s.db.Query(`SELECT year, calendar, events, synced_at FROM syncs ORDER BY year DESC, calendar`)
	if err != nil {
		return nil, errors.Wrap(err, "list syncs")
	}
	defer rows.Close()

	var syncs []Sync
	for rows.Next() {
		var sync Sync
		if err := rows.Scan(&sync.Year, &sync.Calendar, &sync.Events, &sync.SyncedAt); err != nil {
			return nil, errors.Wrap(err, "scan sync")
		}
		syncs = append(syncs, sync)
	}
	return syncs, rows.Err()
}
