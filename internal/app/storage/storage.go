// Package storage implements persistent storage for the app with SQLite.
//
// No direct DB access is allowed outside this package.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when an object does not exist in the database.
var ErrNotFound = errors.New("object does not exist in database")

var schema = `
	CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY NOT NULL,
		value BLOB NOT NULL,
		expires_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS cache_expires_at_idx ON cache (expires_at);

	CREATE TABLE IF NOT EXISTS prayer_days (
		location_key TEXT NOT NULL,
		day DATE NOT NULL,
		hijri_date TEXT NOT NULL,
		data BLOB NOT NULL,
		retrieved_at DATETIME NOT NULL,
		PRIMARY KEY (location_key, day)
	);
	CREATE INDEX IF NOT EXISTS prayer_days_day_idx ON prayer_days (day);
`

var pragmas = `
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = normal;
	PRAGMA temp_store = memory;
`

// Storage provides access to the persistent storage of the app.
type Storage struct {
	db *sql.DB
}

// New returns a new Storage object.
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// InitDB initializes the database and returns it. Needs to be called once.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_fk=on", dsn))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	if _, err := db.Exec(pragmas); err != nil {
		return nil, err
	}
	slog.Info("Connected to database", "dsn", dsn)
	return db, nil
}
