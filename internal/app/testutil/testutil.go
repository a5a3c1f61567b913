// Package testutil contains shared helpers for tests.
package testutil

import (
	"database/sql"

	"github.com/minaretapp/minaret/internal/app/storage"
)

// NewDBInMemory returns a connected in-memory database for tests.
func NewDBInMemory() (*sql.DB, *storage.Storage, Factory) {
	db, err := storage.InitDB(":memory:")
	if err != nil {
		panic(err)
	}
	st := storage.New(db)
	return db, st, NewFactory(st)
}

// MustTruncateTables purges data from all tables.
func MustTruncateTables(db *sql.DB) {
	sql := `
		DELETE FROM cache;
		DELETE FROM prayer_days;
	`
	if _, err := db.Exec(sql); err != nil {
		panic(err)
	}
}
