// Package sqlstore implements the repositories on an embedded SQLite database.
package sqlstore

import (
	"errors"

	"github.com/isdelr/reelreview-be/internal/repository"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface{ Scan(...interface{}) error }

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return repository.ErrDuplicate
		}
	}
	return err
}
