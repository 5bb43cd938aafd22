package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// NewSQLite creates a new SQLite connection pool.
func NewSQLite(path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryDSN {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == MemoryDSN {
		// Every connection to :memory: sees its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// MigrateSQLite runs the SQL statements to set up the database schema.
// Reviews carry no foreign key: the reference to movies is checked by the application.
func MigrateSQLite(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS movies (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL UNIQUE,
		release_year INTEGER,
		genre TEXT,
		-- Store the cast as JSON text
		actors_json TEXT,
		image_url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT NOT NULL PRIMARY KEY,
		movie_id TEXT NOT NULL,
		username TEXT NOT NULL,
		rating REAL NOT NULL,
		review_text TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_movie_id ON reviews(movie_id);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
