package database

import (
	"database/sql"
	"fmt"
)

func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name_native TEXT NOT NULL,
			name_english TEXT NOT NULL UNIQUE,
			biography TEXT,
			era TEXT NOT NULL,
			image_ref TEXT,
			source_type TEXT NOT NULL
		);`,
		// title_english is unique store-wide, not per author. Two distinct
		// works with the same title collapse into one row; the first writer
		// keeps it. Revisit with a UNIQUE(author_id, title_english) key if
		// that ever bites.
		`CREATE TABLE IF NOT EXISTS works (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id INTEGER NOT NULL REFERENCES authors(id),
			title_native TEXT NOT NULL,
			title_english TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			synopsis TEXT,
			genres TEXT -- JSON array as text
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			token_version INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL REFERENCES users(id),
			work_id INTEGER NOT NULL REFERENCES works(id),
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			text TEXT,
			date_read TEXT,
			date_logged TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, work_id)
		);`,
		`CREATE TABLE IF NOT EXISTS reading_list (
			user_id TEXT NOT NULL REFERENCES users(id),
			work_id INTEGER NOT NULL REFERENCES works(id),
			status TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, work_id)
		);`,
	}

	for i, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate stmt %d: %w", i, err)
		}
	}
	return nil
}
