package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS surveys (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	questions_json TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_surveys_active ON surveys(is_active);

CREATE TABLE IF NOT EXISTS responses (
	id TEXT PRIMARY KEY,
	survey_id TEXT NOT NULL,
	responses_json TEXT NOT NULL,
	audio_json TEXT,
	submitted_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_responses_survey ON responses(survey_id, submitted_at);
`

// OpenSQLite opens (creating if needed) a SQLite database at path and
// applies the schema. Timestamps are stored as unix nanoseconds.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}
