// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is restricted to the dialect shared by PostgreSQL and SQLite:
// no server-side timestamp defaults (every insert supplies its own), plain
// TEXT/BOOLEAN/TIMESTAMP column types.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Teams
CREATE TABLE IF NOT EXISTS teams (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    team_name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_teams_username ON teams(username);

-- Current submission, one row per team (latest wins, overwritten in place)
CREATE TABLE IF NOT EXISTS team_submissions (
    team_id TEXT PRIMARY KEY REFERENCES teams(id) ON DELETE CASCADE,
    answers TEXT NOT NULL,
    is_final BOOLEAN NOT NULL DEFAULT FALSE,
    submitted_at TIMESTAMP NOT NULL
);

-- Append-only audit log of every persisted submission mutation
CREATE TABLE IF NOT EXISTS submission_history (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
    answers TEXT NOT NULL,
    is_final BOOLEAN NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_history_team_id ON submission_history(team_id);

-- Pass keys, append-only; the latest created_at (ties: highest id) is current
CREATE TABLE IF NOT EXISTS pass_keys (
    id TEXT PRIMARY KEY,
    pass_key TEXT NOT NULL CHECK (length(pass_key) = 10),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pass_keys_created_at ON pass_keys(created_at);
`
