// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL works unchanged on both PostgreSQL and SQLite.

# Tables

The schema includes:

  - teams: Contest participants with login credentials
  - team_submissions: One current submission per team (keyed by team_id)
  - submission_history: Append-only audit log of every persisted mutation
  - pass_keys: Append-only reference key records (latest wins)

# Relationships

	teams 1──1 team_submissions
	teams 1──* submission_history

Foreign keys declare ON DELETE CASCADE, but SQLite only enforces them
behind a pragma, so team deletion also removes children explicitly.

# Indexes

Performance indexes on:

  - teams.username (unique)
  - submission_history.team_id
  - pass_keys.created_at
*/
package db
