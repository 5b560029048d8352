// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the treasure hunt API server.

Teams race to decode a 10-character answer key. Each team saves draft
answers as it goes, then submits a final answer set, which is scored
against an admin-set pass key to build a live leaderboard.

# Starting the Server

The server requires environment variables (a .env file works too) or CLI
flags for configuration:

	DATABASE_URL=hunt.db ADMIN_KEY=... TOKEN_SALT=... go run main.go

Or with flags:

	go run main.go -p 3419 -t sqlite -d hunt.db --admin-key ... --token-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY (--admin-key): Secret for the admin endpoints
  - TOKEN_SALT (--token-salt): Secret for team tokens and password hashes

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - contest: Core domain (submissions, pass keys, scoring, leaderboard)
  - handlers: HTTP request handlers (teams, submissions, passkey, reports)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
