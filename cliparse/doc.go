// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminKey: Secret admin API key (required)
  - TokenSalt: Secret for team token HMAC (required)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	--admin-key Admin API key
	--token-salt Team token salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → --admin-key
	TOKEN_SALT    → --token-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - ADMIN_KEY must be provided
  - TOKEN_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
