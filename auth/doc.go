// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token utilities.

# Team Tokens

Team tokens use HMAC-SHA256 to create deterministic, verifiable tokens:

	token := auth.GenerateTeamToken(teamID, salt)
	err := auth.ValidateTeamToken(teamID, token, salt)

The token is URL-safe base64 encoded without padding. Since it's
deterministic, the same team ID and salt always produce the same token.
This allows validation without storing the token in the database.

# Password Hashing

Team passwords are stored as salted HMAC-SHA256 hashes:

	hash := auth.HashPassword(password, salt)
	ok := auth.VerifyPassword(password, salt, storedHash)

Verification is a constant-time recompute-and-compare.

# Admin Key

The admin key is configured via ADMIN_KEY and checked in constant time:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)
*/
package auth
