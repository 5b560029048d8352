// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrInvalidTeamToken = errors.New("invalid team token")
)

// HashPassword creates a one-way salted hash of a team password.
// Deterministic, so login verification is a recompute-and-compare.
func HashPassword(password, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPassword checks a candidate password against a stored hash in
// constant time.
func VerifyPassword(password, salt, storedHash string) bool {
	return hmac.Equal([]byte(HashPassword(password, salt)), []byte(storedHash))
}

// GenerateTeamToken creates an HMAC-based session token for a team.
// This is deterministic and verifiable, so validation does not need a
// session table - the same team ID and salt always produce the same token.
func GenerateTeamToken(teamID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("team:" + teamID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateTeamToken checks if the provided token is valid for the team
func ValidateTeamToken(teamID, token, salt string) error {
	expected := GenerateTeamToken(teamID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidTeamToken
	}
	return nil
}

// ValidateAdminKey compares the provided admin key against the configured
// one in constant time.
func ValidateAdminKey(provided, configured string) error {
	if configured == "" || !hmac.Equal([]byte(provided), []byte(configured)) {
		return ErrInvalidAdminKey
	}
	return nil
}
