// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/treasure-hunt/auth"
	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database, so tests never share state.
//
// The pool is capped at one connection: a shared-cache in-memory database
// is dropped when its last connection closes, and a single connection also
// keeps the tests honest about finishing row iteration before issuing the
// next query.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKey:     "test-admin-key",
		TokenSalt:    "test-token-salt",
	}
}

// CreateTestTeam inserts a team and returns its ID and team token
func CreateTestTeam(t *testing.T, conn *sql.DB, cfg cliparse.Config, username, teamName string) (teamID, teamToken string) {
	t.Helper()

	teamID = uuid.NewString()
	teamToken = auth.GenerateTeamToken(teamID, cfg.TokenSalt)
	hash := auth.HashPassword("test-password", cfg.TokenSalt)

	_, err := conn.Exec(`
		INSERT INTO teams (id, username, password_hash, team_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, teamID, username, hash, teamName, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}

	return teamID, teamToken
}

// SeedSubmission writes a submission row (plus a history entry) directly,
// bypassing the state machine, for tests that need a preexisting state.
func SeedSubmission(t *testing.T, conn *sql.DB, teamID string, answers []string, isFinal bool, submittedAt time.Time) {
	t.Helper()

	encoded, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("Failed to encode answers: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO team_submissions (team_id, answers, is_final, submitted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id) DO UPDATE SET
		    answers = excluded.answers,
		    is_final = excluded.is_final,
		    submitted_at = excluded.submitted_at
	`, teamID, string(encoded), isFinal, submittedAt)
	if err != nil {
		t.Fatalf("Failed to seed submission: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO submission_history (id, team_id, answers, is_final, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), teamID, string(encoded), isFinal, submittedAt)
	if err != nil {
		t.Fatalf("Failed to seed submission history: %v", err)
	}
}

// SetTestPassKey appends a pass key record and returns its ID
func SetTestPassKey(t *testing.T, conn *sql.DB, value string, createdAt time.Time) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO pass_keys (id, pass_key, created_at)
		VALUES ($1, $2, $3)
	`, id, value, createdAt)
	if err != nil {
		t.Fatalf("Failed to set test pass key: %v", err)
	}

	return id
}

// Answers builds a full answer set from a string, one character per slot.
// Shorter strings leave the remaining slots empty.
func Answers(s string) []string {
	answers := make([]string, 10)
	for i, r := range []rune(s) {
		if i >= len(answers) {
			break
		}
		answers[i] = string(r)
	}
	return answers
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
