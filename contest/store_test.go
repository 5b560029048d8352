// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/treasure-hunt/models"
	"github.com/danielhkuo/treasure-hunt/testutil"
)

func TestSQLStore_TeamRoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewSQLStore(conn)

	team := models.Team{
		ID:        "team-1",
		Username:  "seekers",
		TeamName:  "The Seekers",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.CreateTeam(team, "hash"); err != nil {
		t.Fatalf("CreateTeam() error: %v", err)
	}

	got, err := store.GetTeam("team-1")
	if err != nil {
		t.Fatalf("GetTeam() error: %v", err)
	}
	if got.Username != "seekers" || got.TeamName != "The Seekers" {
		t.Errorf("GetTeam() = %+v", got)
	}

	byName, hash, err := store.GetTeamByUsername("seekers")
	if err != nil {
		t.Fatalf("GetTeamByUsername() error: %v", err)
	}
	if byName.ID != "team-1" || hash != "hash" {
		t.Errorf("GetTeamByUsername() = %+v, hash %q", byName, hash)
	}
}

func TestSQLStore_GetTeam_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewSQLStore(conn)

	if _, err := store.GetTeam("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, _, err := store.GetTeamByUsername("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_UpdateTeam(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := NewSQLStore(conn)

	teamID, _ := testutil.CreateTestTeam(t, conn, cfg, "seekers", "The Seekers")

	err := store.UpdateTeam(models.Team{ID: teamID, Username: "finders", TeamName: "The Finders"})
	if err != nil {
		t.Fatalf("UpdateTeam() error: %v", err)
	}

	got, err := store.GetTeam(teamID)
	if err != nil {
		t.Fatalf("GetTeam() error: %v", err)
	}
	if got.Username != "finders" || got.TeamName != "The Finders" {
		t.Errorf("Expected updated fields, got %+v", got)
	}

	err = store.UpdateTeam(models.Team{ID: "missing", Username: "x", TeamName: "y"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing team, got %v", err)
	}
}

func TestSQLStore_DeleteTeam_Cascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := NewSQLStore(conn)

	teamID, _ := testutil.CreateTestTeam(t, conn, cfg, "seekers", "The Seekers")
	testutil.SeedSubmission(t, conn, teamID, testutil.Answers("ABCDE"), false, time.Now().UTC())

	if err := store.DeleteTeam(teamID); err != nil {
		t.Fatalf("DeleteTeam() error: %v", err)
	}

	if _, err := store.GetTeam(teamID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected team gone, got %v", err)
	}
	for _, table := range []string{"team_submissions", "submission_history"} {
		var count int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE team_id = $1`, teamID).Scan(&count); err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("Expected %s rows deleted, got %d", table, count)
		}
	}

	if err := store.DeleteTeam("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing team, got %v", err)
	}
}

func TestSQLStore_ListTeamActivity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := NewSQLStore(conn)

	idle, _ := testutil.CreateTestTeam(t, conn, cfg, "idle", "Idle Team")
	active, _ := testutil.CreateTestTeam(t, conn, cfg, "active", "Active Team")
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testutil.SeedSubmission(t, conn, active, testutil.Answers("ABCDEFGHIJ"), true, at)

	activity, err := store.ListTeamActivity()
	if err != nil {
		t.Fatalf("ListTeamActivity() error: %v", err)
	}
	if len(activity) != 2 {
		t.Fatalf("Expected 2 teams, got %d", len(activity))
	}

	byID := map[string]TeamActivity{}
	for _, a := range activity {
		byID[a.Team.ID] = a
	}

	if a := byID[idle]; a.Submission != nil || a.SubmissionCount != 0 {
		t.Errorf("Idle team: expected no submission, got %+v", a)
	}
	a := byID[active]
	if a.Submission == nil {
		t.Fatal("Active team: expected a submission")
	}
	if !a.Submission.IsFinal || a.SubmissionCount != 1 {
		t.Errorf("Active team: got %+v", a)
	}
}

func TestSQLStore_ListSubmissions_JoinsTeamName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := NewSQLStore(conn)

	teamID, _ := testutil.CreateTestTeam(t, conn, cfg, "seekers", "The Seekers")
	testutil.SeedSubmission(t, conn, teamID, testutil.Answers("ABCDE"), false, time.Now().UTC())

	subs, err := store.ListSubmissions()
	if err != nil {
		t.Fatalf("ListSubmissions() error: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("Expected 1 submission, got %d", len(subs))
	}
	if subs[0].TeamName != "The Seekers" {
		t.Errorf("Expected team name joined, got %q", subs[0].TeamName)
	}
	if len(subs[0].Answers) != models.AnswerCount {
		t.Errorf("Expected %d slots, got %d", models.AnswerCount, len(subs[0].Answers))
	}
}
