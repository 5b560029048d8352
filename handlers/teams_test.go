// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/models"
	"github.com/danielhkuo/treasure-hunt/testutil"
)

// handlerEnv bundles the wired contest core for handler tests.
type handlerEnv struct {
	conn     *sql.DB
	cfg      cliparse.Config
	store    *contest.SQLStore
	notifier *contest.Notifier
	subs     *contest.Submissions
	keys     *contest.PassKeys
	board    *contest.Leaderboard
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := contest.NewSQLStore(conn)
	notifier := contest.NewNotifier()

	return &handlerEnv{
		conn:     conn,
		cfg:      cfg,
		store:    store,
		notifier: notifier,
		subs:     contest.NewSubmissions(store, notifier),
		keys:     contest.NewPassKeys(store, notifier),
		board:    contest.NewLeaderboard(store),
	}
}

func adminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Admin-Key": cfg.AdminKey}
}

func TestCreateTeam(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)

	req := testutil.MakeRequest("POST", "/teams", models.CreateTeamRequest{
		Username: "seekers",
		Password: "hunter2secret",
		TeamName: "The Seekers",
	}, adminHeaders(env.cfg))
	w := httptest.NewRecorder()

	h.CreateTeam(w, req)

	testutil.AssertStatus(t, w, 201)

	var resp models.CreateTeamResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TeamID == "" {
		t.Fatal("Expected a team_id")
	}

	// Team is queryable
	team, err := env.store.GetTeam(resp.TeamID)
	if err != nil {
		t.Fatalf("GetTeam() error: %v", err)
	}
	if team.Username != "seekers" || team.TeamName != "The Seekers" {
		t.Errorf("Stored team = %+v", team)
	}
}

func TestCreateTeam_RequiresAdminKey(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)

	req := testutil.MakeRequest("POST", "/teams", models.CreateTeamRequest{
		Username: "seekers",
		Password: "hunter2secret",
		TeamName: "The Seekers",
	}, map[string]string{"X-Admin-Key": "wrong-key"})
	w := httptest.NewRecorder()

	h.CreateTeam(w, req)

	testutil.AssertStatus(t, w, 401)
}

func TestCreateTeam_Validation(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)

	testCases := []struct {
		name string
		req  models.CreateTeamRequest
	}{
		{"short username", models.CreateTeamRequest{Username: "x", Password: "hunter2secret", TeamName: "T"}},
		{"short password", models.CreateTeamRequest{Username: "seekers", Password: "abc", TeamName: "T"}},
		{"missing team name", models.CreateTeamRequest{Username: "seekers", Password: "hunter2secret"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/teams", tc.req, adminHeaders(env.cfg))
			w := httptest.NewRecorder()

			h.CreateTeam(w, req)

			testutil.AssertStatus(t, w, 400)
		})
	}
}

func TestCreateTeam_DuplicateUsername(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)
	testutil.CreateTestTeam(t, env.conn, env.cfg, "seekers", "The Seekers")

	req := testutil.MakeRequest("POST", "/teams", models.CreateTeamRequest{
		Username: "seekers",
		Password: "hunter2secret",
		TeamName: "Imposters",
	}, adminHeaders(env.cfg))
	w := httptest.NewRecorder()

	h.CreateTeam(w, req)

	testutil.AssertStatus(t, w, 409)
}

func TestListTeams(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)

	idleID, _ := testutil.CreateTestTeam(t, env.conn, env.cfg, "idle", "Idle Team")
	finalID, _ := testutil.CreateTestTeam(t, env.conn, env.cfg, "done", "Done Team")
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testutil.SeedSubmission(t, env.conn, finalID, testutil.Answers("ABCDEFGHIJ"), true, at)
	testutil.SetTestPassKey(t, env.conn, "ABCDEFGHIJ", at)

	req := testutil.MakeRequest("GET", "/teams", nil, adminHeaders(env.cfg))
	w := httptest.NewRecorder()

	h.ListTeams(w, req)

	testutil.AssertStatus(t, w, 200)

	var summaries []models.TeamSummary
	testutil.AssertJSON(t, w, &summaries)
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 teams, got %d", len(summaries))
	}

	byID := map[string]models.TeamSummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}

	idle := byID[idleID]
	if idle.SubmissionCount != 0 || idle.IsFinal || idle.Accuracy != nil {
		t.Errorf("Idle team summary = %+v", idle)
	}

	done := byID[finalID]
	if !done.IsFinal || done.SubmissionCount != 1 {
		t.Errorf("Final team summary = %+v", done)
	}
	if done.Accuracy == nil || *done.Accuracy != 100 {
		t.Errorf("Expected accuracy 100 for final team, got %v", done.Accuracy)
	}
}

func TestUpdateTeam(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)
	teamID, _ := testutil.CreateTestTeam(t, env.conn, env.cfg, "seekers", "The Seekers")

	req := testutil.MakeRequest("PUT", "/teams/"+teamID, models.UpdateTeamRequest{
		TeamName: "The Finders",
	}, adminHeaders(env.cfg))
	req.SetPathValue("id", teamID)
	w := httptest.NewRecorder()

	h.UpdateTeam(w, req)

	testutil.AssertStatus(t, w, 200)

	team, err := env.store.GetTeam(teamID)
	if err != nil {
		t.Fatalf("GetTeam() error: %v", err)
	}
	if team.TeamName != "The Finders" {
		t.Errorf("Expected renamed team, got %q", team.TeamName)
	}
	if team.Username != "seekers" {
		t.Errorf("Username must be untouched, got %q", team.Username)
	}
}

func TestUpdateTeam_UsernameConflict(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)
	teamID, _ := testutil.CreateTestTeam(t, env.conn, env.cfg, "seekers", "The Seekers")
	testutil.CreateTestTeam(t, env.conn, env.cfg, "finders", "The Finders")

	req := testutil.MakeRequest("PUT", "/teams/"+teamID, models.UpdateTeamRequest{
		Username: "finders",
	}, adminHeaders(env.cfg))
	req.SetPathValue("id", teamID)
	w := httptest.NewRecorder()

	h.UpdateTeam(w, req)

	testutil.AssertStatus(t, w, 409)
}

func TestDeleteTeam(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)
	teamID, _ := testutil.CreateTestTeam(t, env.conn, env.cfg, "seekers", "The Seekers")
	testutil.SeedSubmission(t, env.conn, teamID, testutil.Answers("ABCDE"), false, time.Now().UTC())

	req := testutil.MakeRequest("DELETE", "/teams/"+teamID, nil, adminHeaders(env.cfg))
	req.SetPathValue("id", teamID)
	w := httptest.NewRecorder()

	h.DeleteTeam(w, req)

	testutil.AssertStatus(t, w, 200)

	if _, err := env.store.GetTeam(teamID); err == nil {
		t.Error("Expected team to be gone")
	}
}

func TestDeleteTeam_NotFound(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)

	req := testutil.MakeRequest("DELETE", "/teams/missing", nil, adminHeaders(env.cfg))
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	h.DeleteTeam(w, req)

	testutil.AssertStatus(t, w, 404)
}

func TestLogin(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)
	teamID, teamToken := testutil.CreateTestTeam(t, env.conn, env.cfg, "seekers", "The Seekers")

	req := testutil.MakeRequest("POST", "/login", models.TeamLoginRequest{
		Username: "seekers",
		Password: "test-password",
	}, nil)
	w := httptest.NewRecorder()

	h.Login(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.TeamLoginResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TeamID != teamID {
		t.Errorf("Expected team_id %q, got %q", teamID, resp.TeamID)
	}
	if resp.TeamToken != teamToken {
		t.Errorf("Expected the deterministic team token")
	}
	if resp.TeamName != "The Seekers" {
		t.Errorf("Expected team_name, got %q", resp.TeamName)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewTeamHandler(env.store, env.keys, env.cfg)
	testutil.CreateTestTeam(t, env.conn, env.cfg, "seekers", "The Seekers")

	testCases := []struct {
		name string
		req  models.TeamLoginRequest
	}{
		{"wrong password", models.TeamLoginRequest{Username: "seekers", Password: "wrong"}},
		{"unknown username", models.TeamLoginRequest{Username: "ghost", Password: "test-password"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/login", tc.req, nil)
			w := httptest.NewRecorder()

			h.Login(w, req)

			testutil.AssertStatus(t, w, 401)
		})
	}
}
