// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/treasure-hunt/auth"
	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/middleware"
	"github.com/danielhkuo/treasure-hunt/models"
)

type TeamHandler struct {
	store contest.Store
	keys  *contest.PassKeys
	cfg   cliparse.Config
}

func NewTeamHandler(store contest.Store, keys *contest.PassKeys, cfg cliparse.Config) *TeamHandler {
	return &TeamHandler{store: store, keys: keys, cfg: cfg}
}

// CreateTeam handles POST /teams (admin)
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.CreateTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}
	if len(req.Password) < 6 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.TeamName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_name is required")
		return
	}

	// Username must be unique
	_, _, err := h.store.GetTeamByUsername(req.Username)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}
	if !errors.Is(err, contest.ErrNotFound) {
		respondContestError(w, err)
		return
	}

	team := models.Team{
		ID:        uuid.NewString(),
		Username:  req.Username,
		TeamName:  req.TeamName,
		CreatedAt: time.Now().UTC(),
	}
	hash := auth.HashPassword(req.Password, h.cfg.TokenSalt)

	if err := h.store.CreateTeam(team, hash); err != nil {
		respondContestError(w, err)
		return
	}

	slog.Info("team created", "team_id", team.ID, "username", team.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateTeamResponse{
		TeamID: team.ID,
	})
}

// ListTeams handles GET /teams (admin)
//
// Each team comes with a digest of its submission activity: how many
// mutations it has persisted, whether the latest is final, and its accuracy
// once final (and a key is set).
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	activity, err := h.store.ListTeamActivity()
	if err != nil {
		respondContestError(w, err)
		return
	}

	key, keySet, err := h.keys.Current()
	if err != nil {
		respondContestError(w, err)
		return
	}

	summaries := make([]models.TeamSummary, 0, len(activity))
	for _, a := range activity {
		summary := models.TeamSummary{
			Team:            a.Team,
			SubmissionCount: a.SubmissionCount,
		}
		if a.Submission != nil {
			summary.IsFinal = a.Submission.IsFinal
			submittedAt := a.Submission.SubmittedAt
			summary.SubmittedAt = &submittedAt
			if a.Submission.IsFinal && keySet {
				accuracy := contest.Score(a.Submission.Answers, key.Value)
				summary.Accuracy = &accuracy
			}
		}
		summaries = append(summaries, summary)
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// UpdateTeam handles PUT /teams/{id} (admin)
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id is required")
		return
	}

	var req models.UpdateTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" && req.TeamName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nothing to update")
		return
	}

	team, err := h.store.GetTeam(teamID)
	if err != nil {
		respondContestError(w, err)
		return
	}

	if req.Username != "" && req.Username != team.Username {
		if len(req.Username) < 2 || len(req.Username) > 50 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
			return
		}
		existing, _, err := h.store.GetTeamByUsername(req.Username)
		if err == nil && existing.ID != teamID {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		if err != nil && !errors.Is(err, contest.ErrNotFound) {
			respondContestError(w, err)
			return
		}
		team.Username = req.Username
	}
	if req.TeamName != "" {
		team.TeamName = req.TeamName
	}

	if err := h.store.UpdateTeam(team); err != nil {
		respondContestError(w, err)
		return
	}

	slog.Info("team updated", "team_id", teamID)

	middleware.JSONResponse(w, http.StatusOK, team)
}

// DeleteTeam handles DELETE /teams/{id} (admin)
//
// Removes the team along with its submission and history.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id is required")
		return
	}

	if err := h.store.DeleteTeam(teamID); err != nil {
		respondContestError(w, err)
		return
	}

	slog.Info("team deleted", "team_id", teamID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Team deleted",
	})
}

// Login handles POST /login (public)
//
// On success the team gets its token for the team-scoped endpoints. Bad
// username and bad password both return the same 401 so credentials can't
// be probed.
func (h *TeamHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.TeamLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	team, hash, err := h.store.GetTeamByUsername(req.Username)
	if errors.Is(err, contest.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		respondContestError(w, err)
		return
	}

	if !auth.VerifyPassword(req.Password, h.cfg.TokenSalt, hash) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	slog.Info("team logged in", "team_id", team.ID)

	middleware.JSONResponse(w, http.StatusOK, models.TeamLoginResponse{
		TeamID:    team.ID,
		TeamName:  team.TeamName,
		TeamToken: auth.GenerateTeamToken(team.ID, h.cfg.TokenSalt),
	})
}
