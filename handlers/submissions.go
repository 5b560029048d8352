// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/treasure-hunt/auth"
	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/middleware"
	"github.com/danielhkuo/treasure-hunt/models"
)

type SubmissionHandler struct {
	subs  *contest.Submissions
	board *contest.Leaderboard
	cfg   cliparse.Config
}

func NewSubmissionHandler(subs *contest.Submissions, board *contest.Leaderboard, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{subs: subs, board: board, cfg: cfg}
}

// authorizeTeam checks the request may act for the team: a valid
// X-Team-Token for this team, or the admin key. Writes the 401 itself.
func (h *SubmissionHandler) authorizeTeam(w http.ResponseWriter, r *http.Request, teamID string) bool {
	if auth.ValidateTeamToken(teamID, r.Header.Get("X-Team-Token"), h.cfg.TokenSalt) == nil {
		return true
	}
	if auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey) == nil {
		return true
	}
	middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid team token")
	return false
}

// SetAnswer handles PUT /teams/{id}/answers/{question}
//
// The autosave endpoint: writes one answer slot, leaving the rest of the
// draft alone. An empty answer clears the slot.
func (h *SubmissionHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id is required")
		return
	}
	if !h.authorizeTeam(w, r, teamID) {
		return
	}

	question, err := strconv.Atoi(r.PathValue("question"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question must be a number")
		return
	}

	var req models.SetAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sub, err := h.subs.SetAnswer(teamID, question, req.Answer)
	if err != nil {
		respondContestError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionResponse{
		Submission: sub,
	})
}

// SaveDraft handles PUT /teams/{id}/submission
func (h *SubmissionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id is required")
		return
	}
	if !h.authorizeTeam(w, r, teamID) {
		return
	}

	var req models.SaveDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sub, err := h.subs.SaveDraft(teamID, req.Answers)
	if err != nil {
		respondContestError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionResponse{
		Submission: sub,
		Message:    "Draft saved",
	})
}

// SubmitFinal handles POST /teams/{id}/submission/final
//
// Seals the submission. Every slot must be filled, and a final submission
// can never be changed afterwards.
func (h *SubmissionHandler) SubmitFinal(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id is required")
		return
	}
	if !h.authorizeTeam(w, r, teamID) {
		return
	}

	var req models.SubmitFinalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sub, err := h.subs.SubmitFinal(teamID, req.Answers)
	if err != nil {
		respondContestError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionResponse{
		Submission: sub,
		Message:    "Final submission recorded",
	})
}

// GetCurrent handles GET /teams/{id}/submission
//
// A team that has never saved gets an empty draft with ten slots.
func (h *SubmissionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id is required")
		return
	}
	if !h.authorizeTeam(w, r, teamID) {
		return
	}

	sub, err := h.subs.Current(teamID)
	if err != nil {
		respondContestError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionResponse{
		Submission: sub,
	})
}

// GetProgress handles GET /teams/{id}/progress
//
// The team's own view: answered count, completion percent, the current
// submission, and its leaderboard row once the submission is final.
func (h *SubmissionHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")
	if teamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id is required")
		return
	}
	if !h.authorizeTeam(w, r, teamID) {
		return
	}

	sub, err := h.subs.Current(teamID)
	if err != nil {
		respondContestError(w, err)
		return
	}

	answered := contest.AnsweredCount(sub.Answers)
	resp := models.ProgressResponse{
		Answered:        answered,
		ProgressPercent: float64(answered) / float64(models.AnswerCount) * 100,
		Submission:      &sub,
	}

	if sub.IsFinal {
		rows, _, err := h.board.Build()
		if err != nil {
			respondContestError(w, err)
			return
		}
		for i := range rows {
			if rows[i].TeamID == teamID {
				resp.Report = &rows[i]
				break
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
