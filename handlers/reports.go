// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/treasure-hunt/auth"
	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/middleware"
	"github.com/danielhkuo/treasure-hunt/models"
)

type ReportsHandler struct {
	board *contest.Leaderboard
	cfg   cliparse.Config
}

func NewReportsHandler(board *contest.Leaderboard, cfg cliparse.Config) *ReportsHandler {
	return &ReportsHandler{board: board, cfg: cfg}
}

// GetReports handles GET /reports (admin)
//
// Recomputes the leaderboard on every call. Rows are sorted by accuracy
// descending, earlier submission winning ties.
func (h *ReportsHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	rows, stats, err := h.board.Build()
	if err != nil {
		respondContestError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReportsResponse{
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Rows:        rows,
	})
}
