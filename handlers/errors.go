// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/middleware"
)

// respondContestError maps core sentinel errors onto HTTP responses.
// Storage failures are logged and hidden behind a generic message.
func respondContestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contest.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contest.ErrIncomplete):
		middleware.ErrorResponse(w, http.StatusBadRequest, "All answers are required before final submission")
	case errors.Is(err, contest.ErrFinalized):
		middleware.ErrorResponse(w, http.StatusConflict, "Submission is already final")
	case errors.Is(err, contest.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Team not found")
	default:
		slog.Error("storage error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
