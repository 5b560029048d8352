// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/treasure-hunt/auth"
	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/middleware"
	"github.com/danielhkuo/treasure-hunt/models"
)

type PassKeyHandler struct {
	keys *contest.PassKeys
	cfg  cliparse.Config
}

func NewPassKeyHandler(keys *contest.PassKeys, cfg cliparse.Config) *PassKeyHandler {
	return &PassKeyHandler{keys: keys, cfg: cfg}
}

// SetPassKey handles POST /passkey (admin)
//
// Appends a new reference key record; prior records are kept as an audit
// trail. Every leaderboard read from here on scores against the new key.
func (h *PassKeyHandler) SetPassKey(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.SetPassKeyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	key, err := h.keys.Set(req.PassKey)
	if err != nil {
		respondContestError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SetPassKeyResponse{
		KeyID:     key.ID,
		CreatedAt: key.CreatedAt,
	})
}

// GetPassKey handles GET /passkey (admin)
func (h *PassKeyHandler) GetPassKey(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	key, ok, err := h.keys.Current()
	if err != nil {
		respondContestError(w, err)
		return
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "No pass key has been set")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PassKeyResponse{
		PassKey:   key.Value,
		CreatedAt: key.CreatedAt,
	})
}
