// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/treasure-hunt/auth"
	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/middleware"
	"github.com/danielhkuo/treasure-hunt/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already open for the REST surface; mirror that here.
		return true
	},
}

type LiveHandler struct {
	board    *contest.Leaderboard
	notifier *contest.Notifier
	cfg      cliparse.Config
}

func NewLiveHandler(board *contest.Leaderboard, notifier *contest.Notifier, cfg cliparse.Config) *LiveHandler {
	return &LiveHandler{board: board, notifier: notifier, cfg: cfg}
}

// StreamReports handles GET /reports/live (admin, websocket)
//
// Pushes a full ReportsResponse immediately on connect and again after
// every submission or pass key change, so the dashboard never polls.
// Browsers can't set custom headers on websocket requests, so the admin
// key is also accepted as a ?key= query parameter.
func (h *LiveHandler) StreamReports(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		adminKey = r.URL.Query().Get("key")
	}
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket", "error", err)
		return
	}
	defer ws.Close()

	events, cancel := h.notifier.Subscribe()
	defer cancel()

	// Drain the read side so client close frames are processed; anything
	// the client sends is ignored.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	slog.Info("live reports stream opened", "remote", middleware.GetClientIP(r))

	if err := h.writeReports(ws); err != nil {
		return
	}

	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			if err := h.writeReports(ws); err != nil {
				slog.Info("live reports stream closed", "error", err)
				return
			}
		case <-done:
			slog.Info("live reports stream closed by client")
			return
		}
	}
}

func (h *LiveHandler) writeReports(ws *websocket.Conn) error {
	rows, stats, err := h.board.Build()
	if err != nil {
		slog.Error("failed to build live reports", "error", err)
		return err
	}

	return ws.WriteJSON(models.ReportsResponse{
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Rows:        rows,
	})
}
