// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/treasure-hunt/cliparse"
	"github.com/danielhkuo/treasure-hunt/contest"
	"github.com/danielhkuo/treasure-hunt/handlers"
	"github.com/danielhkuo/treasure-hunt/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the contest core
	store := contest.NewSQLStore(db)
	notifier := contest.NewNotifier()
	subs := contest.NewSubmissions(store, notifier)
	keys := contest.NewPassKeys(store, notifier)
	board := contest.NewLeaderboard(store)

	// Initialize handlers
	teamHandler := handlers.NewTeamHandler(store, keys, cfg)
	submissionHandler := handlers.NewSubmissionHandler(subs, board, cfg)
	passKeyHandler := handlers.NewPassKeyHandler(keys, cfg)
	reportsHandler := handlers.NewReportsHandler(board, cfg)
	liveHandler := handlers.NewLiveHandler(board, notifier, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Team management (admin operations)
	mux.HandleFunc("POST /teams", middleware.WithLogging(teamHandler.CreateTeam))
	mux.HandleFunc("GET /teams", middleware.WithLogging(teamHandler.ListTeams))
	mux.HandleFunc("PUT /teams/{id}", middleware.WithLogging(teamHandler.UpdateTeam))
	mux.HandleFunc("DELETE /teams/{id}", middleware.WithLogging(teamHandler.DeleteTeam))

	// Team login (public)
	mux.HandleFunc("POST /login", middleware.WithLogging(teamHandler.Login))

	// Submission operations (team token)
	mux.HandleFunc("PUT /teams/{id}/answers/{question}", middleware.WithLogging(submissionHandler.SetAnswer))
	mux.HandleFunc("PUT /teams/{id}/submission", middleware.WithLogging(submissionHandler.SaveDraft))
	mux.HandleFunc("POST /teams/{id}/submission/final", middleware.WithLogging(submissionHandler.SubmitFinal))
	mux.HandleFunc("GET /teams/{id}/submission", middleware.WithLogging(submissionHandler.GetCurrent))
	mux.HandleFunc("GET /teams/{id}/progress", middleware.WithLogging(submissionHandler.GetProgress))

	// Pass key management (admin operations)
	mux.HandleFunc("POST /passkey", middleware.WithLogging(passKeyHandler.SetPassKey))
	mux.HandleFunc("GET /passkey", middleware.WithLogging(passKeyHandler.GetPassKey))

	// Reports (admin operations)
	mux.HandleFunc("GET /reports", middleware.WithLogging(reportsHandler.GetReports))
	mux.HandleFunc("GET /reports/live", liveHandler.StreamReports)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("treasure-hunt API v1"))
	})

	return mux
}
