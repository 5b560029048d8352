// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the treasure hunt API.

# Handler Types

Each handler is a struct holding its contest-core dependencies and config:

  - TeamHandler: Team management and login
  - SubmissionHandler: Answer autosave, drafts, final submission, progress
  - PassKeyHandler: Reference key management
  - ReportsHandler: Leaderboard snapshot
  - LiveHandler: Leaderboard push over websocket

Handlers are created via constructor functions:

	teamHandler := handlers.NewTeamHandler(store, keys, cfg)

# Submission Lifecycle

Submissions progress from empty draft to final (terminal):

	PUT  /teams/{id}/answers/{question} → SetAnswer (autosave one slot)
	PUT  /teams/{id}/submission         → SaveDraft (replace all slots)
	POST /teams/{id}/submission/final   → SubmitFinal (seal; all slots required)
	GET  /teams/{id}/submission         → GetCurrent
	GET  /teams/{id}/progress           → GetProgress

Team operations require the X-Team-Token header (the admin key also
works, so the dashboard can inspect any team).

# Admin Operations

Team and key management plus reporting require the X-Admin-Key header:

	POST   /teams        → CreateTeam
	GET    /teams        → ListTeams (with submission digests)
	PUT    /teams/{id}   → UpdateTeam
	DELETE /teams/{id}   → DeleteTeam
	POST   /passkey      → SetPassKey (appends; audit trail kept)
	GET    /passkey      → GetPassKey
	GET    /reports      → GetReports
	GET    /reports/live → StreamReports (websocket push on every change)

# Error Mapping

Core sentinel errors map onto status codes in errors.go: validation 400,
incomplete 400, finalized 409, not found 404, storage 500.
*/
package handlers
