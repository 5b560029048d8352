// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the treasure hunt API.

Routes use Go 1.22+ method and path pattern matching:

	mux.HandleFunc("PUT /teams/{id}/answers/{question}", ...)

NewRouter wires the contest core (store, submission state machine, pass
keys, leaderboard, change notifier) and registers every endpoint:

	mux := router.NewRouter(db, cfg)
	server := http.Server{Handler: middleware.CORS(mux)}

All routes except /reports/live are wrapped with request logging; the
websocket route manages its own connection lifecycle.
*/
package router
