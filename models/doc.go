// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateTeamRequest: username, password, team_name
  - UpdateTeamRequest: username, team_name (partial)
  - TeamLoginRequest: username, password
  - SetAnswerRequest: answer (single character, empty clears)
  - SaveDraftRequest: answers (all 10 slots)
  - SubmitFinalRequest: answers (all 10 slots, none empty)
  - SetPassKeyRequest: pass_key (exactly 10 characters)

# Response Types

Types for JSON responses:

  - CreateTeamResponse: team_id
  - TeamLoginResponse: team_id, team_name, team_token
  - SubmissionResponse: submission, message
  - SetPassKeyResponse: key_id, created_at
  - PassKeyResponse: pass_key, created_at
  - ProgressResponse: answered, progress_percent, submission, report
  - ReportsResponse: generated_at, stats, rows
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Team: contest participant identity
  - TeamSummary: team plus submission digest (admin list view)
  - Submission: a team's current 10-slot answer set with finality flag
  - PassKey: one immutable reference key record
  - TeamReport: derived leaderboard row, recomputed on demand
  - ReportStats: dashboard aggregates over the leaderboard

# Constants

Contest dimensions:

	AnswerCount   = 10
	PassKeyLength = 10
*/
package models
