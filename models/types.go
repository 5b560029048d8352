package models

import "time"

// Contest dimensions
const (
	// AnswerCount is the number of questions in the hunt; every submission
	// carries exactly this many answer slots.
	AnswerCount = 10

	// PassKeyLength is the required length of the reference pass key.
	PassKeyLength = 10
)

// Request types

type CreateTeamRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TeamName string `json:"team_name"`
}

type UpdateTeamRequest struct {
	Username string `json:"username,omitempty"`
	TeamName string `json:"team_name,omitempty"`
}

type TeamLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// question_index -> single character (empty string clears the slot)
type SetAnswerRequest struct {
	Answer string `json:"answer"`
}

type SaveDraftRequest struct {
	Answers []string `json:"answers"`
}

type SubmitFinalRequest struct {
	Answers []string `json:"answers"`
}

type SetPassKeyRequest struct {
	PassKey string `json:"pass_key"`
}

// Response types

type CreateTeamResponse struct {
	TeamID string `json:"team_id"`
}

type TeamLoginResponse struct {
	TeamID    string `json:"team_id"`
	TeamName  string `json:"team_name"`
	TeamToken string `json:"team_token"`
}

type SubmissionResponse struct {
	Submission Submission `json:"submission"`
	Message    string     `json:"message,omitempty"`
}

type SetPassKeyResponse struct {
	KeyID     string    `json:"key_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PassKeyResponse struct {
	PassKey   string    `json:"pass_key"`
	CreatedAt time.Time `json:"created_at"`
}

type ProgressResponse struct {
	Answered        int         `json:"answered"`
	ProgressPercent float64     `json:"progress_percent"`
	Submission      *Submission `json:"submission,omitempty"`
	Report          *TeamReport `json:"report,omitempty"`
}

type ReportsResponse struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Stats       ReportStats  `json:"stats"`
	Rows        []TeamReport `json:"rows"`
}

// Domain types

type Team struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	TeamName  string    `json:"team_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamSummary is the admin list view of a team: identity plus a digest of
// its submission activity.
type TeamSummary struct {
	Team
	SubmissionCount int        `json:"submission_count"`
	IsFinal         bool       `json:"is_final"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	Accuracy        *float64   `json:"accuracy_percentage,omitempty"`
}

// Submission is a team's current answer set. Answers always holds exactly
// AnswerCount slots; each slot is empty or a single character. Once IsFinal
// is set the record is terminal.
type Submission struct {
	TeamID      string    `json:"team_id"`
	TeamName    string    `json:"team_name,omitempty"`
	Answers     []string  `json:"answers"`
	IsFinal     bool      `json:"is_final"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PassKey is one immutable reference key record. The record with the latest
// CreatedAt (ties broken by highest ID) is the current key.
type PassKey struct {
	ID        string    `json:"id"`
	Value     string    `json:"pass_key"`
	CreatedAt time.Time `json:"created_at"`
}

// Leaderboard types

// TeamReport is a derived leaderboard row. It is recomputed on every query
// and never stored. AnsweredKey concatenates the non-empty slots in order,
// so it may be shorter than AnswerCount characters.
type TeamReport struct {
	Rank         int       `json:"rank"`
	RankLabel    string    `json:"rank_label"`
	TeamID       string    `json:"team_id"`
	TeamName     string    `json:"team_name"`
	AnsweredKey  string    `json:"answered_key"`
	Accuracy     float64   `json:"accuracy_percentage"`
	SubmittedAt  time.Time `json:"submitted_at"`
	SubmittedAgo string    `json:"submitted_ago"`
	IsFinal      bool      `json:"is_final"`
}

type ReportStats struct {
	TotalTeams    int     `json:"total_teams"`
	PerfectScores int     `json:"perfect_scores"`
	AverageScore  float64 `json:"average_score"`
	TopScore      float64 `json:"top_score"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
