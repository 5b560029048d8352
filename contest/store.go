// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/treasure-hunt/models"
)

// TeamActivity pairs a team with a digest of its submission history. The
// Submission pointer is nil when the team has never saved anything.
type TeamActivity struct {
	Team            models.Team
	SubmissionCount int
	Submission      *models.Submission
}

// Store is the persistence boundary of the contest core. All methods wrap
// database failures in ErrStorage; lookups of missing rows return
// ErrNotFound (or an ok=false second return where absence is routine).
type Store interface {
	CreateTeam(team models.Team, passwordHash string) error
	GetTeam(teamID string) (models.Team, error)
	GetTeamByUsername(username string) (models.Team, string, error)
	ListTeamActivity() ([]TeamActivity, error)
	UpdateTeam(team models.Team) error
	DeleteTeam(teamID string) error

	SaveSubmission(sub models.Submission) error
	GetSubmission(teamID string) (models.Submission, bool, error)
	ListSubmissions() ([]models.Submission, error)

	AppendPassKey(key models.PassKey) error
	CurrentPassKey() (models.PassKey, bool, error)
}

// SQLStore implements Store on database/sql. The SQL sticks to the dialect
// shared by PostgreSQL and SQLite: $n placeholders in occurrence order,
// explicit timestamps, ON CONFLICT upserts.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreateTeam(team models.Team, passwordHash string) error {
	_, err := s.db.Exec(
		`INSERT INTO teams (id, username, password_hash, team_name, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		team.ID, team.Username, passwordHash, team.TeamName, team.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert team: %w: %w", ErrStorage, err)
	}
	return nil
}

func (s *SQLStore) GetTeam(teamID string) (models.Team, error) {
	var team models.Team
	err := s.db.QueryRow(
		`SELECT id, username, team_name, created_at FROM teams WHERE id = $1`,
		teamID,
	).Scan(&team.ID, &team.Username, &team.TeamName, &team.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	if err != nil {
		return models.Team{}, fmt.Errorf("query team: %w: %w", ErrStorage, err)
	}
	return team, nil
}

func (s *SQLStore) GetTeamByUsername(username string) (models.Team, string, error) {
	var team models.Team
	var hash string
	err := s.db.QueryRow(
		`SELECT id, username, password_hash, team_name, created_at
		 FROM teams WHERE username = $1`,
		username,
	).Scan(&team.ID, &team.Username, &hash, &team.TeamName, &team.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, "", fmt.Errorf("username %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return models.Team{}, "", fmt.Errorf("query team by username: %w: %w", ErrStorage, err)
	}
	return team, hash, nil
}

func (s *SQLStore) ListTeamActivity() ([]TeamActivity, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.username, t.team_name, t.created_at,
		        (SELECT COUNT(*) FROM submission_history h WHERE h.team_id = t.id),
		        s.answers, s.is_final, s.submitted_at
		 FROM teams t
		 LEFT JOIN team_submissions s ON s.team_id = t.id
		 ORDER BY t.created_at ASC, t.id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query team activity: %w: %w", ErrStorage, err)
	}
	defer rows.Close()

	var activity []TeamActivity
	for rows.Next() {
		var a TeamActivity
		var answers sql.NullString
		var isFinal sql.NullBool
		var submittedAt sql.NullTime
		err := rows.Scan(
			&a.Team.ID, &a.Team.Username, &a.Team.TeamName, &a.Team.CreatedAt,
			&a.SubmissionCount, &answers, &isFinal, &submittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan team activity: %w: %w", ErrStorage, err)
		}
		if answers.Valid {
			decoded, err := decodeAnswers(answers.String)
			if err != nil {
				return nil, err
			}
			a.Submission = &models.Submission{
				TeamID:      a.Team.ID,
				TeamName:    a.Team.TeamName,
				Answers:     decoded,
				IsFinal:     isFinal.Bool,
				SubmittedAt: submittedAt.Time,
			}
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team activity: %w: %w", ErrStorage, err)
	}
	return activity, nil
}

func (s *SQLStore) UpdateTeam(team models.Team) error {
	result, err := s.db.Exec(
		`UPDATE teams SET username = $1, team_name = $2 WHERE id = $3`,
		team.Username, team.TeamName, team.ID,
	)
	if err != nil {
		return fmt.Errorf("update team: %w: %w", ErrStorage, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team: %w: %w", ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("team %s: %w", team.ID, ErrNotFound)
	}
	return nil
}

// DeleteTeam removes the team and everything it owns. The child deletes are
// explicit rather than relying on ON DELETE CASCADE because SQLite only
// enforces foreign keys when the pragma is enabled.
func (s *SQLStore) DeleteTeam(teamID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete team: %w: %w", ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM submission_history WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("delete history: %w: %w", ErrStorage, err)
	}
	if _, err := tx.Exec(`DELETE FROM team_submissions WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("delete submission: %w: %w", ErrStorage, err)
	}
	result, err := tx.Exec(`DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w: %w", ErrStorage, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete team: %w: %w", ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete team: %w: %w", ErrStorage, err)
	}
	return nil
}

// SaveSubmission upserts the team's current submission and appends an audit
// row to submission_history, atomically.
func (s *SQLStore) SaveSubmission(sub models.Submission) error {
	encoded, err := encodeAnswers(sub.Answers)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save submission: %w: %w", ErrStorage, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO team_submissions (team_id, answers, is_final, submitted_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (team_id) DO UPDATE SET
		     answers = excluded.answers,
		     is_final = excluded.is_final,
		     submitted_at = excluded.submitted_at`,
		sub.TeamID, encoded, sub.IsFinal, sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert submission: %w: %w", ErrStorage, err)
	}

	_, err = tx.Exec(
		`INSERT INTO submission_history (id, team_id, answers, is_final, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), sub.TeamID, encoded, sub.IsFinal, sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("append history: %w: %w", ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save submission: %w: %w", ErrStorage, err)
	}
	return nil
}

func (s *SQLStore) GetSubmission(teamID string) (models.Submission, bool, error) {
	var sub models.Submission
	var encoded string
	err := s.db.QueryRow(
		`SELECT s.team_id, t.team_name, s.answers, s.is_final, s.submitted_at
		 FROM team_submissions s
		 JOIN teams t ON t.id = s.team_id
		 WHERE s.team_id = $1`,
		teamID,
	).Scan(&sub.TeamID, &sub.TeamName, &encoded, &sub.IsFinal, &sub.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, false, nil
	}
	if err != nil {
		return models.Submission{}, false, fmt.Errorf("query submission: %w: %w", ErrStorage, err)
	}
	sub.Answers, err = decodeAnswers(encoded)
	if err != nil {
		return models.Submission{}, false, err
	}
	return sub, true, nil
}

func (s *SQLStore) ListSubmissions() ([]models.Submission, error) {
	rows, err := s.db.Query(
		`SELECT s.team_id, t.team_name, s.answers, s.is_final, s.submitted_at
		 FROM team_submissions s
		 JOIN teams t ON t.id = s.team_id
		 ORDER BY s.submitted_at ASC, s.team_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w: %w", ErrStorage, err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		var encoded string
		err := rows.Scan(&sub.TeamID, &sub.TeamName, &encoded, &sub.IsFinal, &sub.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w: %w", ErrStorage, err)
		}
		sub.Answers, err = decodeAnswers(encoded)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w: %w", ErrStorage, err)
	}
	return subs, nil
}

func (s *SQLStore) AppendPassKey(key models.PassKey) error {
	_, err := s.db.Exec(
		`INSERT INTO pass_keys (id, pass_key, created_at) VALUES ($1, $2, $3)`,
		key.ID, key.Value, key.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pass key: %w: %w", ErrStorage, err)
	}
	return nil
}

// CurrentPassKey returns the record with the latest created_at, breaking
// timestamp ties by highest id so the result is deterministic.
func (s *SQLStore) CurrentPassKey() (models.PassKey, bool, error) {
	var key models.PassKey
	err := s.db.QueryRow(
		`SELECT id, pass_key, created_at FROM pass_keys
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&key.ID, &key.Value, &key.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PassKey{}, false, nil
	}
	if err != nil {
		return models.PassKey{}, false, fmt.Errorf("query pass key: %w: %w", ErrStorage, err)
	}
	return key, true, nil
}

// Answers are stored as a JSON array in a TEXT column so both drivers see
// the same representation.

func encodeAnswers(answers []string) (string, error) {
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w: %w", ErrStorage, err)
	}
	return string(data), nil
}

func decodeAnswers(encoded string) ([]string, error) {
	var answers []string
	if err := json.Unmarshal([]byte(encoded), &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w: %w", ErrStorage, err)
	}
	return answers, nil
}
