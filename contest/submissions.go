// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/treasure-hunt/models"
)

// Submissions is the submission state machine: absent, then any number of
// drafts, then final (terminal). All writes for one team are serialized
// through a per-team mutex so concurrent autosaves read-modify-write
// cleanly; different teams proceed in parallel.
type Submissions struct {
	store    Store
	notifier *Notifier

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSubmissions(store Store, notifier *Notifier) *Submissions {
	return &Submissions{
		store:    store,
		notifier: notifier,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *Submissions) teamLock(teamID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[teamID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[teamID] = lock
	}
	return lock
}

// SetAnswer writes a single answer slot, the unit of autosave. The answer
// is one character, or empty to clear the slot. The rest of the current
// draft is preserved.
func (s *Submissions) SetAnswer(teamID string, question int, answer string) (models.Submission, error) {
	if question < 0 || question >= models.AnswerCount {
		return models.Submission{}, fmt.Errorf("question index %d out of range: %w", question, ErrValidation)
	}
	if utf8.RuneCountInString(answer) > 1 {
		return models.Submission{}, fmt.Errorf("answer must be a single character: %w", ErrValidation)
	}

	team, err := s.store.GetTeam(teamID)
	if err != nil {
		return models.Submission{}, err
	}

	lock := s.teamLock(teamID)
	lock.Lock()
	defer lock.Unlock()

	sub, ok, err := s.store.GetSubmission(teamID)
	if err != nil {
		return models.Submission{}, err
	}
	if !ok {
		sub = emptySubmission(team)
	}
	if sub.IsFinal {
		return models.Submission{}, fmt.Errorf("team %s: %w", teamID, ErrFinalized)
	}

	sub.Answers[question] = answer
	sub.SubmittedAt = time.Now().UTC()

	if err := s.store.SaveSubmission(sub); err != nil {
		return models.Submission{}, err
	}

	slog.Info("answer saved", "team_id", teamID, "question", question)
	s.notifier.Publish(EventSubmissions)
	return sub, nil
}

// SaveDraft replaces the whole answer set, keeping the submission a draft.
func (s *Submissions) SaveDraft(teamID string, answers []string) (models.Submission, error) {
	normalized, err := normalizeAnswers(answers)
	if err != nil {
		return models.Submission{}, err
	}
	return s.save(teamID, normalized, false)
}

// SubmitFinal replaces the answer set and seals the submission. Every slot
// must be filled; an incomplete set is rejected without persisting.
func (s *Submissions) SubmitFinal(teamID string, answers []string) (models.Submission, error) {
	normalized, err := normalizeAnswers(answers)
	if err != nil {
		return models.Submission{}, err
	}
	if AnsweredCount(normalized) < models.AnswerCount {
		return models.Submission{}, fmt.Errorf("all %d answers required: %w", models.AnswerCount, ErrIncomplete)
	}
	return s.save(teamID, normalized, true)
}

func (s *Submissions) save(teamID string, answers []string, final bool) (models.Submission, error) {
	team, err := s.store.GetTeam(teamID)
	if err != nil {
		return models.Submission{}, err
	}

	lock := s.teamLock(teamID)
	lock.Lock()
	defer lock.Unlock()

	current, ok, err := s.store.GetSubmission(teamID)
	if err != nil {
		return models.Submission{}, err
	}
	if ok && current.IsFinal {
		return models.Submission{}, fmt.Errorf("team %s: %w", teamID, ErrFinalized)
	}

	sub := models.Submission{
		TeamID:      team.ID,
		TeamName:    team.TeamName,
		Answers:     answers,
		IsFinal:     final,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.SaveSubmission(sub); err != nil {
		return models.Submission{}, err
	}

	slog.Info("submission saved", "team_id", teamID, "is_final", final)
	s.notifier.Publish(EventSubmissions)
	return sub, nil
}

// Current returns the team's current submission. A team that has never
// saved gets an empty draft rather than an error, so clients always have
// ten slots to render.
func (s *Submissions) Current(teamID string) (models.Submission, error) {
	team, err := s.store.GetTeam(teamID)
	if err != nil {
		return models.Submission{}, err
	}

	sub, ok, err := s.store.GetSubmission(teamID)
	if err != nil {
		return models.Submission{}, err
	}
	if !ok {
		return emptySubmission(team), nil
	}
	return sub, nil
}

func emptySubmission(team models.Team) models.Submission {
	return models.Submission{
		TeamID:   team.ID,
		TeamName: team.TeamName,
		Answers:  make([]string, models.AnswerCount),
	}
}

// normalizeAnswers validates shape and returns a defensive copy. Exactly
// AnswerCount slots, each empty or a single character.
func normalizeAnswers(answers []string) ([]string, error) {
	if len(answers) != models.AnswerCount {
		return nil, fmt.Errorf("expected %d answer slots, got %d: %w", models.AnswerCount, len(answers), ErrValidation)
	}
	out := make([]string, models.AnswerCount)
	for i, a := range answers {
		if utf8.RuneCountInString(a) > 1 {
			return nil, fmt.Errorf("answer %d must be a single character: %w", i, ErrValidation)
		}
		out[i] = a
	}
	return out, nil
}
