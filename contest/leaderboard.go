// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/treasure-hunt/models"
)

// Leaderboard derives ranked reports from stored submissions. Nothing is
// cached; every Build reads fresh state, so it is safe to call concurrently
// and repeatedly.
type Leaderboard struct {
	store Store
}

func NewLeaderboard(store Store) *Leaderboard {
	return &Leaderboard{store: store}
}

// Build loads the latest submission per team and the current pass key, then
// produces the ranked rows and summary stats.
func (l *Leaderboard) Build() ([]models.TeamReport, models.ReportStats, error) {
	subs, err := l.store.ListSubmissions()
	if err != nil {
		return nil, models.ReportStats{}, err
	}

	key, ok, err := l.store.CurrentPassKey()
	if err != nil {
		return nil, models.ReportStats{}, err
	}
	keyValue := ""
	if ok {
		keyValue = key.Value
	}

	rows, stats := BuildReports(subs, keyValue, time.Now().UTC())
	return rows, stats, nil
}

// BuildReports scores and ranks submissions against the key. Pure: it
// mutates nothing it is given and takes the clock as an argument.
//
// Ordering is accuracy descending, ties broken by earlier submitted_at
// (first to submit wins the tie). Rank is the 1-based position after the
// sort.
func BuildReports(subs []models.Submission, key string, now time.Time) ([]models.TeamReport, models.ReportStats) {
	rows := make([]models.TeamReport, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, models.TeamReport{
			TeamID:      sub.TeamID,
			TeamName:    sub.TeamName,
			AnsweredKey: AnsweredKey(sub.Answers),
			Accuracy:    Score(sub.Answers, key),
			SubmittedAt: sub.SubmittedAt,
			IsFinal:     sub.IsFinal,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Accuracy != rows[j].Accuracy {
			return rows[i].Accuracy > rows[j].Accuracy
		}
		return rows[i].SubmittedAt.Before(rows[j].SubmittedAt)
	})

	stats := models.ReportStats{TotalTeams: len(rows)}
	total := 0.0
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].RankLabel = humanize.Ordinal(i + 1)
		rows[i].SubmittedAgo = humanize.RelTime(rows[i].SubmittedAt, now, "ago", "from now")

		total += rows[i].Accuracy
		if rows[i].Accuracy == 100 {
			stats.PerfectScores++
		}
		if rows[i].Accuracy > stats.TopScore {
			stats.TopScore = rows[i].Accuracy
		}
	}
	if len(rows) > 0 {
		stats.AverageScore = math.Round(total/float64(len(rows))*100) / 100
	}

	return rows, stats
}
