// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package contest implements the treasure hunt core: submissions, the
reference pass key, scoring, and the leaderboard.

# Submissions

Each team has one current submission of exactly ten answer slots, moving
through draft saves until it is submitted as final. Finality is terminal.

	subs := contest.NewSubmissions(store, notifier)
	subs.SetAnswer(teamID, 3, "K")          // autosave one slot
	subs.SaveDraft(teamID, answers)         // replace the draft
	subs.SubmitFinal(teamID, answers)       // seal; all slots required

Writes for a single team are serialized; different teams run in parallel.
Every persisted mutation also lands in an append-only history table.

# Pass Keys

The reference key is append-only. The newest record is current; earlier
records stay as an audit trail.

	keys := contest.NewPassKeys(store, notifier)
	keys.Set("ABCDEFGHIJ")

# Scoring and Reports

Score is a pure positional comparison, case-insensitive, out of ten:

	pct := contest.Score(sub.Answers, key.Value)

The leaderboard recomputes on every call, sorted by accuracy descending
with earlier submissions winning ties:

	rows, stats, err := contest.NewLeaderboard(store).Build()

# Change Notifications

A Notifier broadcasts EventSubmissions and EventPassKey after every write,
so live views can refresh without polling. Publish never blocks.

# Errors

The package returns sentinel errors (ErrValidation, ErrFinalized,
ErrIncomplete, ErrNotFound, ErrStorage) wrapped with context; use
errors.Is to discriminate.
*/
package contest
