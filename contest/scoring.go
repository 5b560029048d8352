// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"math"
	"strings"

	"github.com/danielhkuo/treasure-hunt/models"
)

// Score computes the accuracy percentage of an answer set against the
// reference pass key.
//
// Comparison is positional: slot i of answers against character i of the
// key, up to the shorter of the two, case-insensitive (both sides folded to
// upper case). A slot only counts when both sides are non-empty and equal.
// The denominator is always models.AnswerCount, so a short key caps the
// achievable score. An unset key scores 0 for everyone.
//
// The result is rounded to 2 decimal places.
func Score(answers []string, key string) float64 {
	if key == "" {
		return 0
	}

	keyRunes := []rune(strings.ToUpper(key))

	limit := len(answers)
	if len(keyRunes) < limit {
		limit = len(keyRunes)
	}

	correct := 0
	for i := 0; i < limit; i++ {
		if answers[i] == "" {
			continue
		}
		if strings.ToUpper(answers[i]) == string(keyRunes[i]) {
			correct++
		}
	}

	pct := float64(correct) / float64(models.AnswerCount) * 100
	return math.Round(pct*100) / 100
}

// AnsweredKey concatenates the non-empty answer slots in order. Display
// only; scoring stays positional, so this string may be shorter than
// models.AnswerCount characters.
func AnsweredKey(answers []string) string {
	var b strings.Builder
	for _, a := range answers {
		b.WriteString(a)
	}
	return b.String()
}

// AnsweredCount returns how many slots are filled.
func AnsweredCount(answers []string) int {
	n := 0
	for _, a := range answers {
		if a != "" {
			n++
		}
	}
	return n
}
