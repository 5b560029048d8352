// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import "errors"

// Sentinel errors returned by the contest core. Callers discriminate with
// errors.Is; handlers map them onto HTTP status codes.
var (
	// ErrValidation indicates malformed input (bad answer slot, bad index,
	// wrong pass key length).
	ErrValidation = errors.New("validation failed")

	// ErrFinalized indicates a write against a submission that is already
	// final. Finality is terminal.
	ErrFinalized = errors.New("submission already final")

	// ErrIncomplete indicates a final submission with one or more empty
	// answer slots. Nothing is persisted.
	ErrIncomplete = errors.New("submission incomplete")

	// ErrNotFound indicates a missing team or record.
	ErrNotFound = errors.New("not found")

	// ErrStorage wraps any database failure. The underlying driver error is
	// chained behind it.
	ErrStorage = errors.New("storage failure")
)
