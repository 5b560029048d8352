// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/treasure-hunt/models"
)

// PassKeys manages the reference key. Records are append-only; setting a new
// key never touches prior records, leaving a full audit trail.
type PassKeys struct {
	store    Store
	notifier *Notifier
}

func NewPassKeys(store Store, notifier *Notifier) *PassKeys {
	return &PassKeys{store: store, notifier: notifier}
}

// Set appends a new pass key record and makes it current. The value must be
// exactly models.PassKeyLength characters.
func (p *PassKeys) Set(value string) (models.PassKey, error) {
	if utf8.RuneCountInString(value) != models.PassKeyLength {
		return models.PassKey{}, fmt.Errorf("pass key must be exactly %d characters: %w", models.PassKeyLength, ErrValidation)
	}

	key := models.PassKey{
		ID:        uuid.NewString(),
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.store.AppendPassKey(key); err != nil {
		return models.PassKey{}, err
	}

	slog.Info("pass key set", "key_id", key.ID)
	p.notifier.Publish(EventPassKey)
	return key, nil
}

// Current returns the active key, or ok=false when none has been set.
func (p *PassKeys) Current() (models.PassKey, bool, error) {
	return p.store.CurrentPassKey()
}
