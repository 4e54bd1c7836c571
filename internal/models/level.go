// Package models defines the entities exchanged with the Dareloop
// backend and the rows persisted in the local client store.
package models

import "time"

// Level is immutable reference data describing one challenge.
type Level struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LevelNumber int    `json:"levelNumber"`

	// SecondsLimit is the countdown budget; nil means untimed.
	SecondsLimit *int `json:"secondsLimit,omitempty"`

	// CachedAt is set when the catalog is stored locally.
	CachedAt time.Time `json:"-"`
}

// Timed reports whether this level has a countdown budget.
func (l *Level) Timed() bool {
	return l.SecondsLimit != nil && *l.SecondsLimit > 0
}
