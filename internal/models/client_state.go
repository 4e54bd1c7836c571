package models

import "time"

// ClientState is the single local row holding the anonymous identity
// and the run pointers. Only identifiers are persisted, never entity
// bodies; full state is always re-fetched by id.
type ClientState struct {
	ID string `gorm:"primaryKey"`

	// UserID is the anonymous identity, generated once per install.
	UserID string

	// CurrentRunID points at the in-progress run, empty if none.
	CurrentRunID string

	// LastRunID points at a finished-but-unposted run, empty if none.
	// At most one of CurrentRunID/LastRunID is meaningful at a time.
	LastRunID string

	UpdatedAt time.Time
}
