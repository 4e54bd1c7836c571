package db

import (
	"gorm.io/gorm/clause"

	"github.com/google/uuid"

	"github.com/dareloop/dareloop/internal/models"
)

// GetState retrieves the client state row.
func (db *DB) GetState() (*models.ClientState, error) {
	var state models.ClientState
	if err := db.Where("id = ?", stateRowID).First(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// GetOrCreateUserID returns the persistent anonymous identity, creating
// one if it doesn't exist. Idempotent: repeated calls return the same
// value, stable across restarts.
func (db *DB) GetOrCreateUserID() (string, error) {
	state, err := db.GetState()
	if err != nil {
		return "", err
	}
	if state.UserID != "" {
		return state.UserID, nil
	}

	userID := uuid.New().String()
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "updated_at"}),
	}).Create(&models.ClientState{ID: stateRowID, UserID: userID}).Error
	if err != nil {
		return "", err
	}
	return userID, nil
}

// RunPointer returns the current and last run ids. Empty string means
// the pointer is unset.
func (db *DB) RunPointer() (current, last string, err error) {
	state, err := db.GetState()
	if err != nil {
		return "", "", err
	}
	return state.CurrentRunID, state.LastRunID, nil
}

// SetCurrentRun records id as the in-progress run and clears any stale
// last-run pointer, preserving the invariant that at most one of the
// two pointers is meaningful.
func (db *DB) SetCurrentRun(id string) error {
	return db.Model(&models.ClientState{}).
		Where("id = ?", stateRowID).
		Updates(map[string]interface{}{
			"current_run_id": id,
			"last_run_id":    "",
		}).Error
}

// FinalizeRun moves id from the current pointer to the last pointer.
// It is idempotent: finalizing an id that is already the last run, or
// that is not the current run, changes nothing, so the finalize side
// effect happens exactly once per completed run.
func (db *DB) FinalizeRun(id string) error {
	return db.Transaction(func(tx *DB) error {
		state, err := tx.GetState()
		if err != nil {
			return err
		}
		if state.CurrentRunID != id {
			return nil
		}
		return tx.Model(&models.ClientState{}).
			Where("id = ?", stateRowID).
			Updates(map[string]interface{}{
				"current_run_id": "",
				"last_run_id":    id,
			}).Error
	})
}

// ClearCurrentRun drops a stale current-run pointer.
func (db *DB) ClearCurrentRun() error {
	return db.Model(&models.ClientState{}).
		Where("id = ?", stateRowID).
		Update("current_run_id", "").Error
}

// ClearLastRun drops a stale last-run pointer.
func (db *DB) ClearLastRun() error {
	return db.Model(&models.ClientState{}).
		Where("id = ?", stateRowID).
		Update("last_run_id", "").Error
}

// ClearRunPointers drops both pointers together. Used by terminal
// actions (post, delete).
func (db *DB) ClearRunPointers() error {
	return db.Model(&models.ClientState{}).
		Where("id = ?", stateRowID).
		Updates(map[string]interface{}{
			"current_run_id": "",
			"last_run_id":    "",
		}).Error
}
