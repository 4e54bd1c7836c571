package db

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/dareloop/dareloop/internal/models"
)

// CacheLevels replaces the locally cached level catalog.
func (db *DB) CacheLevels(levels []models.Level) error {
	if len(levels) == 0 {
		return nil
	}
	now := time.Now()
	for i := range levels {
		levels[i].CachedAt = now
	}
	return db.Transaction(func(tx *DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Level{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&levels).Error
	})
}

// CachedLevels returns the locally cached catalog ordered by level
// number. May be empty if the catalog was never fetched.
func (db *DB) CachedLevels() ([]models.Level, error) {
	var levels []models.Level
	err := db.Order("level_number asc, id asc").Find(&levels).Error
	return levels, err
}
