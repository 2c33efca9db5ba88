package database

import (
	"gorm.io/gorm"
)

// RunMigrations runs AutoMigrate for the given models inside a transaction
// where the backend supports it. Callers decide when migration is safe
// (development only by default, see main.go).
func RunMigrations(db *gorm.DB, models ...interface{}) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.AutoMigrate(models...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
