package database

import (
	"log"

	"sendloop-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite database at the given path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
// Foreign keys are switched on so that deleting a task cascades to its
// progress ledger.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Progress{},
		&models.NotificationSetting{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database connected and migrated successfully")
	return db, nil
}
