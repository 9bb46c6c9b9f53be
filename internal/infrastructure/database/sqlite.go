package database

import (
	"fmt"

	"ai-calling-agent/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection opens a file or in-memory database for local runs and
// tests. The schema is created with AutoMigrate instead of the SQL migrations.
func NewSQLiteConnection(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	log.Infof("Successfully opened SQLite database %s", dsn)

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Company{},
		&entity.Doctor{},
		&entity.Vacancy{},
		&entity.Order{},
		&entity.Appointment{},
		&entity.Feedback{},
		&entity.User{},
		&entity.ConversationLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
