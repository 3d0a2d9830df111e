// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.ProjectRequest{},
		&models.RestorationReview{},
		&models.ContactMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := normalizeLegacyStatuses(db); err != nil {
		return fmt.Errorf("failed to normalize legacy statuses: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

// normalizeLegacyStatuses rewrites the German status spellings left behind by
// an old schema change. The canonical values are the only ones written from
// here on; this keeps read paths free of dual-spelling branches.
func normalizeLegacyStatuses(db *gorm.DB) error {
	updates := map[string]models.ProjectStatus{
		"In Bearbeitung": models.ProjectStatusInProgress,
		"Abgelehnt":      models.ProjectStatusRejected,
	}

	for legacy, canonical := range updates {
		result := db.Model(&models.ProjectRequest{}).
			Where("status = ?", legacy).
			Update("status", canonical)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			logrus.WithFields(logrus.Fields{
				"legacy":    legacy,
				"canonical": canonical,
				"rows":      result.RowsAffected,
			}).Info("Normalized legacy status values")
		}
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_project_requests_status ON project_requests(status)",
		"CREATE INDEX IF NOT EXISTS idx_project_requests_created_at ON project_requests(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_project_requests_status_created ON project_requests(status, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_project_requests_expiration ON project_requests(expiration_date) WHERE expiration_date IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_restoration_reviews_project ON restoration_reviews(project_request_id)",
		"CREATE INDEX IF NOT EXISTS idx_contact_messages_created ON contact_messages(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
