package pkg

import (
	"fmt"

	"github.com/SAP-F-2025/widget-service/internal/config"
	"github.com/SAP-F-2025/widget-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Environment == "production" {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the audit and history tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.EvaluationLog{}, &models.WidgetHistory{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
