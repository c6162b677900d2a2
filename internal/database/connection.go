package database

import (
	"fmt"
	"weighbridge/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the connection pool. Schema migration is opt-in: the
// migrate binary owns the schema, and production deployments may carry
// older table layouts that the schema probe has to see as-is.
func Initialize(databaseURL string, autoMigrate bool) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if autoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("database schema migrated")
	}

	log.Info("database connected")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Driver{},
		&models.Order{},
		&models.OrderCounter{},
	)
}
