package main

import (
	"weighbridge/internal/config"
	"weighbridge/internal/database"
	"weighbridge/internal/sequence"

	log "github.com/sirupsen/logrus"
)

// Migrates the full schema and seeds the ORD counter row from whatever
// order numbers already exist, so the sequence strategy picks up where the
// max-scan strategy left off.
func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL, false)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	log.Info("schema migrated")

	if err := sequence.Seed(db, "ORD"); err != nil {
		log.WithError(err).Fatal("failed to seed order counter")
	}
	log.Info("order counter seeded")
}
