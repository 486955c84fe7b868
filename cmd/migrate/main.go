package main

import (
	"billtracker/internal/config" // Custom import path (Config)
	"billtracker/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	if cfg.DatabaseURL == "" {
		logrus.Fatal("DATABASE_URL must be set")
	}
	db.Migrate(cfg.DatabaseURL)
}
