package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes the analytics store connection. With a
// postgres DATABASE_URL it connects there; with anything else (or
// nothing) it opens SQLite, defaulting to an in-memory database so the
// service runs self-contained.
func ConnectDatabase() error {
	databaseURL := os.Getenv("DATABASE_URL")

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://"):
		dialector = postgres.Open(databaseURL)
	case databaseURL != "":
		dialector = sqlite.Open(databaseURL)
	default:
		log.Println("DATABASE_URL not set, using in-memory SQLite store")
		dialector = sqlite.Open(":memory:")
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
