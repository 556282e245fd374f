package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/digibistro/digibistro-api/utils"
)

var DB *gorm.DB

const (
	// connectTimeout bounds a single connection attempt
	connectTimeout = 5 * time.Second
	// connectAttempts and connectBackoff define the retry budget for
	// transient connectivity failures at startup
	connectAttempts = 3
	connectBackoff  = time.Second
)

// ConnectDatabase establishes a connection to the PostgreSQL database.
// Transient connectivity failures are retried with a fixed backoff before
// the whole attempt fails.
func ConnectDatabase(databaseURL string) error {
	err := utils.Retry(connectAttempts, connectBackoff, func() error {
		db, openErr := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
			return pingErr
		}

		DB = db
		return nil
	})
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
