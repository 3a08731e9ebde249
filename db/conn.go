// Package db opens the backing store from the configured connection
// string
package db

import (
	"fmt"
	"strings"
	"venturas/murmur-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database pointed to by database.url. URLs starting
// with postgres:// go through the postgres driver, anything else is
// treated as an SQLite file path.
func New() (*gorm.DB, error) {
	url := viper.GetString("database.url")

	var dialector gorm.Dialector
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Open(url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables owned by the auth core.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		model.User{},
		model.Session{},
		model.VerificationToken{},
		model.ResendRequest{},
	)
	if err != nil {
		return fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return nil
}
