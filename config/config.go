// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	migrateOnly    = pflag.Bool("migrate-only", false, "Runs database migrations and exits")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validModes     = []string{"development", "production", "test"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// MigrateOnly reports whether the server should exit after running
// database migrations.
func MigrateOnly() bool {
	return *migrateOnly
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.mode", "app_mode")
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors_origin", "host_cors_origin")

	v.BindEnv("database.url", "database_url")

	v.BindEnv("jwt.access_secret", "jwt_access_secret")
	v.BindEnv("jwt.refresh_secret", "jwt_refresh_secret")
	v.BindEnv("jwt.access_ttl", "jwt_access_ttl")
	v.BindEnv("jwt.refresh_ttl", "jwt_refresh_ttl")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.mode", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 4000)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors_origin", "http://localhost:5173")

	v.SetDefault("database.url", "database.db")

	v.SetDefault("jwt.access_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)

	v.SetDefault("mail.port", 587)

	v.SetDefault("security.rate_limit", 20)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validModes, v.GetString("app.mode")) {
		return errors.New("invalid app mode provided")
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("database.url") == "" {
		return errors.New("database url can't be empty")
	}

	if v.GetString("jwt.access_secret") == "" || v.GetString("jwt.refresh_secret") == "" {
		fmt.Println("WARNING: You haven't set both JWT secrets, so a pair has been generated for you. Please set them as environment variables or in the config.toml file.\nYour random JWT secrets:\n\njwt.access_secret:\n" + genSecret() + "\n\njwt.refresh_secret:\n" + genSecret() + "\n\nPaste them into your config.toml file.")
		os.Exit(0)
	}

	if v.GetString("jwt.access_secret") == v.GetString("jwt.refresh_secret") {
		return errors.New("access and refresh secrets must differ")
	}

	if v.GetDuration("jwt.access_ttl") <= 0 {
		return errors.New("jwt.access_ttl must be bigger than 0")
	}

	if v.GetDuration("jwt.refresh_ttl") <= v.GetDuration("jwt.access_ttl") {
		return errors.New("jwt.refresh_ttl must be bigger than jwt.access_ttl")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("mail.sender") == "" {
		fmt.Println("[WARNING]: No mail.sender configured. Verification emails won't be delivered and new accounts can't be verified")
	}

	return nil
}

// Production reports whether the app runs in production mode. The mode
// only affects the cookie Secure flag and log verbosity, never the
// auth logic itself.
func Production() bool {
	return v.GetString("app.mode") == "production"
}
