// Package config loads application configuration from the environment,
// with an optional .env file picked up from the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

// Database types.
const (
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

// Config holds the runtime configuration for one user session.
type Config struct {
	// UserID namespaces every persisted progress key
	UserID string
	// DataDir is where set files and the default sqlite database live
	DataDir  string
	Database Database
}

// Database selects and configures the durable backend.
type Database struct {
	Type string // "sqlite" (default) or "postgres"
	Path string // sqlite file path
	DSN  string // postgres connection string
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.UserID, validation.Required),
		validation.Field(&c.DataDir, validation.Required),
	); err != nil {
		return err
	}
	return c.Database.Validate()
}

// Validate validates the database configuration.
func (c *Database) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Type, validation.Required, validation.In(DBTypeSQLite, DBTypePostgres)),
	); err != nil {
		return err
	}
	if c.Type == DBTypeSQLite && c.Path == "" {
		return fmt.Errorf("database: type is %q but path is empty", DBTypeSQLite)
	}
	if c.Type == DBTypePostgres && c.DSN == "" {
		return fmt.Errorf("database: type is %q but DATABASE_URL is empty", DBTypePostgres)
	}
	return nil
}

// FromEnv builds the configuration from environment variables:
//
//	VOCABTRAIN_USER     progress namespace (default "default")
//	VOCABTRAIN_DATA_DIR data directory (default "data")
//	DB_TYPE             "sqlite" or "postgres" (default "sqlite")
//	DB_PATH             sqlite file (default <data dir>/vocabtrain.db)
//	DATABASE_URL        postgres DSN, required when DB_TYPE=postgres
func FromEnv() (*Config, error) {
	// .env is optional; отсутствие файла не является ошибкой
	_ = godotenv.Load()

	dataDir := envOr("VOCABTRAIN_DATA_DIR", "data")
	cfg := &Config{
		UserID:  envOr("VOCABTRAIN_USER", "default"),
		DataDir: dataDir,
		Database: Database{
			Type: envOr("DB_TYPE", DBTypeSQLite),
			Path: envOr("DB_PATH", filepath.Join(dataDir, "vocabtrain.db")),
			DSN:  os.Getenv("DATABASE_URL"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
