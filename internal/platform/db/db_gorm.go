// Package db opens the PostgreSQL connection used by the gorm repositories.
package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Config holds PostgreSQL connection settings.
// When InstanceName is set the Cloud SQL unix socket is used instead of Host/Port.
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string
}

// LoadConfigFromEnv reads the connection settings from DB_* variables.
func LoadConfigFromEnv() Config {
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      sslMode,
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN renders cfg as a libpq keyword/value connection string.
// Every value is quoted so spaces, quotes and backslashes in credentials survive.
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host, port = "/cloudsql/"+cfg.InstanceName, ""
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		quoteDSNValue(host), quoteDSNValue(cfg.User), quoteDSNValue(cfg.Password),
		quoteDSNValue(cfg.Name), quoteDSNValue(cfg.SSLMode))
	if port != "" {
		dsn += " port=" + quoteDSNValue(port)
	}
	return dsn
}

// quoteDSNValue wraps v in single quotes, escaping backslashes and single quotes.
func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Opener opens a gorm connection for a DSN. Tests replace it to avoid a real database.
type Opener func(dsn string) (*gorm.DB, error)

// PostgresOpener opens PostgreSQL through pgx with gorm error translation enabled,
// so unique violations surface as gorm.ErrDuplicatedKey.
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects with the environment configuration and, when RUN_MIGRATIONS=true,
// migrates the given models.
func OpenDB(models ...any) *gorm.DB {
	db, err := ConnectWithRetry(BuildDSN(LoadConfigFromEnv()), connectTimeout, PostgresOpener)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}
	return db
}
