package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	accountadapters "petstore_backend/internal/feature/account/adapters"
	accountentity "petstore_backend/internal/feature/account/domain/entity"
	catalogentity "petstore_backend/internal/feature/catalog/domain/entity"
	storeentity "petstore_backend/internal/feature/store/domain/entity"
)

// Config holds database connection settings.
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string
}

// LoadConfigFromEnv reads database settings from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN builds a MySQL DSN from the config.
// When InstanceName is set, a Cloud SQL Unix socket DSN takes precedence.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// Opener opens a gorm.DB for a DSN. Extracted for testing.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry attempts to connect until the timeout elapses,
// retrying every 3 seconds.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

func openMySQL(dsn string) (*gorm.DB, error) {
	// TranslateError makes duplicate-key detection driver independent
	return gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
}

func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()
	dsn := BuildDSN(cfg)

	db, err := ConnectWithRetry(dsn, 60*time.Second, openMySQL)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Pet, Order など）
		if err := db.AutoMigrate(
			&accountentity.User{},
			&accountentity.Address{},
			&accountadapters.SessionModel{},
			&catalogentity.Category{},
			&catalogentity.Tag{},
			&catalogentity.Pet{},
			&catalogentity.Photo{},
			&storeentity.Order{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
