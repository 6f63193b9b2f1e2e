package db

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"baro_landing_go/config"
)

var DB *gorm.DB

// Initialize sets up the database connection. With a libsql URL configured it
// connects to the hosted store using the service token; otherwise it opens a
// local sqlite file with WAL mode for concurrency.
func Initialize(cfg *config.Config) error {
	logLevel := logger.Info
	if cfg.Environment == "production" {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	var err error

	if cfg.LibsqlDatabaseURL != "" {
		dsn := cfg.LibsqlDatabaseURL
		if cfg.LibsqlAuthToken != "" {
			dsn += "?authToken=" + cfg.LibsqlAuthToken
		}

		var conn *sql.DB
		conn, err = sql.Open("libsql", dsn)
		if err != nil {
			return fmt.Errorf("failed to open libsql connection: %w", err)
		}

		DB, err = gorm.Open(sqlite.Dialector{Conn: conn}, gormCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to hosted database: %w", err)
		}

		log.Println("Database connection established (libsql)")
		return nil
	}

	// Enable WAL mode for better concurrency support
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath+"?_journal_mode=WAL"), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (local, WAL mode enabled)")
	return nil
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
