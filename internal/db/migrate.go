package db

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
)

// ConnectAndMigrate opens the store selected by DATABASE_DSN and brings the
// schema up to date. Postgres deployments with MIGRATIONS=1 run the ordered
// SQL migrations in ./migrations (versioned by golang-migrate); otherwise
// gorm AutoMigrate covers the embedded sqlite default and dev convenience.
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	if IsPostgres(dsn) {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if IsPostgres(dsn) && migrationsRequested() {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if migErr := db.AutoMigrate(&models.ClientRecord{}); migErr != nil {
			return nil, fmt.Errorf("automigrate %T: %w", &models.ClientRecord{}, migErr)
		}
	}

	if !db.Migrator().HasTable("client_records") {
		return nil, errors.New("missing table after migration: client_records")
	}
	return db, nil
}

func migrationsRequested() bool {
	v := strings.ToLower(os.Getenv("MIGRATIONS"))
	return v == "1" || v == "true" || v == "yes"
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
