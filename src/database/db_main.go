package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orderdesk/src/database/migrations"
	"orderdesk/src/model"
)

// Open connects to the history database selected by config and brings the
// schema up to date. sqlite is the default for a single desk; postgres is
// used when several desks share one history.
func Open(config Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(config)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", config.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from GORM: %w", err)
	}
	if normalizedDriver(config.Driver) == DriverPostgres {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	} else {
		// sqlite allows one writer at a time
		sqlDB.SetMaxOpenConns(1)
	}

	logrus.WithField("driver", normalizedDriver(config.Driver)).Info("[database] connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs schema and data migrations on db.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.OrderHistoryEntry{},
		&migrations.DataMigration{},
	); err != nil {
		return fmt.Errorf("failed to run schema migrations: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to run data migrations: %w", err)
	}

	logrus.Info("[database] migrations completed")
	return nil
}

func normalizedDriver(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return DriverSQLite
	}
	return driver
}

func dialectorFor(config Config) (gorm.Dialector, error) {
	switch normalizedDriver(config.Driver) {
	case DriverSQLite:
		return sqlite.Open(config.DatabaseURL), nil
	case DriverPostgres:
		return postgres.Open(config.DatabaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}
