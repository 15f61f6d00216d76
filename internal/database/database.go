package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/killallgit/reporadar-api/internal/models"
)

type DB struct {
	*gorm.DB
	logger *zap.Logger
}

// Initialize opens the SQLite database at dbPath. An empty path or
// ":memory:" opens an in-memory database.
func Initialize(dbPath string, verbose bool, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("database")

	if dbPath != "" && dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	logLevel := gormlogger.Error
	if verbose {
		logLevel = gormlogger.Info
	}

	gormConfig := &gorm.Config{
		Logger: newGormLogger(logger, logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps ":memory:" shared
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &DB{DB: db, logger: logger}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	db.logger.Info("migrated models", zap.Int("count", len(models)))
	return nil
}

// Migrate creates or updates every table the service owns
func (db *DB) Migrate() error {
	return db.AutoMigrate(models.All()...)
}

// TableStatus describes one managed table
type TableStatus struct {
	Table  string
	Exists bool
	Rows   int64
}

// MigrationStatus reports which managed tables exist and how many rows they hold
func (db *DB) MigrationStatus() ([]TableStatus, error) {
	migrator := db.DB.Migrator()
	var statuses []TableStatus

	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model: %w", err)
		}

		status := TableStatus{Table: stmt.Schema.Table, Exists: migrator.HasTable(model)}
		if status.Exists {
			if err := db.DB.Model(model).Count(&status.Rows).Error; err != nil {
				return nil, fmt.Errorf("failed to count %s: %w", status.Table, err)
			}
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// Rollback drops every table the service owns
func (db *DB) Rollback() error {
	if err := db.DB.Migrator().DropTable(models.All()...); err != nil {
		return fmt.Errorf("dropping tables failed: %w", err)
	}
	db.logger.Info("dropped managed tables")
	return nil
}
