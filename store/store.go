package store

import (
	"database/sql"
	"fmt"
	"strings"

	"PixBot/models"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Open connects to the store named by url. postgres:// URLs go through lib/pq,
// anything else is treated as a SQLite file path.
func Open(url string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	if isPostgres(url) {
		sqlDB, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		if err := sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open gorm over postgres: %w", err)
		}
		log.Printf("Connected to postgres")
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(url), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", url, err)
	}
	// SQLite serialises writers; one connection avoids "database is locked".
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	log.Printf("Opened sqlite database at %s", url)
	return db, nil
}

func isPostgres(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// Migrate creates any missing table and seeds the treasure singleton.
// It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	seed := models.TreasureState{ID: 1}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed treasure state: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
