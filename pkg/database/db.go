package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Employee represents the employees table
type Employee struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Role         string    `gorm:"size:16;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
}

// Shift represents the shifts table
type Shift struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Date      string  `gorm:"size:10;not null;index"`
	StartTime string  `gorm:"size:5;not null"`
	EndTime   string  `gorm:"size:5;not null"`
	Location  string  `gorm:"not null"`
	Position  *string
	Notes     *string
	CreatedBy string `gorm:"size:36;not null"`
	CreatedAt time.Time
}

// Assignment represents the assignments table. ShiftDate copies the shift's
// date so the same-day conflict scan is a single indexed lookup.
type Assignment struct {
	ID         string `gorm:"primaryKey;size:36"`
	EmployeeID string `gorm:"size:36;not null;uniqueIndex:idx_assignment_employee_shift;index:idx_assignment_employee_date"`
	ShiftID    string `gorm:"size:36;not null;uniqueIndex:idx_assignment_employee_shift;index"`
	ShiftDate  string `gorm:"size:10;not null;index:idx_assignment_employee_date"`
	CreatedAt  time.Time
}

// Open connects to PostgreSQL when databaseURL is set, otherwise to the
// SQLite file at dataPath.
func Open(databaseURL, dataPath string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}

	if databaseURL != "" {
		cfg.PrepareStmt = false
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		}), cfg)
		if err != nil {
			return nil, fmt.Errorf("database: connect postgres: %w", err)
		}
		return db, nil
	}

	if dataPath == "" {
		dataPath = "roster.db"
	}
	db, err := gorm.Open(sqlite.Open(dataPath+"?_busy_timeout=5000"), cfg)
	if err != nil {
		return nil, fmt.Errorf("database: open sqlite %s: %w", dataPath, err)
	}
	// SQLite allows a single writer; one connection keeps transactions from
	// failing with "database is locked".
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Employee{}, &Shift{}, &Assignment{}); err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}
	return nil
}

// InitDB opens and migrates the database, exiting the process on failure
func InitDB(databaseURL, dataPath string) *gorm.DB {
	db, err := Open(databaseURL, dataPath)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	return db
}
