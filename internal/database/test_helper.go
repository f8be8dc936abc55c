package database

import (
	"testing"

	"ledger-reports/internal/config"
	"ledger-reports/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory SQLite database with the transactions table migrated.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return testDB
}

// SeedTransactions inserts the given transactions and fails the test on error.
func SeedTransactions(t *testing.T, db *DB, transactions []models.Transaction) {
	t.Helper()

	if len(transactions) == 0 {
		return
	}

	if err := db.Create(&transactions).Error; err != nil {
		t.Fatalf("failed to seed transactions: %v", err)
	}
}

// CleanupTestDB removes every row from the transactions table.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Transaction{}).Error; err != nil {
		t.Logf("failed to cleanup transactions: %v", err)
	}
}
