package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ledger-reports/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabaseConfig(seedsPath string, seed bool) *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Schema:         "dbo",
		MigrationsPath: "db/migrations",
		SeedsPath:      seedsPath,
		SeedDatabase:   seed,
		AutoMigrate:    true,
	}
}

func fastRetries(t *testing.T, retries int) {
	t.Helper()

	originalRetries := maxRetries
	originalInterval := retryInterval
	maxRetries = retries
	retryInterval = 50 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, testDatabaseConfig("db/seeds", true))

	assert.Equal(t, db, runner.db)
	assert.Equal(t, "db/migrations", runner.migrationsPath)
	assert.Equal(t, "db/seeds", runner.seedsPath)
	assert.Equal(t, "dbo", runner.schema)
	assert.True(t, runner.seed)
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 3)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	err = NewMigrationRunner(db, testDatabaseConfig("", false)).WaitForDatabase(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 2)

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = NewMigrationRunner(db, testDatabaseConfig("", false)).WaitForDatabase(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestWaitForDatabase_ContextCancelled(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 10)

	ctx, cancel := context.WithCancel(context.Background())
	mock.ExpectPing().WillReturnError(errors.New("starting"))
	cancel()

	err = NewMigrationRunner(db, testDatabaseConfig("", false)).WaitForDatabase(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMigrations_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, testDatabaseConfig("", false))
	runner.migrationsPath = "/nonexistent/path/to/migrations"

	assert.NoError(t, runner.RunMigrations())
}

func TestLoadSeeds_Disabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewMigrationRunner(db, testDatabaseConfig(t.TempDir(), false)).LoadSeeds(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewMigrationRunner(db, testDatabaseConfig("/nonexistent/seeds/path", true)).LoadSeeds(context.Background())

	assert.NoError(t, err)
}

func TestLoadSeeds_ExecutionFailureIsContinued(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seedsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seedsDir, "001_bad.sql"), []byte("INSERT INTO missing VALUES (1);"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(seedsDir, "002_transactions.sql"),
		[]byte("INSERT INTO transactions (transaction_id) VALUES ('seed-1');"), 0644))

	mock.ExpectExec("INSERT INTO missing").WillReturnError(errors.New("relation does not exist"))
	mock.ExpectExec("INSERT INTO transactions").WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewMigrationRunner(db, testDatabaseConfig(seedsDir, true)).LoadSeeds(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ReadFileError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seedsDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(seedsDir, "001_invalid.sql"), 0755))

	err = NewMigrationRunner(db, testDatabaseConfig(seedsDir, true)).LoadSeeds(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read seed file")
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	cfg := testDatabaseConfig("", false)
	cfg.AutoMigrate = false

	assert.NoError(t, RunMigrationsIfEnabled(context.Background(), db, cfg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsIfEnabled_DatabaseNotReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	fastRetries(t, 2)

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = RunMigrationsIfEnabled(context.Background(), db, testDatabaseConfig("", false))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database readiness check failed")
}

func TestGetMigrationStatus_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, testDatabaseConfig("", false))
	runner.migrationsPath = "/nonexistent/migrations"

	_, _, err = runner.GetMigrationStatus()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}
