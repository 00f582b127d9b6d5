// Package testutils holds fixtures shared by service and handler tests.
package testutils

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the schema
// applied. The database is closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	url := fmt.Sprintf("file:%s?mode=memory&cache=private", uuid.NewString())
	db, err := infra.NewDBConnection(&config.DB{Url: url, ConnMaxLifetime: time.Hour}, "test")
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	t.Cleanup(func() { _ = infra.Close(db) })
	return db
}

// SeedUser inserts a bare user row and returns its id.
func SeedUser(t testing.TB, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.User{
		ID:           id,
		Email:        id.String() + "@example.com",
		Name:         "Test User",
		PasswordHash: "not-a-hash",
	}).Error)
	return id
}

// NewTestConfig returns an application config with test secrets and the
// minimum bcrypt cost.
func NewTestConfig() *config.App {
	return &config.App{
		Env: "test",
		Server: &config.Server{
			Scheme:          "http",
			Host:            "localhost",
			Port:            3000,
			ShutdownTimeout: time.Second,
		},
		Log: &config.Log{Format: "text", TimeFormat: time.Kitchen, Prefix: "[test]"},
		DB:  &config.DB{Url: "file::memory:", ConnMaxLifetime: time.Hour, AutoMigrate: true},
		Auth: &config.Auth{
			Jwt: &config.Jwt{
				AccessSecret:  "test-access-secret",
				RefreshSecret: "test-refresh-secret",
				AccessExpiry:  15 * time.Minute,
			},
			RefreshTTLDays: 7,
			BcryptCost:     4,
		},
		Ledger: &config.Ledger{
			DefaultCurrency: "CNY",
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Redis:     &config.Redis{KeyPrefix: "fintrack:test:"},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

// NewMockDB returns a Postgres-dialect *gorm.DB backed by go-sqlmock. The
// test fails if any expectation is left unmet.
func NewMockDB(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = mockDb.Close()
	})
	return db, mock
}
