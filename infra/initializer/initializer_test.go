package initializer

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&config.Log{Format: "json", Level: 0, Prefix: "[test]"}, &buf)
	logger.Info("Transaction created", "amount", "35.00")
	logger.Debug("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, `"msg":"Transaction created"`)
	assert.Contains(t, out, `"amount":"35.00"`)
	assert.NotContains(t, out, "hidden at info level")
}

func TestSetupLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&config.Log{Format: "unknown", Level: -4}, &buf)
	logger.Debug("visible at debug level")
	assert.Contains(t, buf.String(), "visible at debug level")
}

func TestInitializeDependencies_SQLite(t *testing.T) {
	cfg := testutils.NewTestConfig()
	cfg.DB = &config.DB{
		Url:         "sqlite://" + filepath.Join(t.TempDir(), "fintrack.db"),
		AutoMigrate: true,
	}

	deps, res, err := InitializeDependencies(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, res.Close()) })

	assert.NotNil(t, deps.Uow)
	assert.NotNil(t, deps.Logger)
	assert.Nil(t, deps.JobStore, "the app falls back to memory")
	assert.Nil(t, deps.RateLimitStorage)
	assert.Nil(t, res.Redis)
	assert.True(t, res.DB.Migrator().HasTable(&model.Transaction{}))
}

func TestInitializeDependencies_Errors(t *testing.T) {
	cfg := testutils.NewTestConfig()
	cfg.DB = &config.DB{}
	_, _, err := InitializeDependencies(context.Background(), cfg)
	assert.Error(t, err)

	cfg = testutils.NewTestConfig()
	cfg.DB = &config.DB{Url: "sqlite://" + filepath.Join(t.TempDir(), "r.db")}
	cfg.Redis.URL = "redis://%%bad"
	_, _, err = InitializeDependencies(context.Background(), cfg)
	assert.Error(t, err)
}
