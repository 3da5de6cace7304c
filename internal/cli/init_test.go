package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataBackend:     config.BackendJSON,
		ExpensesFile:    filepath.Join(t.TempDir(), "expenses.json"),
		SQLiteDBPath:    filepath.Join(t.TempDir(), "expenses.db"),
		LogLevel:        "info",
		SummaryCacheTTL: time.Minute,
	}
}

func TestSetupLogger_WritesSessionID(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)

	logger, closeFn, err := SetupLogger(cfg, &buf)
	require.NoError(t, err)
	defer closeFn()

	logger.Info("hello")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "session_id=")
	assert.Contains(t, out, "component=app")
	assert.NotContains(t, out, "hidden")
}

func TestSetupLogger_LogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogFile = filepath.Join(t.TempDir(), "app.log")

	var buf bytes.Buffer
	logger, closeFn, err := SetupLogger(cfg, &buf)
	require.NoError(t, err)

	logger.Warn("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, buf.String())
}

func TestSetupLogger_BadLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "chatty"

	_, _, err := SetupLogger(cfg, &bytes.Buffer{})
	require.Error(t, err)
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("SUMMARY_CACHE_TTL", "")
		t.Setenv("METRICS_TEXTFILE", "")

		cfg, err := LoadAndValidateConfig()
		require.NoError(t, err)
		assert.Equal(t, config.BackendMemory, cfg.DataBackend)
	})

	t.Run("invalid backend", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "sheets")

		_, err := LoadAndValidateConfig()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "invalid data backend"))
	})
}

func TestInitBackend(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)
	logger, closeFn, err := SetupLogger(cfg, &buf)
	require.NoError(t, err)
	defer closeFn()

	for _, name := range []string{config.BackendJSON, config.BackendSQLite, config.BackendMemory} {
		t.Run(name, func(t *testing.T) {
			cfg.DataBackend = name
			result, err := InitBackend(context.Background(), logger, cfg)
			require.NoError(t, err)
			defer result.Close()

			records, err := result.Store.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}

	assert.Contains(t, buf.String(), "backend=sqlite")
}
