package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "dicegraph-data", cfg.DataDir)
	assert.Equal(t, filepath.Join("dicegraph-data", "rolls"), cfg.RollSetDir())
	assert.Equal(t, filepath.Join("dicegraph-data", "usersettings.dicegraphprefs"), cfg.PreferencesPath())
	assert.Equal(t, 1000000, cfg.LargeSimulationRolls)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DICEGRAPH_BACKEND", "redis")
	t.Setenv("DICEGRAPH_SIM_WORKERS", "3")
	t.Setenv("DICEGRAPH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, 3, cfg.SimulationWorkers)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DICEGRAPH_DATA_DIR=/tmp/dice-from-env-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DICEGRAPH_DATA_DIR") })

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dice-from-env-file", cfg.DataDir)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "backend", key: "DICEGRAPH_BACKEND", value: "postgres"},
		{name: "log level", key: "DICEGRAPH_LOG_LEVEL", value: "loud"},
		{name: "workers", key: "DICEGRAPH_SIM_WORKERS", value: "-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
