package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthify/internal/config"
	"wealthify/internal/core"
	"wealthify/internal/session"
)

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=app")
}

func TestSetupLoggerUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("loud", &buf)

	assert.Contains(t, buf.String(), "Unknown log level")
	logger.Info("visible at info")
	assert.Contains(t, buf.String(), "visible at info")
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("WEALTHIFY_ENV_PROBE", "")
	require.NoError(t, os.Unsetenv("WEALTHIFY_ENV_PROBE"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WEALTHIFY_ENV_PROBE=from-file\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("WEALTHIFY_ENV_PROBE"))
}

func TestLoadEnvFileMissing(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "info")
	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.SessionBackend)

	t.Setenv("SESSION_BACKEND", "redis")
	_, err = LoadAndValidateConfig()
	assert.ErrorContains(t, err, "invalid session backend")
}

func TestOpenSession(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{SessionBackend: "file", SessionFile: filepath.Join(t.TempDir(), "s.json")}

	mgr, cleanup, err := OpenSession(ctx, cfg, SetupLogger("error", &bytes.Buffer{}))
	require.NoError(t, err)
	defer func() { assert.NoError(t, cleanup()) }()

	require.NoError(t, mgr.Login(ctx, "token", core.User{Username: "asha"}))
	state, err := mgr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Authenticated, state)

	_, _, err = OpenSession(ctx, &config.Config{SessionBackend: "redis"}, SetupLogger("error", &bytes.Buffer{}))
	assert.Error(t, err)
}
