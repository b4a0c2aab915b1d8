package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "metadata", cfg.Logging.ActivationLevel)
	assert.Equal(t, 10*time.Minute, cfg.RequestStore.TTL.Std())
	assert.Empty(t, cfg.Auth.Clients)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "clarity.yaml", `
server:
  addr: ":9090"
  shutdown_timeout: 3s
logging:
  level: debug
  format: console
auth:
  clients:
    - id: intake-form
      api_keys: ["key-1"]
activation:
  workers: 4
  sinks:
    - type: file_jsonl
      path: /tmp/events.jsonl
onboarding:
  strict: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout.Std())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	require.Len(t, cfg.Auth.Clients, 1)
	assert.Equal(t, "intake-form", cfg.Auth.Clients[0].ID)
	assert.Equal(t, 4, cfg.Activation.Workers)
	require.Len(t, cfg.Activation.Sinks, 1)
	assert.Equal(t, 2*time.Second, cfg.Activation.Sinks[0].Timeout.Std())
	assert.True(t, cfg.Onboarding.Strict)
	require.NoError(t, Validate(cfg))
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "clarity.toml", `
[server]
addr = ":7070"
idle_timeout = "90s"

[logging]
activation_level = "redacted"

[[auth.clients]]
id = "partner"
api_keys = ["abc"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 90*time.Second, cfg.Server.IdleTimeout.Std())
	assert.Equal(t, "redacted", cfg.Logging.ActivationLevel)
	require.Len(t, cfg.Auth.Clients, 1)
	assert.Equal(t, []string{"abc"}, cfg.Auth.Clients[0].APIKeys)
}

func TestLoadEmptyYAMLUsesDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadRejectsUnknownKeysAndBadDurations(t *testing.T) {
	_, err := Load(writeFile(t, "typo.yaml", "servr:\n  addr: \":1\"\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "dur.yaml", "server:\n  read_timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CLARITY_ADDR", "127.0.0.1:1234")
	t.Setenv("CLARITY_LOG_LEVEL", "warn")
	t.Setenv("CLARITY_ACTIVATION_LEVEL", "full")

	cfg, err := Load(writeFile(t, "c.yaml", "server:\n  addr: \":9090\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1234", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "full", cfg.Logging.ActivationLevel)
}
