package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "http://localhost:8081", cfg.Backend.URL)
	assert.Equal(t, ":8081", cfg.Backend.Address)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "white-noise", cfg.S3.TrackPrefix)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  address: \":9090\"\nbackend:\n  url: http://file-backend\n  timeout: 5s\njwt:\n  secret: from-file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("BACKEND_URL", "http://env-backend:4000")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "http://env-backend:4000", cfg.Backend.URL, "env overrides the file")
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
}

// The web app's default backend URL must reach the backend's default listener.
func TestLoadConfig_DefaultsPointAtBackend(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.NotEqual(t, cfg.Server.Address, cfg.Backend.Address)
	assert.True(t, strings.HasSuffix(cfg.Backend.URL, cfg.Backend.Address), "%s vs %s", cfg.Backend.URL, cfg.Backend.Address)

	t.Setenv("BACKEND_ADDRESS", ":7000")
	cfg, err = LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Backend.Address)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
