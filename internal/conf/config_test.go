package conf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "urn:ietf:wg:oauth:2.0:oob", cfg.RedirectURI)
	require.Equal(t, 4, cfg.URLConcurrency)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 10, cfg.Log.MaxSizeMB)
	require.Same(t, cfg, Conf)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GDRIVE_CLIENT_ID", "id-123")
	t.Setenv("GDRIVE_CLIENT_SECRET", "secret-456")
	t.Setenv("GDRIVE_REFRESH_TOKEN", "refresh-789")
	t.Setenv("RV_URL_CONCURRENCY", "8")
	t.Setenv("RV_LOG_LEVEL", "debug")
	t.Setenv("RV_LOG_FILE", "/tmp/receiptvault.log")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "id-123", cfg.ClientID)
	require.Equal(t, "secret-456", cfg.ClientSecret)
	require.Equal(t, "refresh-789", cfg.RefreshToken)
	require.Equal(t, 8, cfg.URLConcurrency)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/tmp/receiptvault.log", cfg.Log.File)
}

func TestLoadClampsConcurrency(t *testing.T) {
	t.Setenv("RV_URL_CONCURRENCY", "0")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.URLConcurrency)
}
