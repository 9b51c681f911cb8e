package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "farmaterm.toml")
	svc := NewConfigService()

	cfg := DefaultConfig()
	cfg.BaseURL = "http://farmacia.local:8000"
	cfg.Token = "abc123"
	cfg.UserID = 4
	cfg.Search.PageSize = 50

	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "http://farmacia.local:8000", loaded.BaseURL)
	require.Equal(t, "abc123", loaded.Token)
	require.Equal(t, 4, loaded.UserID)
	require.Equal(t, 50, loaded.Search.PageSize)
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Parallel()
	svc := NewConfigService()
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestDefaultsFillPartialConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "partial.toml")
	svc := NewConfigService()

	// Only the base URL set; everything else comes from defaults
	require.NoError(t, svc.SaveToPath(&Config{BaseURL: "http://x"}, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Search.MinQueryLength)
	require.Equal(t, 20, loaded.Search.PageSize)
	require.Equal(t, 1000, loaded.Search.StaleTTLMillis)
	require.Equal(t, 50, loaded.Scanner.ThresholdMillis)
	require.Equal(t, 60, loaded.Alerts.PollIntervalSeconds)
	require.Equal(t, "MXN", loaded.UISettings.Currency)
	require.Equal(t, 1, loaded.UserID)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.Equal(t, "http://localhost:8000", cfg.BaseURL)
	require.True(t, cfg.UISettings.ShowStockBadges)
	require.True(t, cfg.UISettings.AutosaveOnExit)
	require.Equal(t, 2, cfg.Search.MinQueryLength)
}
