package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3518", cfg.District.Code)
	assert.Equal(t, "NGANJUK", cfg.District.Name)
	assert.InDelta(t, -7.8, cfg.District.MinLat, 1e-9)
	assert.InDelta(t, -7.2, cfg.District.MaxLat, 1e-9)
	assert.InDelta(t, 111.6, cfg.District.MinLon, 1e-9)
	assert.InDelta(t, 112.2, cfg.District.MaxLon, 1e-9)

	assert.Len(t, cfg.Boundary.GeoJSONURLs, 4)
	assert.Len(t, cfg.Boundary.OverpassEndpoints, 3)
	assert.Equal(t, "Kabupaten Nganjuk", cfg.Boundary.OverpassArea)
	assert.Equal(t, 6, cfg.Boundary.AdminLevel)
	assert.Equal(t, 12, cfg.Boundary.StaticTimeoutSecs)
	assert.Equal(t, 20, cfg.Boundary.FetchTimeoutSecs)

	assert.Equal(t, 960, cfg.Canvas.Width)
	assert.Equal(t, 640, cfg.Canvas.Height)
	assert.Equal(t, "tagmap.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
district:
  code: "3519"
  name: "MADIUN"
canvas:
  width: 1280
  height: 800
boundary:
  overpass_area: "Kabupaten Madiun"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3519", cfg.District.Code)
	assert.Equal(t, "MADIUN", cfg.District.Name)
	assert.Equal(t, 1280, cfg.Canvas.Width)
	assert.Equal(t, 800, cfg.Canvas.Height)
	assert.Equal(t, "Kabupaten Madiun", cfg.Boundary.OverpassArea)
	// Untouched sections keep their defaults
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Len(t, cfg.Boundary.GeoJSONURLs, 4)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("TAGMAP_SERVER_PORT", "9090")
	t.Setenv("TAGMAP_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "noisy", Format: "json"})
	assert.Error(t, err)
}
