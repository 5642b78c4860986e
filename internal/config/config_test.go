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

	assert.Equal(t, "data/lots/city_lots.geojson", cfg.Data.LotsPath)
	assert.Equal(t, "data/lots/city_boundaries.geojson", cfg.Data.BoundariesPath)
	assert.Equal(t, "geojson", cfg.Data.BoundariesFormat)
	assert.Equal(t, "id", cfg.Data.RegionField)
	assert.Equal(t, "data/lots/lot_features.geojson", cfg.Data.OutputPath)
	assert.False(t, cfg.Data.Projected)
	assert.Equal(t, 36, cfg.Features.OrientationBins)
	assert.Equal(t, 4, cfg.Features.Workers)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
data:
  lots_path: /data/lots.geojson
  boundaries_path: /data/bounds.shp
  boundaries_format: shapefile
  region_field: GEOID
  projected: true
features:
  orientation_bins: 18
  workers: 8
store:
  path: /data/features.db
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/lots.geojson", cfg.Data.LotsPath)
	assert.Equal(t, "/data/bounds.shp", cfg.Data.BoundariesPath)
	assert.Equal(t, "shapefile", cfg.Data.BoundariesFormat)
	assert.Equal(t, "GEOID", cfg.Data.RegionField)
	assert.True(t, cfg.Data.Projected)
	assert.Equal(t, 18, cfg.Features.OrientationBins)
	assert.Equal(t, 8, cfg.Features.Workers)
	assert.Equal(t, "/data/features.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
}

func TestInitLoggerBadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "shouty", Format: "json"}))
}
