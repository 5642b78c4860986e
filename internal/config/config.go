// Package config loads pipeline configuration and initializes logging.
// All paths are explicit configuration values; nothing mutates the process
// working directory.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Features FeaturesConfig `yaml:"features" mapstructure:"features"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the input datasets and the output table.
type DataConfig struct {
	LotsPath         string `yaml:"lots_path" mapstructure:"lots_path"`
	BoundariesPath   string `yaml:"boundaries_path" mapstructure:"boundaries_path"`
	BoundariesFormat string `yaml:"boundaries_format" mapstructure:"boundaries_format"` // geojson or shapefile
	RegionField      string `yaml:"region_field" mapstructure:"region_field"`
	OutputPath       string `yaml:"output_path" mapstructure:"output_path"`
	// Projected marks inputs already in the equal-area planar CRS, skipping
	// the lon/lat to EPSG:5070 projection step.
	Projected bool `yaml:"projected" mapstructure:"projected"`
}

// FeaturesConfig tunes the feature computation.
type FeaturesConfig struct {
	OrientationBins int `yaml:"orientation_bins" mapstructure:"orientation_bins"`
	Workers         int `yaml:"workers" mapstructure:"workers"`
}

// StoreConfig configures the optional SQLite sink.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LOTMETRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.lots_path", "data/lots/city_lots.geojson")
	v.SetDefault("data.boundaries_path", "data/lots/city_boundaries.geojson")
	v.SetDefault("data.boundaries_format", "geojson")
	v.SetDefault("data.region_field", "id")
	v.SetDefault("data.output_path", "data/lots/lot_features.geojson")
	v.SetDefault("data.projected", false)
	v.SetDefault("features.orientation_bins", 36)
	v.SetDefault("features.workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
