// Package config loads application configuration from config.yaml plus
// TAGMAP_-prefixed environment variables, and initializes the global
// logger.
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
	District DistrictConfig `yaml:"district" mapstructure:"district"`
	Boundary BoundaryConfig `yaml:"boundary" mapstructure:"boundary"`
	Canvas   CanvasConfig   `yaml:"canvas" mapstructure:"canvas"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DistrictConfig pins the target district and its fallback extent. The
// fallback bounds are only used when neither boundary geometry nor tagged
// coordinates are available.
type DistrictConfig struct {
	Code   string  `yaml:"code" mapstructure:"code"`
	Name   string  `yaml:"name" mapstructure:"name"`
	MinLat float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MaxLat float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MinLon float64 `yaml:"min_lon" mapstructure:"min_lon"`
	MaxLon float64 `yaml:"max_lon" mapstructure:"max_lon"`
}

// BoundaryConfig configures the boundary source chain.
type BoundaryConfig struct {
	File              string   `yaml:"file" mapstructure:"file"`
	Shapefile         string   `yaml:"shapefile" mapstructure:"shapefile"`
	GeoJSONURLs       []string `yaml:"geojson_urls" mapstructure:"geojson_urls"`
	OverpassEndpoints []string `yaml:"overpass_endpoints" mapstructure:"overpass_endpoints"`
	OverpassArea      string   `yaml:"overpass_area" mapstructure:"overpass_area"`
	AdminLevel        int      `yaml:"admin_level" mapstructure:"admin_level"`
	StaticTimeoutSecs int      `yaml:"static_timeout_secs" mapstructure:"static_timeout_secs"`
	FetchTimeoutSecs  int      `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
}

// CanvasConfig sets the render surface dimensions.
type CanvasConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// StoreConfig configures the run history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and the
// environment, applying defaults for the Nganjuk deployment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TAGMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("district.code", "3518")
	v.SetDefault("district.name", "NGANJUK")
	v.SetDefault("district.min_lat", -7.8)
	v.SetDefault("district.max_lat", -7.2)
	v.SetDefault("district.min_lon", 111.6)
	v.SetDefault("district.max_lon", 112.2)
	v.SetDefault("boundary.geojson_urls", []string{
		"https://raw.githubusercontent.com/superpikar/indonesia-geojson/master/kabupaten/jawa-timur/nganjuk.geojson",
		"https://raw.githubusercontent.com/thetrisatria/geojson-indonesia/master/regencies/nganjuk.geojson",
		"https://raw.githubusercontent.com/ans-4175/peta-indonesia-geojson/master/kabupaten/35/3518.geojson",
		"https://cdn.jsdelivr.net/gh/superpikar/indonesia-geojson@master/kabupaten/jawa-timur/nganjuk.geojson",
	})
	v.SetDefault("boundary.overpass_endpoints", []string{
		"https://overpass-api.de/api/interpreter",
		"https://overpass.kumi.systems/api/interpreter",
		"https://lz4.overpass-api.de/api/interpreter",
	})
	v.SetDefault("boundary.overpass_area", "Kabupaten Nganjuk")
	v.SetDefault("boundary.admin_level", 6)
	v.SetDefault("boundary.static_timeout_secs", 12)
	v.SetDefault("boundary.fetch_timeout_secs", 20)
	v.SetDefault("canvas.width", 960)
	v.SetDefault("canvas.height", 640)
	v.SetDefault("store.path", "tagmap.db")
	v.SetDefault("server.port", 8080)
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
