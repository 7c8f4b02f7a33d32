package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jengzang/gpx-records/internal/gpx"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	GPX       GPXConfig       `mapstructure:"gpx"`
	Import    ImportConfig    `mapstructure:"import"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"ginmode"` // debug, release, test
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtsecret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// GPXConfig controls how files are loaded.
type GPXConfig struct {
	MaxFileSize int64 `mapstructure:"maxfilesize"` // bytes
	LocalTime   bool  `mapstructure:"localtime"`   // read zoneless timestamps in the point's own zone
}

// ImportConfig controls the import service.
type ImportConfig struct {
	Root        string `mapstructure:"root"` // directory HTTP imports may read from
	Concurrency int    `mapstructure:"concurrency"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// EnvPrefix prefixes every environment override, e.g. GPXRECORDS_DB_PATH.
const EnvPrefix = "GPXRECORDS"

// Load 加载配置. Values come from defaults, then the config file, then the
// environment. An empty path searches for config.yaml in the usual places and
// tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("db.path", "./data/tracks/tracks.db")
	v.SetDefault("auth.jwtsecret", "your-secret-key-change-in-production")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("gpx.maxfilesize", gpx.DefaultMaxFileSize)
	v.SetDefault("gpx.localtime", false)
	v.SetDefault("import.root", "./data/gpx")
	v.SetDefault("import.concurrency", 4)
	v.SetDefault("ratelimit.requests", 30)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GPX.MaxFileSize <= 0 {
		return fmt.Errorf("gpx.maxfilesize must be positive, got %d", c.GPX.MaxFileSize)
	}
	if c.Import.Concurrency < 1 {
		return fmt.Errorf("import.concurrency must be at least 1, got %d", c.Import.Concurrency)
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("ratelimit needs positive requests and window")
	}
	return nil
}

// NewLogger creates a slog.Logger writing to stderr at the configured level.
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
