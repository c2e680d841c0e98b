package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required,url|uri"`

	// BaseURL is the externally visible origin, used to build denormalized
	// resource links such as a comment's issue_url.
	BaseURL string `mapstructure:"BASE_URL" validate:"required,url"`

	JWTSecret       string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL" validate:"required"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL" validate:"required"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`
}

var (
	cfg      *Config
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "24h")
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("GOMAXPROCS", 0)

	// Optional config file
	_ = v.ReadInConfig()

	// Bind env without prefix for convenience
	keys := []string{
		"APP_ENV",
		"HTTP_ADDR",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"DATABASE_URL",
		"BASE_URL",
		"JWT_SECRET",
		"ACCESS_TOKEN_TTL",
		"REFRESH_TOKEN_TTL",
		"RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST",
		"GOMAXPROCS",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Parse duration types that may come as string
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
		{"ACCESS_TOKEN_TTL", &c.AccessTokenTTL},
		{"REFRESH_TOKEN_TTL", &c.RefreshTokenTTL},
	}
	for _, it := range durations {
		s := v.GetString(it.key)
		if s == "" {
			continue
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", it.key, err)
		}
		*it.dst = d
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}

	cfg = &c
	return cfg, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// Get returns the loaded configuration. Panics if not loaded.
func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call config.Load or config.MustLoad first")
	}
	return cfg
}
