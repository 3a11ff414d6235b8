package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`     // current application environment (local, dev, production etc)
	Storage          string   `mapstructure:"storage"` // journey storage backend: postgres or memory
	TelegramAPIToken string   `mapstructure:"-"`       // Telegram API token loaded from environment
	DB               DB       `mapstructure:"database"`
	Gemini           Gemini   `mapstructure:"gemini"`
	Journey          Journey  `mapstructure:"journey"`
	Teaching         Teaching `mapstructure:"teaching"`
	HTTP             HTTP     `mapstructure:"http"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Gemini configures the stage image generator.
type Gemini struct {
	APIKey string `mapstructure:"-"`     // empty disables image generation
	Model  string `mapstructure:"model"` // image model name
}

// Journey tunes progress tracking.
type Journey struct {
	AdvanceDelay time.Duration `mapstructure:"advance_delay"`  // delay before a completed checklist advances the stage
	SessionTTL   time.Duration `mapstructure:"session_ttl"`    // idle time before a journey is unloaded
	MaxSessions  int           `mapstructure:"max_sessions"`   // journeys kept in memory
	RegenPerHour int           `mapstructure:"regen_per_hour"` // forced image regenerations per user and hour
}

// Teaching configures the daily teaching broadcast.
type Teaching struct {
	Cron string `mapstructure:"cron"` // cron schedule in UTC, empty disables the broadcast
}

// HTTP configures the health server.
type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address, empty disables the server
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("storage", StoragePostgres)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("gemini.model", "gemini-2.5-flash-image")
	v.SetDefault("journey.advance_delay", "500ms")
	v.SetDefault("journey.session_ttl", "30m")
	v.SetDefault("journey.max_sessions", 1000)
	v.SetDefault("journey.regen_per_hour", 3)
	v.SetDefault("teaching.cron", "0 7 * * *")
	v.SetDefault("http.addr", ":8080")
}

func fromViper(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.Storage == StoragePostgres && cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	cfg.Gemini.APIKey = v.GetString("gemini_api_key")

	return &cfg, nil
}
