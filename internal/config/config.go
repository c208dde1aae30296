package config

import (
	"errors"

	"github.com/spf13/viper"
)

// DevJWTSecret is the development-only signing key used when JWT_SECRET is unset.
const DevJWTSecret = "change-me"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value in production")

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`
	StationName    string `mapstructure:"STATION_NAME"`

	// Database: a postgres:// URL selects Postgres, anything else is a SQLite file path.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis (optional). Empty disables the price cache and the job queue.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// Pricing: volumes at or above this many liters use the bulk rate.
	BulkThresholdLiters int `mapstructure:"BULK_THRESHOLD_LITERS"`

	// Shifts
	AutoCloseStaleShifts bool `mapstructure:"AUTO_CLOSE_STALE_SHIFTS"`

	// Shift reports
	ReportStoragePath string `mapstructure:"REPORT_STORAGE_PATH"`
	ReportEmail       string `mapstructure:"REPORT_EMAIL"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("WORKER_POOL_SIZE", 2)
	v.SetDefault("STATION_NAME", "FuelPOS")
	v.SetDefault("DATABASE_URL", "fuelpos.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("JWT_EXPIRATION_HOURS", 12)
	v.SetDefault("BULK_THRESHOLD_LITERS", 100)
	v.SetDefault("AUTO_CLOSE_STALE_SHIFTS", false)
	v.SetDefault("REPORT_STORAGE_PATH", "/tmp/fuelpos/reports")
	v.SetDefault("REPORT_EMAIL", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")

	// Optional .env file for local development; a missing file is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Env == "production" && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}

// SMTPEnabled reports whether enough SMTP settings exist to send mail.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.ReportEmail != ""
}
