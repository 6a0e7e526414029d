// Package config loads server configuration from the environment (and an
// optional .env file) into a validated Config.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Daily     DailyConfig     `mapstructure:"daily" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel     string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn error fatal"`
	ClientOrigin string `mapstructure:"client_origin" validate:"required"`
	Production   bool   `mapstructure:"production"`
}

// DatabaseConfig points at the SQLite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AuthConfig contains account token settings.
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret" validate:"required"`
	JWTExpiresDays int    `mapstructure:"jwt_expires_days" validate:"gt=0"`
	CookieName     string `mapstructure:"cookie_name" validate:"required"`
}

// CatalogConfig optionally overrides the embedded animal list.
type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// DailyConfig seeds the animal-of-the-day pick.
type DailyConfig struct {
	Salt string `mapstructure:"salt" validate:"required"`
}

// TelemetryConfig toggles OTLP trace export.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
