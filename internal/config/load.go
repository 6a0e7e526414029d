package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevJWTSecret is the fallback signing secret for local development.
const DevJWTSecret = "dev_secret_change_me"

// envBindings maps config keys to the environment variables that set them.
var envBindings = []struct {
	key    string
	envVar string
}{
	{"server.port", "PORT"},
	{"server.log_level", "LOG_LEVEL"},
	{"server.client_origin", "CLIENT_ORIGIN"},
	{"database.path", "DB_PATH"},
	{"auth.jwt_secret", "JWT_SECRET"},
	{"auth.jwt_expires_days", "JWT_EXPIRES_DAYS"},
	{"auth.cookie_name", "COOKIE_NAME"},
	{"catalog.file", "CATALOG_FILE"},
	{"daily.salt", "DAILY_SALT"},
	{"telemetry.enabled", "OTEL_ENABLED"},
}

// Load reads .env (if present) and the environment into a validated Config.
// Environment variables take precedence over defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("server.port", 5175)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.client_origin", "http://localhost:5173")
	v.SetDefault("database.path", "./data/app.db")
	v.SetDefault("auth.jwt_secret", DevJWTSecret)
	v.SetDefault("auth.jwt_expires_days", 14)
	v.SetDefault("auth.cookie_name", "whoeats_token")
	v.SetDefault("catalog.file", "")
	v.SetDefault("daily.salt", "local_dev_salt")
	v.SetDefault("telemetry.enabled", false)

	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.envVar); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.envVar, err)
		}
	}
	// NODE_ENV=production switches cookies to Secure + SameSite=None.
	v.Set("server.production", strings.EqualFold(os.Getenv("NODE_ENV"), "production"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
