package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/period"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	JWT     JWTConfig
	CORS    CORSConfig
	Windows WindowConfig
	View    ViewConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port          int
	Env           string
	LogLevel      string
	DefaultLocale string
}

// APIConfig points at the WFH REST backend
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret            string
	SessionExpiration string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// WindowConfig holds the date bounds applied to request and withdrawal forms.
type WindowConfig struct {
	RequestBefore    period.Period
	RequestAfter     period.Period
	WithdrawalBefore period.Period
	WithdrawalAfter  period.Period
}

type ViewConfig struct {
	IdleTimeout time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
	}

	// Backend API configuration
	apiTimeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "8s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	config.API = APIConfig{
		BaseURL: strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
		Timeout: apiTimeout,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		SessionExpiration: getEnv("SESSION_EXPIRATION_TIME", "12h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Date windows
	windows := []struct {
		key      string
		fallback string
		dst      *period.Period
	}{
		{"REQUEST_WINDOW_BEFORE", "2m", &config.Windows.RequestBefore},
		{"REQUEST_WINDOW_AFTER", "3m", &config.Windows.RequestAfter},
		{"WITHDRAWAL_WINDOW_BEFORE", "2w", &config.Windows.WithdrawalBefore},
		{"WITHDRAWAL_WINDOW_AFTER", "2w", &config.Windows.WithdrawalAfter},
	}
	for _, w := range windows {
		p, err := period.Parse(getEnv(w.key, w.fallback))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", w.key, err)
		}
		*w.dst = p
	}

	idle, err := time.ParseDuration(getEnv("VIEW_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIEW_IDLE_TIMEOUT: %w", err)
	}
	config.View = ViewConfig{IdleTimeout: idle}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.SessionExpiration); err != nil {
		return fmt.Errorf("invalid SESSION_EXPIRATION_TIME: %w", err)
	}
	if c.View.IdleTimeout <= 0 {
		return errors.New("VIEW_IDLE_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether cookies should be marked secure.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SlogLevel maps LOG_LEVEL onto slog levels.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
