package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.local/")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "http://api.local", cfg.API.BaseURL)
	assert.Equal(t, 8*time.Second, cfg.API.Timeout)
	assert.Equal(t, period.Period{N: 2, Unit: period.Month}, cfg.Windows.RequestBefore)
	assert.Equal(t, period.Period{N: 3, Unit: period.Month}, cfg.Windows.RequestAfter)
	assert.Equal(t, period.Period{N: 2, Unit: period.Week}, cfg.Windows.WithdrawalBefore)
	assert.Equal(t, 30*time.Minute, cfg.View.IdleTimeout)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.local")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("WITHDRAWAL_WINDOW_BEFORE", "3m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, period.Period{N: 3, Unit: period.Month}, cfg.Windows.WithdrawalBefore)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing api url", map[string]string{"JWT_SECRET_KEY": "s"}},
		{"missing secret", map[string]string{"API_BASE_URL": "http://x"}},
		{"bad window", map[string]string{"API_BASE_URL": "http://x", "JWT_SECRET_KEY": "s", "REQUEST_WINDOW_AFTER": "3y"}},
		{"bad timeout", map[string]string{"API_BASE_URL": "http://x", "JWT_SECRET_KEY": "s", "API_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("API_BASE_URL", "")
			t.Setenv("JWT_SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
