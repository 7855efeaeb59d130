package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"15m", 15 * time.Minute},
		{"2h30m", 2*time.Hour + 30*time.Minute},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDuration("soon")
	assert.Error(t, err)
	_, err = ParseDuration("xd")
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWin)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DevFallbacks(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.Equal(t, devAdminPassword, cfg.AdminPassword)
}

func TestLoad_ReleaseRequiresSecrets(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{"JWT_SECRET": ""},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "missing session secret",
			env:     map[string]string{"SESSION_SECRET": ""},
			wantErr: "SESSION_SECRET",
		},
		{
			name:    "development session secret",
			env:     map[string]string{"SESSION_SECRET": devSessionSecret},
			wantErr: "SESSION_SECRET",
		},
		{
			name:    "missing admin password",
			env:     map[string]string{"ADMIN_PASSWORD": ""},
			wantErr: "ADMIN_PASSWORD",
		},
		{
			name:    "development admin password",
			env:     map[string]string{"ADMIN_PASSWORD": devAdminPassword},
			wantErr: "ADMIN_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_DRIVER", "sqlite")
			t.Setenv("GIN_MODE", "release")
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv("SESSION_SECRET", "cookie-s3cret")
			t.Setenv("ADMIN_PASSWORD", "correct horse battery")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Release(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_SECRET", "cookie-s3cret")
	t.Setenv("ADMIN_PASSWORD", "correct horse battery")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "cookie-s3cret", cfg.SessionSecret)
	assert.Equal(t, "correct horse battery", cfg.AdminPassword)
	assert.True(t, cfg.IsProduction())
}
