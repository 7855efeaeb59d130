package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	devJWTSecret     = "dev-jwt-secret-change-me"
	devSessionSecret = "default-secret-key-change-me"
	devAdminPassword = "admin123"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	JWTSecret     string
	JWTExpiresIn  time.Duration
	SessionSecret string
	RedisHost     string
	RedisPort     string
	CORSOrigin    string
	RateLimitMax  int
	RateLimitWin  time.Duration
	LogFile       string
	LogLevel      string
	NATSURL       string
	OpenAIAPIKey  string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	expiresIn, err := ParseDuration(getEnv("JWT_EXPIRES_IN", "7d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	window, err := ParseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	maxRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "taskhub"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "taskhub.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiresIn:  expiresIn,
		SessionSecret: getEnv("SESSION_SECRET", ""),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		RateLimitMax:  maxRequests,
		RateLimitWin:  window,
		LogFile:       getEnv("LOG_FILE", ""),
		LogLevel:      getEnv("LOG_LEVEL", ""),
		NATSURL:       getEnv("NATS_URL", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	// Release mode never falls back to the well-known development values.
	secrets := []struct {
		name  string
		value *string
		dev   string
	}{
		{"JWT_SECRET", &c.JWTSecret, devJWTSecret},
		{"SESSION_SECRET", &c.SessionSecret, devSessionSecret},
		{"ADMIN_PASSWORD", &c.AdminPassword, devAdminPassword},
	}
	for _, s := range secrets {
		if c.IsProduction() {
			if *s.value == "" || *s.value == s.dev {
				return fmt.Errorf("%s must be set in release mode", s.name)
			}
			continue
		}
		if *s.value == "" {
			*s.value = s.dev
		}
	}

	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}
	if c.RateLimitWin <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// ParseDuration accepts Go durations plus a day suffix ("7d").
func ParseDuration(value string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
