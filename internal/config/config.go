package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Application timezone for calendar-date semantics. All stored
	// instants are UTC; this only drives the date boundary conversion.
	AppTimezone string

	SessionSecret string
	SessionMaxAge time.Duration
	CookieSecure  bool

	LoginMaxAttempts int
	LoginLockWindow  time.Duration

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost string
	RedisPort string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		AppTimezone: getEnv("APP_TZ", "America/Santiago"),

		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-change-me"),
		SessionMaxAge: time.Duration(getEnvInt("SESSION_MAX_AGE_HOURS", 12)) * time.Hour,
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",

		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockWindow:  time.Duration(getEnvInt("LOGIN_LOCK_MINUTES", 10)) * time.Minute,

		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "taskboard"),
		DBPassword: getEnv("DB_PASSWORD", "taskboard"),
		DBName:     getEnv("DB_NAME", "taskboard"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin123!"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
