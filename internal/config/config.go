package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the raw punch blob.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageLocal    = "local"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	JWT        JWTConfig
	Holiday    HolidayConfig
	Attendance AttendanceConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StorageConfig selects where the raw punch rows are persisted.
type StorageConfig struct {
	Type       string
	SQLitePath string
	BasePath   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type HolidayConfig struct {
	BaseURL      string
	Country      string
	CacheSize    int
	Timeout      time.Duration
	WarmInterval time.Duration
}

type AttendanceConfig struct {
	Timezone string
}

// Load reads the environment, optionally seeded from a .env file in the
// working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "punch_analytics"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Storage = StorageConfig{
		Type:       strings.ToLower(getEnv("STORAGE_TYPE", StorageSQLite)),
		SQLitePath: getEnv("SQLITE_PATH", "./data/punches.db"),
		BasePath:   getEnv("STORAGE_BASE_PATH", "./data"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	cacheSize, err := strconv.Atoi(getEnv("HOLIDAY_CACHE_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_CACHE_SIZE: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("HOLIDAY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_TIMEOUT: %w", err)
	}
	warmInterval, err := time.ParseDuration(getEnv("HOLIDAY_WARM_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_WARM_INTERVAL: %w", err)
	}
	config.Holiday = HolidayConfig{
		BaseURL:      getEnv("HOLIDAY_BASE_URL", "https://date.nager.at/api/v3"),
		Country:      strings.ToUpper(getEnv("HOLIDAY_COUNTRY", "CO")),
		CacheSize:    cacheSize,
		Timeout:      timeout,
		WarmInterval: warmInterval,
	}

	config.Attendance = AttendanceConfig{
		Timezone: getEnv("ATTENDANCE_TIMEZONE", "America/Bogota"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Password == "" {
			return errors.New("DB_PASSWORD is required for postgres storage")
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for sqlite storage")
		}
	case StorageLocal:
		if c.Storage.BasePath == "" {
			return errors.New("STORAGE_BASE_PATH is required for local storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}

	if len(c.Holiday.Country) != 2 {
		return fmt.Errorf("HOLIDAY_COUNTRY must be a two letter code, got %q", c.Holiday.Country)
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location resolves the attendance timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Attendance.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AccessTTL is the parsed access token lifetime.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessExpiration)
	if err != nil {
		return time.Hour
	}
	return d
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
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
