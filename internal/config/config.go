package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Env is "production" or "development"
	Env string

	// Server configuration
	Server ServerConfig

	// Store configuration
	Store StoreConfig

	// Admin session guard
	Admin AdminConfig

	// Outbound mail for the contact relay
	Mail MailConfig

	// Blog content defaults
	Blog BlogConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
	AllowedOrigin     string
	StaticDir         string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	MaxBodyBytes      int64
}

// StoreConfig holds article store connection settings
type StoreConfig struct {
	Driver          string
	MongoURI        string
	MongoCollection string
	DatabaseURL     string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxLifetime     time.Duration
	Timeout         time.Duration
}

// AdminConfig holds the shared admin password and token signing settings
type AdminConfig struct {
	Password  string
	JWTSecret string
	TokenTTL  time.Duration
}

// MailConfig holds SMTP transport settings
type MailConfig struct {
	Service      string
	Host         string
	Port         int
	Secure       bool
	User         string
	Password     string
	ContactEmail string
}

// BlogConfig holds defaults applied to new articles
type BlogConfig struct {
	DefaultAuthor string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, after merging an
// optional .env file from the working directory.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadStore reads configuration for commands that only touch the article store,
// so admin and server settings are not required.
func LoadStore() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	env := getEnv("ENV", getEnv("NODE_ENV", "production"))

	cfg := &Config{
		Env: env,
		Server: ServerConfig{
			Port:              getEnv("PORT", "5000"),
			ReadTimeout:       getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			AllowedOrigin:     getEnv("FRONTEND_URL", "http://localhost:3000"),
			StaticDir:         getEnv("STATIC_DIR", ""),
			RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
			MaxBodyBytes:      getInt64Env("MAX_BODY_BYTES", 10*1024*1024), // 10MB
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
			MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017/blog"),
			MongoCollection: getEnv("MONGODB_COLLECTION", "articles"),
			DatabaseURL:     getEnv("DATABASE_URL", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "./data/blog.db"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:     getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			Timeout:         getDurationEnv("STORE_TIMEOUT", 10*time.Second),
		},
		Admin: AdminConfig{
			Password:  os.Getenv("ADMIN_PASSWORD"),
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getDurationEnv("ADMIN_TOKEN_TTL", 24*time.Hour),
		},
		Mail: MailConfig{
			Service:  strings.ToLower(getEnv("EMAIL_SERVICE", "")),
			Host:     getEnv("EMAIL_HOST", ""),
			Port:     getIntEnv("EMAIL_PORT", 587),
			Secure:   getBoolEnv("EMAIL_SECURE", false),
			User:     getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
		},
		Blog: BlogConfig{
			DefaultAuthor: getEnv("DEFAULT_AUTHOR", "Richard Li"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultLogFormat(env)),
		},
	}
	cfg.Mail.ContactEmail = getEnv("CONTACT_EMAIL", cfg.Mail.User)

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Admin.TokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 {
		return fmt.Errorf("PORT must be a positive integer, got %q", c.Server.Port)
	}
	return c.ValidateStore()
}

// ValidateStore checks the store driver and its connection settings
func (c *Config) ValidateStore() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: mongo, postgres, sqlite (got %q)", c.Store.Driver)
	}
	return nil
}

// IsDevelopment reports whether internal error detail may be exposed to callers
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func defaultLogFormat(env string) string {
	if env == "development" {
		return "pretty"
	}
	return "json"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
