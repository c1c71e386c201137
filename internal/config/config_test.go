package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("JWT_SECRET", "signing-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "")
	t.Setenv("NODE_ENV", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("Expected default port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Errorf("Expected default driver mongo, got %s", cfg.Store.Driver)
	}
	if cfg.Admin.TokenTTL != 24*time.Hour {
		t.Errorf("Expected 24h token TTL, got %s", cfg.Admin.TokenTTL)
	}
	if cfg.Blog.DefaultAuthor != "Richard Li" {
		t.Errorf("Expected default author, got %q", cfg.Blog.DefaultAuthor)
	}
	if cfg.Server.RateLimitRequests != 100 || cfg.Server.RateLimitWindow != 15*time.Minute {
		t.Errorf("Unexpected rate limit defaults: %d per %s", cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindow)
	}
	if cfg.IsDevelopment() {
		t.Error("Expected production by default")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected json log format in production, got %s", cfg.Log.Format)
	}
}

func TestLoad_ContactEmailFallsBackToSender(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAIL_USER", "blog@example.com")
	t.Setenv("CONTACT_EMAIL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Mail.ContactEmail != "blog@example.com" {
		t.Errorf("Expected contact email fallback, got %q", cfg.Mail.ContactEmail)
	}
}

func TestLoad_NodeEnvAlias(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.IsDevelopment() {
		t.Error("Expected NODE_ENV=development to be honored")
	}
	if cfg.Log.Format != "pretty" {
		t.Errorf("Expected pretty logs in development, got %s", cfg.Log.Format)
	}
}

func TestLoad_MissingSecretsAreFatal(t *testing.T) {
	tests := []struct {
		name     string
		password string
		secret   string
		wantErr  string
	}{
		{"missing password", "", "signing-key", "ADMIN_PASSWORD"},
		{"missing secret", "s3cret", "", "JWT_SECRET"},
		{"missing both", "", "", "ADMIN_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_PASSWORD", tt.password)
			t.Setenv("JWT_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_Store(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "5000"},
			Admin:  AdminConfig{Password: "p", JWTSecret: "s", TokenTTL: time.Hour},
			Store:  StoreConfig{Driver: DriverMongo, MongoURI: "mongodb://localhost:27017/blog"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid mongo", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, "STORE_DRIVER"},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }, "DATABASE_URL"},
		{"postgres with dsn", func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.DatabaseURL = "postgres://localhost/blog"
		}, ""},
		{"sqlite without path", func(c *Config) { c.Store.Driver = DriverSQLite }, "SQLITE_PATH"},
		{"bad port", func(c *Config) { c.Server.Port = "abc" }, "PORT"},
		{"zero ttl", func(c *Config) { c.Admin.TokenTTL = 0 }, "ADMIN_TOKEN_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadStore_DoesNotRequireAdminSecrets(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/blog.db")

	cfg, err := LoadStore()
	if err != nil {
		t.Fatalf("LoadStore() failed: %v", err)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("Expected sqlite driver, got %s", cfg.Store.Driver)
	}

	t.Setenv("STORE_DRIVER", "redis")
	if _, err := LoadStore(); err == nil {
		t.Error("Expected error for unknown driver")
	}
}
