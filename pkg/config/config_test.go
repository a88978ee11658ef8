package config

import (
	"strings"
	"testing"
	"time"
)

func productionConfig() *Config {
	return &Config{
		Environment:          EnvProduction,
		LogLevel:             "info",
		SessionAuthKey:       strings.Repeat("a", 32),
		SessionEncryptionKey: strings.Repeat("b", 16),
		MinioEndpoint:        "http://minio:9000",
		MinioRootPassword:    "a-real-secret",
		StockSyncInterval:    10 * time.Minute,
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid production config", func(*Config) {}, ""},
		{"non-production skips checks", func(c *Config) { c.Environment = EnvDevelopment; c.SessionAuthKey = "" }, ""},
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"short encryption key", func(c *Config) { c.SessionEncryptionKey = "short" }, "SESSION_ENCRYPTION_KEY"},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"default minio password", func(c *Config) { c.MinioRootPassword = "minioadmin" }, "MINIO_ROOT_PASSWORD"},
		{"minio disabled ignores password", func(c *Config) { c.MinioEndpoint = ""; c.MinioRootPassword = "minioadmin" }, ""},
		{"sync interval too short", func(c *Config) { c.StockSyncInterval = 5 * time.Second }, "STOCK_SYNC_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := productionConfig()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExportsEnabled(t *testing.T) {
	cfg := &Config{MinioEndpoint: "http://localhost:9000", MinioBucket: "exports"}
	if !cfg.ExportsEnabled() {
		t.Fatal("expected exports enabled")
	}
	cfg.MinioEndpoint = ""
	if cfg.ExportsEnabled() {
		t.Fatal("expected exports disabled without endpoint")
	}
}
