package objectstore

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ghuser/stockroom/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		MinioEndpoint:     "http://localhost:9000",
		MinioRegion:       "us-east-1",
		MinioBucket:       "stockroom-exports",
		MinioRootUser:     "minioadmin",
		MinioRootPassword: "minioadmin",
		ExportURLTTL:      10 * time.Minute,
	}
}

func TestNew_DisabledWithoutEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.MinioEndpoint = ""
	s, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil store when exports are disabled")
	}
}

func TestPresignGet_PathStyleURL(t *testing.T) {
	s, err := New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw, expires, err := s.PresignGet(context.Background(), "exports/2025/03/order.csv")
	if err != nil {
		t.Fatalf("PresignGet: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Host != "localhost:9000" {
		t.Errorf("host = %q", u.Host)
	}
	if !strings.HasPrefix(u.Path, "/stockroom-exports/exports/2025/03/order.csv") {
		t.Errorf("path = %q, want bucket-prefixed path", u.Path)
	}
	if got := u.Query().Get("X-Amz-Expires"); got != "600" {
		t.Errorf("X-Amz-Expires = %q, want 600", got)
	}
	if time.Until(expires) > 10*time.Minute || time.Until(expires) < 9*time.Minute {
		t.Errorf("expires = %v", expires)
	}
}
