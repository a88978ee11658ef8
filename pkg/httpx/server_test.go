package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/stockroom/pkg/httpx"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(origins string) http.Handler {
	r := httpx.NewRouter(httpx.ServerConfig{ServiceName: "test", CORSAllowedOrigins: origins},
		passthrough, passthrough, passthrough, passthrough)
	r.Get("/", okHandler)
	r.Patch("/", okHandler)
	return r
}

func TestNewRouter_SecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter("*").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	checks := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'self'",
	}
	for header, expected := range checks {
		if got := rr.Header().Get(header); got != expected {
			t.Errorf("%s: got %q, want %q", header, got, expected)
		}
	}
}

func TestNewRouter_CORSPreflightAllowsPatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/", http.NoBody)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rr := httptest.NewRecorder()
	newTestRouter("https://shop.example.com, http://localhost:5173").ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Errorf("Allow-Origin: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPatch) {
		t.Errorf("Allow-Methods: got %q", got)
	}
}

func TestNewRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	newTestRouter("https://shop.example.com").ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Allow-Origin for unknown origin, got %q", got)
	}
}

// TestRequestBodyLimit_WithinLimit verifies requests under the cap pass through.
func TestRequestBodyLimit_WithinLimit(t *testing.T) {
	const limit = 100

	var gotBody []byte
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+1)
		n, _ := r.Body.Read(buf)
		gotBody = buf[:n]
		w.WriteHeader(http.StatusOK)
	})

	h := httpx.RequestBodyLimit(limit)(inner)
	body := strings.NewReader(strings.Repeat("a", 50))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", body))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(gotBody) != 50 {
		t.Fatalf("expected 50 bytes read, got %d", len(gotBody))
	}
}

// TestRequestBodyLimit_ExceedsLimit verifies that reading beyond the cap returns an error.
func TestRequestBodyLimit_ExceedsLimit(t *testing.T) {
	const limit int64 = 10

	var readErr error
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+5)
		_, readErr = r.Body.Read(buf)
		if readErr != nil {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	h := httpx.RequestBodyLimit(limit)(inner)
	body := strings.NewReader(strings.Repeat("x", int(limit)+1))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", body))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}
