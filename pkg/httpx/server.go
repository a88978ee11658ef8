package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// RequestsPerMinute is the per-IP rate limit. Zero means 100.
	RequestsPerMinute int
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Pass "*" (dev only) to allow all origins.
	CORSAllowedOrigins string
}

// NewRouter returns a chi.Mux with the standard middleware stack. The
// app-specific middlewares are installed first, so recovery is outermost,
// then Sentry (which re-panics), request ids, tracing and request logging.
// The chi built-ins follow: real IP, per-IP rate limit, CORS, body cap,
// handler timeout and security headers.
func NewRouter(
	cfg ServerConfig,
	loggerMiddleware func(http.Handler) http.Handler,
	recoveryMiddleware func(http.Handler) http.Handler,
	sentryMiddleware func(http.Handler) http.Handler,
	otelMiddleware func(http.Handler) http.Handler,
) *chi.Mux {
	sec := secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=(), magnetometer=(), gyroscope=()",
		IsDevelopment:         cfg.IsDevelopment,
	})

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 100
	}

	r := chi.NewRouter()
	r.Use(
		recoveryMiddleware,
		sentryMiddleware,
		middleware.RequestID,
		otelMiddleware,
		loggerMiddleware,
		middleware.RealIP,
		httprate.LimitByIP(rpm, time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(10<<20), // 10 MB
		middleware.Timeout(30*time.Second),
		sec.Handler,
	)
	return r
}

// CORSMiddleware returns a CORS handler restricted to the given allowed origins.
// allowedOrigins is a comma-separated list (e.g. "https://shop.example.com,http://localhost:5173").
// "*" allows all origins without credentials; explicit origins may send the
// operator session cookie.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           300,
	})
}

// parseOrigins splits a comma-separated origins string into a slice, trimming spaces.
func parseOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p := strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit returns middleware that caps the request body at maxBytes.
// When the limit is exceeded, reads on the body return an error that handlers
// should convert to a 413 response.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server with production-ready timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}
