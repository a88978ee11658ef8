package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/operator"
)

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName,
		TracesSampleRate: 0.2,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware captures panics on a per-request hub.
// Repanic: true so the outer Recovery middleware still handles the 500 response.
func SentryMiddleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return h.Handle
}

// SentryOperatorScope tags the request's hub with the operator device label.
// Mount it after operator.Identify.
func SentryOperatorScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
				if label, ok := operator.DeviceFromCtx(r.Context()); ok {
					hub.Scope().SetTag("operator", label)
					hub.Scope().SetUser(sentry.User{Username: label})
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CaptureError reports err with tags such as revision_id or order_id. The
// hub in ctx is used when present, so request tags are kept.
func CaptureError(ctx context.Context, err error, tags map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}
