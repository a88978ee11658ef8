package operator

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/logger"
)

const (
	sessionName     = "stockroom_operator"
	sessionLabelKey = "device_label"
)

// Identify is a chi middleware that attaches the caller's device label to the
// request context. Clients without a label are assigned a generated one and
// receive a session cookie. Session failures never block the request.
//
// After this middleware, handlers can call operator.DeviceFromCtx(r.Context()).
func Identify(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "operator session unreadable", "error", err)
			}
			if session == nil {
				session = sessions.NewSession(store, sessionName)
			}

			label, _ := session.Values[sessionLabelKey].(string)
			if label == "" {
				label = GenerateLabel()
				session.Values[sessionLabelKey] = label
				if err := session.Save(r, w); err != nil {
					log.WarnContext(r.Context(), "operator session not saved", "error", err, "device", label)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithDevice(r.Context(), label)))
		})
	}
}

// Rename stores a new label in the caller's session and returns it normalized.
func Rename(w http.ResponseWriter, r *http.Request, store sessions.Store, label string) (string, error) {
	label, err := NormalizeLabel(label)
	if err != nil {
		return "", err
	}
	session, err := store.Get(r, sessionName)
	if session == nil {
		return "", fmt.Errorf("load operator session: %w", err)
	}
	session.Values[sessionLabelKey] = label
	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("save operator session: %w", err)
	}
	return label, nil
}
