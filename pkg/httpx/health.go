package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (Database, RedisClient and EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// StockHealth reports the stock catalog state: "ok", "stale" or "loading".
type StockHealth interface {
	Health() string
}

// HealthChecks holds the dependencies checked by the health endpoint.
// Nil checkers are reported as "disabled". A stale or loading stock catalog
// is reported but does not degrade the overall status.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
	Stock    StockHealth
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
	Stock    string `json:"stock"`
}

// HealthHandler checks every configured dependency and answers 503 when any
// of them is unreachable.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		check := func(c HealthChecker) string {
			if c == nil {
				return "disabled"
			}
			if err := c.Ping(ctx); err != nil {
				resp.Status = "degraded"
				return "unreachable"
			}
			return "ok"
		}
		resp.Database = check(checks.Database)
		resp.Redis = check(checks.Redis)
		resp.EventBus = check(checks.EventBus)

		resp.Stock = "disabled"
		if checks.Stock != nil {
			resp.Stock = checks.Stock.Health()
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
