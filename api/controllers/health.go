package controllers

import (
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

// HealthLive reports process liveness only.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, r, http.StatusOK, map[string]string{"service": "ok"})
	}
}

// HealthReady reports dependency reachability.
func HealthReady(client *db.Client, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"service":  "ok",
			"postgres": "ok",
			"redis":    "ok",
		}
		code := http.StatusOK

		if err := client.Ping(r.Context()); err != nil {
			status["postgres"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
		if err := cache.Ping(r.Context()); err != nil {
			status["redis"] = "unreachable"
			code = http.StatusServiceUnavailable
		}

		responses.WriteSuccess(w, r, code, status)
	}
}
