package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	pkgredis "github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

// RateLimit caps requests per client IP in a fixed window. Used on the
// credential endpoints. Redis trouble fails open; slowing logins is
// not worth an outage.
func RateLimit(store *pkgredis.Client, scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := pkgredis.RateLimitKey(scope, clientIP(r))
			allowed, err := store.FixedWindowAllow(r.Context(), key, limit, window)
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limit check", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(w, r, errors.New(errors.CodeRateLimit, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
