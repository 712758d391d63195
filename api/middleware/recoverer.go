package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
)

// Recoverer converts handler panics into 500 responses instead of
// dropped connections.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.FromContext(r.Context()).
					WithField("stack", string(debug.Stack())).
					Error("panic recovered", fmt.Errorf("%v", rec))
				responses.WriteError(w, r, errors.New(errors.CodeInternal, "panic recovered"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
