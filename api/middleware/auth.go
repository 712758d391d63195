package middleware

import (
	"net/http"
	"strings"

	"github.com/rakibulhaque/trendibay-backend/api/responses"
	pkgauth "github.com/rakibulhaque/trendibay-backend/pkg/auth"
	"github.com/rakibulhaque/trendibay-backend/pkg/auth/session"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
)

// Auth verifies the bearer access token, checks its jti still has a
// live session, and seeds the actor into the request context. The
// session check is what makes logout bite before the token expires.
// The logger gains the user id and role so every downstream line is
// attributable.
func Auth(issuer *pkgauth.TokenIssuer, sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := issuer.Parse(token, pkgauth.TokenKindAccess)
			if err != nil {
				responses.WriteError(w, r, errors.Wrap(errors.CodeUnauthorized, err, "invalid access token"))
				return
			}

			live, err := sessions.Has(r.Context(), claims.UserID.String(), claims.ID)
			if err != nil {
				responses.WriteError(w, r, errors.Wrap(errors.CodeDependency, err, "check session"))
				return
			}
			if !live {
				responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "session revoked"))
				return
			}

			actor := Actor{UserID: claims.UserID, Role: claims.Role, JTI: claims.ID}
			ctx := withActor(r.Context(), actor)

			logg := logger.FromContext(ctx).
				WithUserID(actor.UserID.String()).
				WithActorRole(actor.Role.String())
			ctx = logger.IntoContext(ctx, logg)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
