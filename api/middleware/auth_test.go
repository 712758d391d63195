package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/rakibulhaque/trendibay-backend/pkg/auth"
	"github.com/rakibulhaque/trendibay-backend/pkg/auth/session"
	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
	pkgredis "github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

type authKit struct {
	issuer   *pkgauth.TokenIssuer
	sessions *session.Manager
}

func newAuthKit(t *testing.T) *authKit {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := pkgredis.NewClientFromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	issuer, err := pkgauth.NewTokenIssuer(config.JWT{
		Secret:          "test-secret",
		Issuer:          "trendibay",
		AccessTTL:       15 * time.Minute,
		RefreshTTL:      24 * time.Hour,
		ClockSkewLeeway: 30 * time.Second,
	})
	require.NoError(t, err)
	sessions, err := session.NewManager(cache)
	require.NoError(t, err)

	return &authKit{issuer: issuer, sessions: sessions}
}

type issuedSession struct {
	userID      uuid.UUID
	accessToken string
	refreshJTI  string
}

// issueSession mints an access token with a live session, the state a
// logged-in user is in.
func (k *authKit) issueSession(t *testing.T, role enums.UserRole) issuedSession {
	t.Helper()

	userID := uuid.New()
	access, err := k.issuer.Issue(userID, role, pkgauth.TokenKindAccess)
	require.NoError(t, err)
	refresh, err := k.issuer.Issue(userID, role, pkgauth.TokenKindRefresh)
	require.NoError(t, err)
	err = k.sessions.CreatePair(context.Background(), userID.String(), access.JTI, 15*time.Minute, refresh.JTI, 24*time.Hour)
	require.NoError(t, err)
	return issuedSession{userID: userID, accessToken: access.Token, refreshJTI: refresh.JTI}
}

func (k *authKit) router() http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(Auth(k.issuer, k.sessions))
		r.Get("/users/me", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	r.Route("/admin", func(r chi.Router) {
		r.Use(Auth(k.issuer, k.sessions))
		r.Use(RequireRole(enums.UserRoleAdmin))
		r.Get("/orders", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func get(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingOrMalformedToken(t *testing.T) {
	kit := newAuthKit(t)
	router := kit.router()

	assert.Equal(t, http.StatusUnauthorized, get(router, "/users/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/users/me", "not-a-jwt").Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	kit := newAuthKit(t)
	router := kit.router()

	sess := kit.issueSession(t, enums.UserRoleCustomer)
	require.Equal(t, http.StatusOK, get(router, "/users/me", sess.accessToken).Code)

	// Logout revokes the pair; the still-unexpired access token must
	// stop working immediately.
	err := kit.sessions.RevokePair(context.Background(), sess.userID.String(), sess.refreshJTI)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/users/me", sess.accessToken).Code)
}

func TestRequireRoleGatesAdminRoutes(t *testing.T) {
	kit := newAuthKit(t)
	router := kit.router()

	customer := kit.issueSession(t, enums.UserRoleCustomer)
	admin := kit.issueSession(t, enums.UserRoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/admin/orders", "").Code)
	assert.Equal(t, http.StatusForbidden, get(router, "/admin/orders", customer.accessToken).Code)
	assert.Equal(t, http.StatusOK, get(router, "/admin/orders", admin.accessToken).Code)
}
