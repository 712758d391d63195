package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/api/middleware"
	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/api/validators"
	"github.com/rakibulhaque/trendibay-backend/internal/users"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
)

func GetProfile(svc users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		profile, err := svc.GetProfile(r.Context(), actor.UserID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, profile)
	}
}

// RoleByEmail backs the client-side admin UI guard. The response is
// advisory; every privileged route still checks the token's role.
func RoleByEmail(svc users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			responses.WriteError(w, r, errors.New(errors.CodeValidation, "email query parameter required").
				WithDetails(map[string]string{"email": "is required"}))
			return
		}

		dto, err := svc.RoleByEmail(r.Context(), email)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, dto)
	}
}

type grantAdminRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

func GrantAdmin(svc users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input grantAdminRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		user, err := svc.GrantAdmin(r.Context(), input.UserID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, user)
	}
}
