package controllers

import (
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/api/middleware"
	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/api/validators"
	"github.com/rakibulhaque/trendibay-backend/internal/wishlist"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
)

func ToggleWishlist(svc wishlist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		var input wishlist.ToggleInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		result, err := svc.Toggle(r.Context(), actor.UserID, input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, result)
	}
}

func ListWishlist(svc wishlist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		query := wishlist.ListQuery{
			Cursor: r.URL.Query().Get("cursor"),
			Limit:  validators.QueryInt(r, "limit"),
		}

		dto, err := svc.List(r.Context(), actor.UserID, query)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, dto)
	}
}

func RemoveWishlistEntry(svc wishlist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		entryID, err := validators.UUIDParam(r, "entryID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		if err := svc.Remove(r.Context(), actor.UserID, entryID); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "removed"})
	}
}
