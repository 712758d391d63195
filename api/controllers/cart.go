package controllers

import (
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/api/middleware"
	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/api/validators"
	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
)

func GetCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		dto, err := svc.GetCart(r.Context(), actor.UserID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, dto)
	}
}

func AddCartItem(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		var input cart.AddItemInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		dto, err := svc.AddItem(r.Context(), actor.UserID, input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusCreated, dto)
	}
}

func UpdateCartItem(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		itemID, err := validators.UUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		var input cart.UpdateQuantityInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		dto, err := svc.UpdateQuantity(r.Context(), actor.UserID, itemID, input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, dto)
	}
}

func RemoveCartItem(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		itemID, err := validators.UUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		dto, err := svc.RemoveItem(r.Context(), actor.UserID, itemID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, dto)
	}
}

func ClearCart(svc cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		dto, err := svc.ClearCart(r.Context(), actor.UserID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, dto)
	}
}
