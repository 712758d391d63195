package controllers

import (
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/api/middleware"
	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/api/validators"
	"github.com/rakibulhaque/trendibay-backend/internal/checkout"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
)

func Checkout(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		var input checkout.CheckoutInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		result, err := svc.Checkout(r.Context(), actor.UserID, input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		status := http.StatusCreated
		if result.Replayed {
			status = http.StatusOK
		}
		responses.WriteSuccess(w, r, status, result)
	}
}
