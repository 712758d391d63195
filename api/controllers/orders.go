package controllers

import (
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/api/middleware"
	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/api/validators"
	"github.com/rakibulhaque/trendibay-backend/internal/orders"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
)

func ListMyOrders(svc orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		page, err := svc.ListOrders(r.Context(), actor.UserID, orders.ListOrdersQuery{
			Cursor: r.URL.Query().Get("cursor"),
			Limit:  validators.QueryInt(r, "limit"),
		})
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, page)
	}
}

func GetMyOrder(svc orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFrom(r.Context())
		if !ok {
			responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "authentication required"))
			return
		}

		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), actor.UserID, orderID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, order)
	}
}

func AdminListOrders(svc orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.AdminListOrders(r.Context(), orders.ListOrdersQuery{
			Status: r.URL.Query().Get("status"),
			Cursor: r.URL.Query().Get("cursor"),
			Limit:  validators.QueryInt(r, "limit"),
		})
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, page)
	}
}

func AdminGetOrder(svc orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		order, err := svc.AdminGetOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, order)
	}
}

func AdminUpdateOrderStatus(svc orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		var input orders.UpdateStatusInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		order, err := svc.AdminUpdateStatus(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, order)
	}
}

func AdminUpdatePaymentStatus(svc orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		var input orders.UpdatePaymentStatusInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		order, err := svc.AdminUpdatePaymentStatus(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, order)
	}
}
