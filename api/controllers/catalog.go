package controllers

import (
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/api/validators"
	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
)

func ListProducts(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.ListProducts(r.Context(), catalog.ListProductsQuery{
			Category: r.URL.Query().Get("category"),
			Cursor:   r.URL.Query().Get("cursor"),
			Limit:    validators.QueryInt(r, "limit"),
		})
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, page)
	}
}

func GetProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, product)
	}
}

func CreateProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input catalog.CreateProductInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusCreated, product)
	}
}

func UpdateProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		var input catalog.UpdateProductInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, product)
	}
}

func DeleteProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, map[string]bool{"deleted": true})
	}
}
