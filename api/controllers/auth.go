package controllers

import (
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/api/responses"
	"github.com/rakibulhaque/trendibay-backend/api/validators"
	authsvc "github.com/rakibulhaque/trendibay-backend/internal/auth"
)

func Register(svc authsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input authsvc.RegisterInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		result, err := svc.Register(r.Context(), input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusCreated, result)
	}
}

func Login(svc authsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		result, err := svc.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, result)
	}
}

func Refresh(svc authsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input authsvc.RefreshInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		tokens, err := svc.Refresh(r.Context(), input)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, tokens)
	}
}

func Logout(svc authsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input authsvc.RefreshInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		if err := svc.Logout(r.Context(), input.RefreshToken); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, r, http.StatusOK, map[string]bool{"logged_out": true})
	}
}
