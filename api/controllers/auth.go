package controllers

import (
	"net/http"

	"github.com/srijeyam/tyrestore-backend/api/responses"
	"github.com/srijeyam/tyrestore-backend/api/validators"
	"github.com/srijeyam/tyrestore-backend/internal/auth"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

// Signup wires account creation into the HTTP layer.
func Signup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return signupHandler(svc, logg, false)
}

// AdminSignup creates a privileged account. The router only mounts it
// outside production.
func AdminSignup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return signupHandler(svc, logg, true)
}

func signupHandler(svc auth.Service, logg *logger.Logger, asAdmin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		signup := svc.Signup
		if asAdmin {
			signup = svc.AdminSignup
		}
		session, err := signup(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// Login wires the login endpoint into the HTTP layer.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}
