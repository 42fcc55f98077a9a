package controllers

import (
	"net/http"

	"github.com/bulkmandi/bulkmandi-backend/api/responses"
	"github.com/bulkmandi/bulkmandi-backend/api/validators"
	"github.com/bulkmandi/bulkmandi-backend/internal/auth"
	"github.com/bulkmandi/bulkmandi-backend/internal/users"
	pkgerrors "github.com/bulkmandi/bulkmandi-backend/pkg/errors"
	"github.com/bulkmandi/bulkmandi-backend/pkg/logger"
)

// AuthRegister onboards a new business and logs it in when credentials allow.
func AuthRegister(reg auth.RegisterService, svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil || svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := reg.Register(r.Context(), body)
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "register failed", err)
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Federated signups carry no password and get no token pair here.
		if body.Password == "" {
			responses.WriteSuccessStatus(w, http.StatusCreated, map[string]*users.UserDTO{"user": created})
			return
		}

		result, err := svc.Login(r.Context(), auth.LoginRequest{Email: body.Email, Password: body.Password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
