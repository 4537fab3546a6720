// Package auth contiene los controllers de signup/login.
package auth

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/hellopos/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	"github.com/dropDatabas3/hellopos/internal/http/helpers"
	svc "github.com/dropDatabas3/hellopos/internal/http/services/auth"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Signup maneja POST /auth/signup.
func (c *Controller) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	res, err := c.service.Signup(r.Context(), req)
	if err != nil {
		logger.From(r.Context()).Debug("signup failed", logger.Layer("controller"), logger.Err(err))
		writeAuthError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, res)
}

// Login maneja POST /auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	res, err := c.service.Login(r.Context(), req)
	if err != nil {
		logger.From(r.Context()).Debug("login failed", logger.Layer("controller"), logger.Err(err))
		writeAuthError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, svc.ErrRestrictedRole):
		httperrors.WriteError(w, r, httperrors.ErrRestrictedRole)

	case errors.Is(err, svc.ErrDuplicateIdentity):
		httperrors.WriteError(w, r, httperrors.ErrEmailAlreadyInUse)

	case errors.Is(err, svc.ErrWrongSecret):
		httperrors.WriteError(w, r, httperrors.ErrInvalidCredentials)

	case errors.Is(err, svc.ErrTokenIssueFailed):
		httperrors.WriteError(w, r, httperrors.ErrInternalServerError.WithCause(err))

	default:
		helpers.WriteServiceError(w, r, err)
	}
}
