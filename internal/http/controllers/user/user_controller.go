// Package user contiene los controllers de usuarios.
package user

import (
	"net/http"

	"github.com/dropDatabas3/hellopos/internal/http/helpers"
	svc "github.com/dropDatabas3/hellopos/internal/http/services/user"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Profile maneja GET /api/users/profile.
func (c *Controller) Profile(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.Profile(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Get maneja GET /api/users/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	out, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// List maneja GET /api/admin/users.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}
