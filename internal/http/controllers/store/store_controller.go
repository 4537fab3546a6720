// Package store contiene los controllers de tiendas.
package store

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/hellopos/internal/http/dto/common"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/store"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	"github.com/dropDatabas3/hellopos/internal/http/helpers"
	svc "github.com/dropDatabas3/hellopos/internal/http/services/store"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create maneja POST /api/stores.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.StoreRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	out, err := c.service.Create(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, out)
}

// Get maneja GET /api/stores/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	out, err := c.service.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// List maneja GET /api/stores.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// ByAdmin maneja GET /api/stores/admin.
func (c *Controller) ByAdmin(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.ByAdmin(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// ByEmployee maneja GET /api/stores/employee.
func (c *Controller) ByEmployee(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.ByEmployee(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Update maneja PUT /api/stores/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.StoreRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	out, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Delete maneja DELETE /api/stores/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, common.MessageResponse{Message: "Store deleted successfully"})
}

// Moderate maneja PATCH /api/admin/stores/{id}/moderate?status=.
func (c *Controller) Moderate(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	out, err := c.service.Moderate(r.Context(), id, r.URL.Query().Get("status"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, svc.ErrAlreadyOwnsStore):
		httperrors.WriteError(w, r, httperrors.ErrConflict.WithDetail("You already own a store"))

	case errors.Is(err, authz.ErrInsufficientAuthority):
		msg := "You cannot modify this store"
		if action, _ := authz.DeniedAction(err); action == svc.ActionEmployee {
			msg = "You don't have permission to access this store."
		}
		httperrors.WriteError(w, r, httperrors.ErrInsufficientAuthority.WithDetail(msg).WithCause(err))

	default:
		helpers.WriteServiceError(w, r, err)
	}
}
