// Package category contiene los controllers de categorías.
package category

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/hellopos/internal/http/dto/category"
	"github.com/dropDatabas3/hellopos/internal/http/dto/common"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	"github.com/dropDatabas3/hellopos/internal/http/helpers"
	svc "github.com/dropDatabas3/hellopos/internal/http/services/category"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create maneja POST /api/categories.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	out, err := c.service.Create(r.Context(), req)
	if err != nil {
		writeCategoryError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, out)
}

// ListByStore maneja GET /api/categories/store/{storeId}.
func (c *Controller) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, ok := helpers.PathID(w, r, "storeId")
	if !ok {
		return
	}
	out, err := c.service.ListByStore(r.Context(), storeID)
	if err != nil {
		writeCategoryError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Update maneja PUT /api/categories/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	out, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		writeCategoryError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Delete maneja DELETE /api/categories/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		writeCategoryError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, common.MessageResponse{Message: "Category deleted successfully"})
}

func writeCategoryError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, authz.ErrInsufficientAuthority) {
		httperrors.WriteError(w, r, httperrors.ErrInsufficientAuthority.
			WithDetail("You don't have permission to manage this category").WithCause(err))
		return
	}
	helpers.WriteServiceError(w, r, err)
}
