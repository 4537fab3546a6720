// Package product contiene los controllers de productos.
package product

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/hellopos/internal/http/dto/common"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/product"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	"github.com/dropDatabas3/hellopos/internal/http/helpers"
	svc "github.com/dropDatabas3/hellopos/internal/http/services/product"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create maneja POST /api/products.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	out, err := c.service.Create(r.Context(), req)
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, out)
}

// ListByStore maneja GET /api/products/store/{storeId}.
func (c *Controller) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, ok := helpers.PathID(w, r, "storeId")
	if !ok {
		return
	}
	out, err := c.service.ListByStore(r.Context(), storeID)
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Search maneja GET /api/products/store/{storeId}/search?keyword=.
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	storeID, ok := helpers.PathID(w, r, "storeId")
	if !ok {
		return
	}
	out, err := c.service.Search(r.Context(), storeID, r.URL.Query().Get("keyword"))
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Update maneja PUT /api/products/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	out, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Delete maneja DELETE /api/products/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		writeProductError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, common.MessageResponse{Message: "Product deleted successfully"})
}

func writeProductError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, svc.ErrDuplicateSKU) {
		httperrors.WriteError(w, r, httperrors.ErrConflict.WithDetail("SKU already exists"))
		return
	}
	helpers.WriteServiceError(w, r, err)
}
