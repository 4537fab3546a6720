// Package category contiene los DTOs de categorías.
package category

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
)

type CategoryRequest struct {
	Name    string `json:"name"`
	StoreID int64  `json:"storeId"`
}

func (r *CategoryRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r CategoryRequest) ValidateCreate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.StoreID, validation.Required),
	)
}

// ValidateUpdate: name vacío no cambia nada, storeId se ignora.
func (r CategoryRequest) ValidateUpdate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 120)),
	)
}

type CategoryResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StoreID int64  `json:"storeId"`
}

func FromCategory(c *repository.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, StoreID: c.StoreID}
}

func FromCategories(cs []repository.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for i := range cs {
		out = append(out, FromCategory(&cs[i]))
	}
	return out
}
