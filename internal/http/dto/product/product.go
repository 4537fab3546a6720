// Package product contiene los DTOs de productos.
package product

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/http/dto/category"
)

// ProductRequest sirve para POST y PUT. Los precios son punteros para distinguir
// "no enviado" de 0.
type ProductRequest struct {
	Name         string   `json:"name"`
	SKU          string   `json:"sku"`
	Description  string   `json:"description,omitempty"`
	MRP          *float64 `json:"mrp,omitempty"`
	SellingPrice *float64 `json:"sellingPrice,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Image        string   `json:"image,omitempty"`
	CategoryID   *int64   `json:"categoryId,omitempty"`
	StoreID      int64    `json:"storeId"`
}

func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.TrimSpace(r.SKU)
	r.Brand = strings.TrimSpace(r.Brand)
}

func (r ProductRequest) ValidateCreate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.SKU, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.MRP, validation.Min(0.0)),
		validation.Field(&r.SellingPrice, validation.Min(0.0)),
		validation.Field(&r.CategoryID, validation.NotNil),
		validation.Field(&r.StoreID, validation.Required),
	)
}

func (r ProductRequest) ValidateUpdate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 200)),
		validation.Field(&r.SKU, validation.Length(0, 64)),
		validation.Field(&r.MRP, validation.Min(0.0)),
		validation.Field(&r.SellingPrice, validation.Min(0.0)),
	)
}

type ProductResponse struct {
	ID           int64                      `json:"id"`
	Name         string                     `json:"name"`
	SKU          string                     `json:"sku"`
	Description  string                     `json:"description,omitempty"`
	MRP          float64                    `json:"mrp"`
	SellingPrice float64                    `json:"sellingPrice"`
	Brand        string                     `json:"brand,omitempty"`
	Image        string                     `json:"image,omitempty"`
	StoreID      int64                      `json:"storeId"`
	Category     *category.CategoryResponse `json:"category,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

// FromProduct mapea la entidad. cat puede ser nil (sin categoría o no resuelta).
func FromProduct(p *repository.Product, cat *repository.Category) ProductResponse {
	out := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		MRP:          p.MRP,
		SellingPrice: p.SellingPrice,
		Brand:        p.Brand,
		Image:        p.Image,
		StoreID:      p.StoreID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if cat != nil {
		c := category.FromCategory(cat)
		out.Category = &c
	} else if p.CategoryID != nil {
		out.Category = &category.CategoryResponse{ID: *p.CategoryID, StoreID: p.StoreID}
	}
	return out
}
