package repository

import (
	"context"
	"time"
)

type Product struct {
	ID           int64
	Name         string
	SKU          string
	Description  string
	MRP          float64
	SellingPrice float64
	Brand        string
	Image        string
	CategoryID   *int64
	StoreID      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateProductInput struct {
	Name         string
	SKU          string
	Description  string
	MRP          float64
	SellingPrice float64
	Brand        string
	Image        string
	CategoryID   *int64
	StoreID      int64
	Now          time.Time
}

// UpdateProductInput: nil = sin cambios.
type UpdateProductInput struct {
	Name         *string
	SKU          *string
	Description  *string
	MRP          *float64
	SellingPrice *float64
	Brand        *string
	Image        *string
	CategoryID   *int64
	Now          time.Time
}

type ProductRepository interface {
	// Create inserta el producto. ErrConflict si el SKU ya existe.
	Create(ctx context.Context, in CreateProductInput) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListByStore(ctx context.Context, storeID int64) ([]Product, error)
	// Search busca keyword en name, sku y brand (case-insensitive) dentro de la tienda.
	Search(ctx context.Context, storeID int64, keyword string) ([]Product, error)
	Update(ctx context.Context, id int64, in UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
}
