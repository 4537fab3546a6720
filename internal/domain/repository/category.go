package repository

import "context"

type Category struct {
	ID      int64
	Name    string
	StoreID int64
}

type CategoryRepository interface {
	// Create inserta la categoría. ErrInvalidInput si la tienda no existe.
	Create(ctx context.Context, name string, storeID int64) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	ListByStore(ctx context.Context, storeID int64) ([]Category, error)
	Rename(ctx context.Context, id int64, name string) (*Category, error)
	// Delete borra la categoría; los productos quedan sin categoría.
	Delete(ctx context.Context, id int64) error
}
