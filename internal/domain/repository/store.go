package repository

import (
	"context"
	"time"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
)

type StoreContact struct {
	Address string
	Phone   string
	Email   string
}

// Store es una tienda. Cada usuario es dueño de a lo sumo una (OwnerID único).
type Store struct {
	ID          int64
	Brand       string
	OwnerID     int64
	Description string
	StoreType   string
	Status      types.StoreStatus
	Contact     StoreContact
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateStoreInput struct {
	Brand       string
	OwnerID     int64
	Description string
	StoreType   string
	Status      types.StoreStatus
	Contact     StoreContact
	Now         time.Time
}

// UpdateStoreInput: nil = sin cambios.
type UpdateStoreInput struct {
	Brand          *string
	Description    *string
	StoreType      *string
	ContactAddress *string
	ContactPhone   *string
	ContactEmail   *string
	Now            time.Time
}

type StoreRepository interface {
	// Create inserta la tienda. ErrConflict si el dueño ya tiene una.
	Create(ctx context.Context, in CreateStoreInput) (*Store, error)
	GetByID(ctx context.Context, id int64) (*Store, error)
	// GetByOwner devuelve la tienda cuyo dueño es ownerID. ErrNotFound si no tiene.
	GetByOwner(ctx context.Context, ownerID int64) (*Store, error)
	List(ctx context.Context) ([]Store, error)
	Update(ctx context.Context, id int64, in UpdateStoreInput) (*Store, error)
	SetStatus(ctx context.Context, id int64, status types.StoreStatus, at time.Time) (*Store, error)
	// Delete borra la tienda con sus categorías y productos y desasigna empleados.
	Delete(ctx context.Context, id int64) error
}
