// Package store contiene el service de tiendas.
package store

import (
	"context"
	"errors"

	dto "github.com/dropDatabas3/hellopos/internal/http/dto/store"
)

type Service interface {
	// Create da de alta la tienda del caller (queda PENDING).
	Create(ctx context.Context, in dto.StoreRequest) (*dto.StoreResponse, error)
	Get(ctx context.Context, id int64) (*dto.StoreResponse, error)
	List(ctx context.Context) ([]dto.StoreResponse, error)
	// ByAdmin devuelve la tienda de la que el caller es dueño.
	ByAdmin(ctx context.Context) (*dto.StoreResponse, error)
	// ByEmployee devuelve la tienda asignada al caller.
	ByEmployee(ctx context.Context) (*dto.StoreResponse, error)
	// Update aplica los campos no vacíos. Sólo el dueño.
	Update(ctx context.Context, id int64, in dto.StoreRequest) (*dto.StoreResponse, error)
	Delete(ctx context.Context, id int64) error
	// Moderate cambia el estado (ACTIVE/PENDING/BLOCKED). Ruta admin.
	Moderate(ctx context.Context, id int64, status string) (*dto.StoreResponse, error)
}

var ErrAlreadyOwnsStore = errors.New("user already owns a store")

const (
	ActionUpdate   = "store.update"
	ActionDelete   = "store.delete"
	ActionEmployee = "store.employee"
)
