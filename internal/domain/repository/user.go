package repository

import (
	"context"
	"time"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
)

// User es una cuenta del sistema. PasswordHash nunca sale por la API.
type User struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	Role         types.Role
	PasswordHash string
	// StoreID es la tienda donde trabaja el usuario (empleados). nil si ninguna.
	StoreID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time
}

type CreateUserInput struct {
	FullName     string
	Email        string
	Phone        string
	Role         types.Role
	PasswordHash string
	StoreID      *int64
	// Now permite fijar created_at/updated_at/last_login desde el service.
	Now time.Time
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// GetByEmail busca por email (case-insensitive). ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca por ID. ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*User, error)

	// Create inserta el usuario. ErrConflict si el email ya está registrado.
	Create(ctx context.Context, in CreateUserInput) (*User, error)

	// TouchLastLogin actualiza last_login y updated_at.
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error

	// List devuelve todos los usuarios ordenados por ID.
	List(ctx context.Context) ([]User, error)
}
