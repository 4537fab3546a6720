// Package store contiene los DTOs de tiendas.
package store

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/http/dto/user"
)

type Contact struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (c Contact) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, is.Email),
		validation.Field(&c.Phone, validation.Length(0, 32)),
	)
}

// StoreRequest sirve para POST y PUT. En PUT sólo se aplican los campos no vacíos.
type StoreRequest struct {
	Brand       string  `json:"brand"`
	Description string  `json:"description,omitempty"`
	StoreType   string  `json:"storeType,omitempty"`
	Contact     Contact `json:"contact"`
}

func (r *StoreRequest) Normalize() {
	r.Brand = strings.TrimSpace(r.Brand)
	r.StoreType = strings.TrimSpace(r.StoreType)
	r.Contact.Email = strings.TrimSpace(r.Contact.Email)
}

// ValidateCreate exige brand.
func (r StoreRequest) ValidateCreate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Brand, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Contact),
	)
}

// ValidateUpdate permite un body parcial.
func (r StoreRequest) ValidateUpdate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Brand, validation.Length(0, 200)),
		validation.Field(&r.Contact),
	)
}

type StoreResponse struct {
	ID          int64              `json:"id"`
	Brand       string             `json:"brand"`
	OwnerID     int64              `json:"ownerId"`
	StoreAdmin  *user.UserResponse `json:"storeAdmin,omitempty"`
	Description string             `json:"description,omitempty"`
	StoreType   string             `json:"storeType,omitempty"`
	Status      string             `json:"status"`
	Contact     Contact            `json:"contact"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// FromStore mapea la entidad. owner puede ser nil (dueño no resuelto).
func FromStore(s *repository.Store, owner *repository.User) StoreResponse {
	out := StoreResponse{
		ID:          s.ID,
		Brand:       s.Brand,
		OwnerID:     s.OwnerID,
		Description: s.Description,
		StoreType:   s.StoreType,
		Status:      string(s.Status),
		Contact: Contact{
			Address: s.Contact.Address,
			Phone:   s.Contact.Phone,
			Email:   s.Contact.Email,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if owner != nil {
		u := user.FromUser(owner)
		out.StoreAdmin = &u
	}
	return out
}
