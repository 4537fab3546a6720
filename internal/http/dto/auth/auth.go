// Package auth contiene los DTOs de signup/login.
package auth

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	"github.com/dropDatabas3/hellopos/internal/http/dto/user"
)

// SignupRequest es el body de POST /auth/signup. Role vacío = ROLE_USER.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (r *SignupRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Role = strings.TrimSpace(r.Role)
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Phone, validation.Length(0, 32)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.Role, validation.By(knownRole)),
	)
}

func knownRole(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if _, err := types.ParseRole(s); err != nil {
		return errors.New("unknown role")
	}
	return nil
}

// LoginRequest es el body de POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse es la respuesta de signup (201) y login (200).
type AuthResponse struct {
	JWT     string            `json:"jwt"`
	Message string            `json:"message"`
	User    user.UserResponse `json:"user"`
}
