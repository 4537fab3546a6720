// Package auth contiene el service de signup/login.
package auth

import (
	"context"
	"errors"

	dto "github.com/dropDatabas3/hellopos/internal/http/dto/auth"
)

type Service interface {
	// Signup registra un usuario y devuelve su token. Nunca crea ROLE_ADMIN.
	Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error)
	// Login verifica email/password, actualiza lastLogin y devuelve un token.
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
}

// TokenObserver recibe un evento por token emitido (métricas). Opcional.
type TokenObserver interface {
	TokenIssued(flow string)
}

var (
	ErrDuplicateIdentity = errors.New("email already registered")
	ErrRestrictedRole    = errors.New("role not self-assignable")
	ErrWrongSecret       = errors.New("wrong password")
	ErrTokenIssueFailed  = errors.New("failed to issue token")
)
