// Package common reúne errores y helpers compartidos por los services.
package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

var (
	// ErrNotAuthenticated: no hay Principal en el contexto.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnknownIdentity: el Principal (o el email pedido) no existe en el store.
	ErrUnknownIdentity = errors.New("unknown identity")
)

// ValidationError envuelve errores de ozzo-validation (o de la política de password).
type ValidationError struct{ Err error }

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid devuelve nil si err es nil.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// CurrentUser resuelve el usuario del Principal del request.
func CurrentUser(ctx context.Context, users repository.UserRepository) (*repository.User, error) {
	p, ok := principal.From(ctx)
	if !ok || p.Identifier == "" {
		return nil, ErrNotAuthenticated
	}
	u, err := users.GetByEmail(ctx, p.Identifier)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("current user %q: %w", p.Identifier, ErrUnknownIdentity)
		}
		return nil, err
	}
	return u, nil
}

// NonBlank devuelve &s si s tiene contenido, si no nil. Se usa para updates parciales.
func NonBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NotFoundError identifica qué recurso faltó. Unwrap a repository.ErrNotFound.
type NotFoundError struct{ Resource string }

func (e *NotFoundError) Error() string { return e.Resource + " not found" }
func (e *NotFoundError) Unwrap() error { return repository.ErrNotFound }

func NotFound(resource string) error { return &NotFoundError{Resource: resource} }

// MapNotFound traduce repository.ErrNotFound a NotFound(resource) y deja pasar el resto.
func MapNotFound(err error, resource string) error {
	if repository.IsNotFound(err) {
		return NotFound(resource)
	}
	return err
}

// DenialObserver registra denegaciones de autorización (métricas). Opcional.
type DenialObserver interface {
	AuthzDenied(action string)
}

// Deny registra la denegación y devuelve authz.Deny(action).
func Deny(ctx context.Context, obs DenialObserver, action string) error {
	if obs != nil {
		obs.AuthzDenied(action)
	}
	logger.From(ctx).Info("authorization denied", logger.Action(action))
	return authz.Deny(action)
}
