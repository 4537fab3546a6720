// Package errors define el modelo de error HTTP del servicio y el writer que
// produce el cuerpo estándar {timestamp, status, error, message, path}.
//
// Se importa con alias: httperrors "github.com/dropDatabas3/hellopos/internal/http/errors".
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError es un error con status HTTP y textos para el cliente.
type AppError struct {
	// Code es estable y apto para métricas/logs (ej: TOKEN_EXPIRED).
	Code string
	// Label va en el campo "error" de la respuesta (ej: "Unauthorized").
	Label string
	// Message va en el campo "message" salvo que Detail no esté vacío.
	Message    string
	Detail     string
	HTTPStatus int
	// Err es la causa. Sólo se loguea.
	Err error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.PublicMessage(), e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.PublicMessage())
}

func (e *AppError) Unwrap() error { return e.Err }

// Is compara por Code, así errors.Is(err, ErrTokenExpired) funciona sobre copias.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// PublicMessage es el texto que ve el cliente.
func (e *AppError) PublicMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// WithDetail devuelve una copia con Detail. Las variables del catálogo no se mutan.
func (e *AppError) WithDetail(detail string) *AppError {
	c := *e
	c.Detail = detail
	return &c
}

// WithCause devuelve una copia con Err.
func (e *AppError) WithCause(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

func New(status int, code, label, message string) *AppError {
	return &AppError{Code: code, Label: label, Message: message, HTTPStatus: status}
}

// FromError devuelve el *AppError de la cadena o un 500 que conserva la causa.
func FromError(err error) *AppError {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae
	}
	return ErrInternalServerError.WithCause(err)
}
