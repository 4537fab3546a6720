// Package authn decide, para un header Authorization, si el request sigue anónimo,
// queda autenticado o debe rechazarse. No escribe respuestas: eso lo hace el
// middleware HTTP a partir del Outcome.
package authn

import (
	"errors"
	"strings"

	"github.com/dropDatabas3/hellopos/internal/jwt"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

const bearerPrefix = "Bearer "

// State del request luego de mirar la credencial.
type State int

const (
	// NoToken: no hay credencial Bearer; el request sigue anónimo.
	NoToken State = iota
	// Authenticated: token válido, Principal poblado.
	Authenticated
	// Rejected: token presente pero expirado o inválido.
	Rejected
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	default:
		return "no_token"
	}
}

// Reason explica un rechazo (o una credencial faltante exigida por la ruta).
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonExpired Reason = "EXPIRED"
	ReasonInvalid Reason = "INVALID"
	ReasonMissing Reason = "MISSING"
)

// Decoder es lo que authn necesita del codec de tokens.
type Decoder interface {
	Decode(raw string) (principal.Principal, error)
}

type Outcome struct {
	State     State
	Principal principal.Principal
	Reason    Reason
	// Err es la causa del rechazo, para logs.
	Err error
}

// Authenticate evalúa el valor crudo del header Authorization.
// Un header sin prefijo "Bearer " se trata como ausencia de credencial.
func Authenticate(header string, dec Decoder) Outcome {
	if !strings.HasPrefix(header, bearerPrefix) {
		return Outcome{State: NoToken}
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])

	p, err := dec.Decode(raw)
	if err != nil {
		reason := ReasonInvalid
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = ReasonExpired
		}
		return Outcome{State: Rejected, Reason: reason, Err: err}
	}
	return Outcome{State: Authenticated, Principal: p}
}
