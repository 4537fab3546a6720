// Package principal modela la identidad autenticada de un request y su
// transporte en context.Context.
package principal

import (
	"context"
	"strings"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
)

// Principal es la identidad ya verificada de quien hace el request.
// Vive sólo mientras dura el request; nunca se persiste.
type Principal struct {
	// Identifier es el email del usuario.
	Identifier string
	// Role puede ser RoleNone si el token no trae authorities.
	Role        types.Role
	Authorities []string
}

// New arma el principal derivando Authorities del rol.
func New(identifier string, role types.Role) Principal {
	return Principal{Identifier: identifier, Role: role, Authorities: role.Authorities()}
}

// HasRole reporta si el principal tiene exactamente ese rol.
func (p Principal) HasRole(r types.Role) bool {
	return p.Role != types.RoleNone && p.Role == r
}

// HasAuthority busca a en Authorities (comparación exacta).
func (p Principal) HasAuthority(a string) bool {
	for _, x := range p.Authorities {
		if x == a {
			return true
		}
	}
	return false
}

// AuthoritiesClaim serializa Authorities sin duplicados, separadas por coma.
func (p Principal) AuthoritiesClaim() string {
	seen := make(map[string]struct{}, len(p.Authorities))
	out := make([]string, 0, len(p.Authorities))
	for _, a := range p.Authorities {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return strings.Join(out, ",")
}

type ctxKey struct{}

// With devuelve un ctx hijo que transporta p.
func With(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// From extrae el principal. ok=false en requests anónimos.
func From(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
