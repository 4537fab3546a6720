// Package authz concentra las reglas de autorización. Son funciones puras sobre
// rol, identidad y dueño del recurso: los services cargan los datos y preguntan
// antes de escribir.
package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

// ErrInsufficientAuthority: el principal existe pero no puede hacer la acción.
var ErrInsufficientAuthority = errors.New("insufficient authority")

// DeniedError anota ErrInsufficientAuthority con la acción rechazada.
type DeniedError struct{ Action string }

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInsufficientAuthority, e.Action)
}
func (e *DeniedError) Unwrap() error { return ErrInsufficientAuthority }

// Deny devuelve un *DeniedError para action.
func Deny(action string) error {
	return &DeniedError{Action: action}
}

// DeniedAction devuelve la acción si err es una denegación.
func DeniedAction(err error) (string, bool) {
	var de *DeniedError
	if errors.As(err, &de) {
		return de.Action, true
	}
	return "", false
}

// CanManageCategory: crear, renombrar o borrar categorías de una tienda.
// STORE_MANAGER siempre puede; STORE_ADMIN sólo en la tienda de la que es dueño.
func CanManageCategory(role types.Role, callerID, storeOwnerID int64) bool {
	switch role {
	case types.RoleStoreManager:
		return true
	case types.RoleStoreAdmin:
		return callerID != 0 && callerID == storeOwnerID
	default:
		return false
	}
}

// CanManageStore: editar o borrar la tienda targetID. Sólo el dueño, es decir,
// la tienda que el caller posee debe existir y ser targetID.
func CanManageStore(ownsStore bool, ownedStoreID, targetID int64) bool {
	return ownsStore && ownedStoreID == targetID
}

// RouteClass clasifica rutas por el nivel de acceso que exigen.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	// RouteAuthenticated: /api/** exige un principal.
	RouteAuthenticated
	// RouteAdmin: /api/admin/** exige ROLE_ADMIN.
	RouteAdmin
)

func (c RouteClass) String() string {
	switch c {
	case RouteAuthenticated:
		return "authenticated"
	case RouteAdmin:
		return "admin"
	default:
		return "public"
	}
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// ClassifyRoute aplica las reglas por prefijo. La más específica gana.
func ClassifyRoute(path string) RouteClass {
	switch {
	case underPrefix(path, "/api/admin"):
		return RouteAdmin
	case underPrefix(path, "/api"):
		return RouteAuthenticated
	default:
		return RoutePublic
	}
}

// RouteDecision es el resultado de CanAccess.
type RouteDecision int

const (
	Allow RouteDecision = iota
	// DenyMissing: la ruta exige principal y no hay ninguno.
	DenyMissing
	// DenyRole: hay principal pero sin el rol necesario.
	DenyRole
)

// CanAccess decide acceso por ruta. p es nil en requests anónimos.
func CanAccess(class RouteClass, p *principal.Principal) RouteDecision {
	switch class {
	case RoutePublic:
		return Allow
	case RouteAuthenticated:
		if p == nil {
			return DenyMissing
		}
		return Allow
	case RouteAdmin:
		if p == nil {
			return DenyMissing
		}
		if !p.HasRole(types.RoleAdmin) {
			return DenyRole
		}
		return Allow
	}
	return DenyRole
}
