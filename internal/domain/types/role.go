// Package types define tipos de dominio compartidos entre paquetes.
package types

import (
	"fmt"
	"strings"
)

// Role es el rol de un usuario. El conjunto es cerrado; los nombres son los que
// viajan en el claim "authorities" del token y en la columna users.role.
type Role string

const (
	RoleNone          Role = ""
	RoleAdmin         Role = "ROLE_ADMIN"
	RoleStoreAdmin    Role = "ROLE_STORE_ADMIN"
	RoleStoreManager  Role = "ROLE_STORE_MANAGER"
	RoleBranchManager Role = "ROLE_BRANCH_MANAGER"
	RoleCashier       Role = "ROLE_CASHIER"
	RoleUser          Role = "ROLE_USER"
)

// RoleGroup agrupa roles con el mismo alcance.
type RoleGroup int

const (
	GroupNone RoleGroup = iota
	// GroupAdministrative opera sobre toda la plataforma.
	GroupAdministrative
	// GroupStoreScoped opera dentro de una tienda.
	GroupStoreScoped
	// GroupGeneric es un usuario final sin tienda.
	GroupGeneric
)

func (g RoleGroup) String() string {
	switch g {
	case GroupAdministrative:
		return "administrative"
	case GroupStoreScoped:
		return "store-scoped"
	case GroupGeneric:
		return "generic"
	default:
		return "none"
	}
}

// AllRoles en orden estable (usado en mensajes y en el CHECK de la tabla users).
var AllRoles = []Role{
	RoleAdmin,
	RoleStoreAdmin,
	RoleStoreManager,
	RoleBranchManager,
	RoleCashier,
	RoleUser,
}

// ParseRole acepta el nombre exacto del rol. También acepta el nombre sin el
// prefijo "ROLE_" y en minúsculas, que es como lo escriben a mano en el CLI.
func ParseRole(s string) (Role, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return RoleNone, nil
	}
	if !strings.HasPrefix(v, "ROLE_") {
		v = "ROLE_" + v
	}
	r := Role(v)
	if !r.Valid() {
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reporta si r pertenece al conjunto cerrado. RoleNone no es válido.
func (r Role) Valid() bool {
	return r.Group() != GroupNone
}

func (r Role) Group() RoleGroup {
	switch r {
	case RoleAdmin:
		return GroupAdministrative
	case RoleStoreAdmin, RoleStoreManager, RoleBranchManager, RoleCashier:
		return GroupStoreScoped
	case RoleUser:
		return GroupGeneric
	default:
		return GroupNone
	}
}

// SelfAssignable reporta si el rol puede elegirse en el alta pública.
// Los roles administrativos sólo se crean por bootstrap o CLI.
func (r Role) SelfAssignable() bool {
	return r.Valid() && r.Group() != GroupAdministrative
}

// Authorities devuelve el conjunto de authorities que otorga el rol.
// Hoy es uno a uno; se mantiene como slice porque el token transporta un conjunto.
func (r Role) Authorities() []string {
	if !r.Valid() {
		return nil
	}
	return []string{string(r)}
}

func (r Role) String() string { return string(r) }
