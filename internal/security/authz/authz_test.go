package authz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

func TestCanManageCategory(t *testing.T) {
	const owner, other = int64(7), int64(9)

	assert.True(t, CanManageCategory(types.RoleStoreManager, other, owner), "manager de cualquier tienda")
	assert.True(t, CanManageCategory(types.RoleStoreAdmin, owner, owner), "admin dueño")
	assert.False(t, CanManageCategory(types.RoleStoreAdmin, other, owner), "admin no dueño")
	assert.False(t, CanManageCategory(types.RoleStoreAdmin, 0, 0), "id cero nunca matchea")

	for _, r := range []types.Role{types.RoleAdmin, types.RoleCashier, types.RoleBranchManager, types.RoleUser, types.RoleNone} {
		assert.False(t, CanManageCategory(r, owner, owner), r)
	}
}

func TestCanManageStore(t *testing.T) {
	assert.True(t, CanManageStore(true, 3, 3))
	assert.False(t, CanManageStore(true, 3, 4))
	assert.False(t, CanManageStore(false, 0, 0))
}

func TestClassifyRoute(t *testing.T) {
	cases := map[string]RouteClass{
		"/":                            RoutePublic,
		"/auth/login":                  RoutePublic,
		"/apix":                        RoutePublic,
		"/healthz":                     RoutePublic,
		"/api":                         RouteAuthenticated,
		"/api/stores/1":                RouteAuthenticated,
		"/api/administrator":           RouteAuthenticated,
		"/api/admin":                   RouteAdmin,
		"/api/admin/users":             RouteAdmin,
		"/api/admin/stores/1/moderate": RouteAdmin,
	}
	for path, want := range cases {
		assert.Equal(t, want, ClassifyRoute(path), path)
	}
}

func TestCanAccess(t *testing.T) {
	admin := principal.New("root@example.com", types.RoleAdmin)
	cashier := principal.New("c@example.com", types.RoleCashier)
	bare := principal.New("n@example.com", types.RoleNone)

	assert.Equal(t, Allow, CanAccess(RoutePublic, nil))
	assert.Equal(t, DenyMissing, CanAccess(RouteAuthenticated, nil))
	assert.Equal(t, Allow, CanAccess(RouteAuthenticated, &bare))
	assert.Equal(t, DenyMissing, CanAccess(RouteAdmin, nil))
	assert.Equal(t, DenyRole, CanAccess(RouteAdmin, &cashier))
	assert.Equal(t, Allow, CanAccess(RouteAdmin, &admin))
}

func TestDeny(t *testing.T) {
	err := Deny("category.update")
	require.ErrorIs(t, err, ErrInsufficientAuthority)
	assert.Contains(t, err.Error(), "category.update")

	action, ok := DeniedAction(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	assert.Equal(t, "category.update", action)

	_, ok = DeniedAction(ErrInsufficientAuthority)
	assert.False(t, ok)
}
