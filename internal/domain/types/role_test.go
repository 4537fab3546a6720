package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ROLE_ADMIN":       RoleAdmin,
		"store_manager":    RoleStoreManager,
		" ROLE_CASHIER ":   RoleCashier,
		"branch_manager":   RoleBranchManager,
		"":                 RoleNone,
		"role_store_admin": RoleStoreAdmin,
		"USER":             RoleUser,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("ROLE_ROOT")
	require.Error(t, err)
}

func TestRoleGroups(t *testing.T) {
	assert.Equal(t, GroupAdministrative, RoleAdmin.Group())
	for _, r := range []Role{RoleStoreAdmin, RoleStoreManager, RoleBranchManager, RoleCashier} {
		assert.Equal(t, GroupStoreScoped, r.Group(), r)
	}
	assert.Equal(t, GroupGeneric, RoleUser.Group())
	assert.Equal(t, GroupNone, Role("ROLE_X").Group())

	assert.False(t, RoleAdmin.SelfAssignable())
	assert.True(t, RoleStoreAdmin.SelfAssignable())
	assert.False(t, RoleNone.SelfAssignable())

	assert.Nil(t, RoleNone.Authorities())
	assert.Equal(t, []string{"ROLE_USER"}, RoleUser.Authorities())
}

func TestParseStoreStatus(t *testing.T) {
	st, err := ParseStoreStatus("blocked")
	require.NoError(t, err)
	assert.Equal(t, StoreBlocked, st)

	_, err = ParseStoreStatus("closed")
	assert.Error(t, err)
}
