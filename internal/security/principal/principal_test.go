package principal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
)

func TestContextRoundTrip(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)

	p := New("ana@example.com", types.RoleCashier)
	ctx := With(context.Background(), p)

	got, ok := From(ctx)
	require.True(t, ok)
	assert.Equal(t, p, got)
	assert.True(t, got.HasRole(types.RoleCashier))
	assert.True(t, got.HasAuthority("ROLE_CASHIER"))
	assert.False(t, got.HasRole(types.RoleAdmin))
}

func TestAuthoritiesClaimDedup(t *testing.T) {
	p := Principal{Identifier: "x@y.z", Authorities: []string{"ROLE_USER", " ROLE_USER", "", "ROLE_CASHIER"}}
	assert.Equal(t, "ROLE_USER,ROLE_CASHIER", p.AuthoritiesClaim())

	none := New("x@y.z", types.RoleNone)
	assert.Equal(t, "", none.AuthoritiesClaim())
	assert.False(t, none.HasRole(types.RoleNone))
}
