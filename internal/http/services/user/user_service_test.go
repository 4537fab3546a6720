package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/testutil"
)

func TestProfileAndLookup(t *testing.T) {
	f := testutil.New(t)
	svc := NewService(Deps{Users: f.DB.Users()})
	ana := f.User(t, "ana@pos.test", types.RoleCashier)
	f.User(t, "bob@pos.test", types.RoleUser)

	me, err := svc.Profile(testutil.As(ana))
	require.NoError(t, err)
	assert.Equal(t, ana.ID, me.ID)

	got, err := svc.GetByID(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@pos.test", got.Email)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrUnknownIdentity)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProfileForDeletedPrincipal(t *testing.T) {
	f := testutil.New(t)
	ghost := f.User(t, "ghost@pos.test", types.RoleUser)

	// Otro store: el token sigue siendo válido pero el usuario no existe.
	svc := NewService(Deps{Users: testutil.New(t).DB.Users()})
	_, err := svc.Profile(testutil.As(ghost))
	assert.ErrorIs(t, err, common.ErrUnknownIdentity)
}
