package category

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/category"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
	"github.com/dropDatabas3/hellopos/internal/testutil"
)

func newService(t *testing.T) (Service, *testutil.Fixture, *testutil.Denials) {
	t.Helper()
	f := testutil.New(t)
	d := &testutil.Denials{}
	return NewService(Deps{
		Users:      f.DB.Users(),
		Stores:     f.DB.Stores(),
		Categories: f.DB.Categories(),
		Denials:    d,
	}), f, d
}

func TestStoreAdminNonOwnerCannotMutate(t *testing.T) {
	svc, f, denials := newService(t)
	owner := f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	intruder := f.User(t, "intruder@pos.test", types.RoleStoreAdmin)
	st := f.Store(t, owner, "Kiosco")
	cat := f.Category(t, st, "Bebidas")
	ctx := testutil.As(intruder)

	_, err := svc.Create(ctx, dto.CategoryRequest{Name: "Snacks", StoreID: st.ID})
	require.ErrorIs(t, err, authz.ErrInsufficientAuthority)

	_, err = svc.Update(ctx, cat.ID, dto.CategoryRequest{Name: "Hacked"})
	require.ErrorIs(t, err, authz.ErrInsufficientAuthority)

	err = svc.Delete(ctx, cat.ID)
	require.ErrorIs(t, err, authz.ErrInsufficientAuthority)

	assert.Equal(t, []string{ActionCreate, ActionUpdate, ActionDelete}, denials.Actions)

	cats, err := f.DB.Categories().ListByStore(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Bebidas", cats[0].Name)
}

func TestNonOwnerGetsDeniedBeforeValidation(t *testing.T) {
	svc, f, denials := newService(t)
	owner := f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	intruder := f.User(t, "intruder@pos.test", types.RoleStoreAdmin)
	st := f.Store(t, owner, "Kiosco")
	cat := f.Category(t, st, "Bebidas")
	ctx := testutil.As(intruder)
	long := strings.Repeat("x", 121)

	_, err := svc.Create(ctx, dto.CategoryRequest{Name: "", StoreID: st.ID})
	require.ErrorIs(t, err, authz.ErrInsufficientAuthority)
	_, isValidation := common.AsValidation(err)
	assert.False(t, isValidation)

	_, err = svc.Update(ctx, cat.ID, dto.CategoryRequest{Name: long})
	require.ErrorIs(t, err, authz.ErrInsufficientAuthority)

	assert.Equal(t, []string{ActionCreate, ActionUpdate}, denials.Actions)

	// el dueño sí ve el error de validación
	_, err = svc.Create(testutil.As(owner), dto.CategoryRequest{Name: "", StoreID: st.ID})
	_, isValidation = common.AsValidation(err)
	assert.True(t, isValidation)

	_, err = svc.Update(testutil.As(owner), cat.ID, dto.CategoryRequest{Name: long})
	_, isValidation = common.AsValidation(err)
	assert.True(t, isValidation)

	// sin tienda no hay nada que autorizar
	_, err = svc.Create(ctx, dto.CategoryRequest{Name: "Snacks"})
	_, isValidation = common.AsValidation(err)
	assert.True(t, isValidation)
}

func TestStoreManagerCanMutateAnyStore(t *testing.T) {
	svc, f, denials := newService(t)
	owner := f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	manager := f.User(t, "manager@pos.test", types.RoleStoreManager)
	st := f.Store(t, owner, "Kiosco")
	ctx := testutil.As(manager)

	c, err := svc.Create(ctx, dto.CategoryRequest{Name: "Snacks", StoreID: st.ID})
	require.NoError(t, err)
	assert.Equal(t, st.ID, c.StoreID)

	c, err = svc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Golosinas"})
	require.NoError(t, err)
	assert.Equal(t, "Golosinas", c.Name)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Empty(t, denials.Actions)
}

func TestOwnerCanMutateAndBlankNameKeepsValue(t *testing.T) {
	svc, f, _ := newService(t)
	owner := f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	st := f.Store(t, owner, "Kiosco")
	cat := f.Category(t, st, "Bebidas")

	out, err := svc.Update(testutil.As(owner), cat.ID, dto.CategoryRequest{Name: "   "})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", out.Name)
}

func TestCashierCannotMutate(t *testing.T) {
	svc, f, _ := newService(t)
	owner := f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	cashier := f.User(t, "cashier@pos.test", types.RoleCashier)
	st := f.Store(t, owner, "Kiosco")

	_, err := svc.Create(testutil.As(cashier), dto.CategoryRequest{Name: "X", StoreID: st.ID})
	assert.ErrorIs(t, err, authz.ErrInsufficientAuthority)
}

func TestListByStore(t *testing.T) {
	svc, f, _ := newService(t)
	owner := f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	st := f.Store(t, owner, "Kiosco")
	f.Category(t, st, "A")
	f.Category(t, st, "B")

	out, err := svc.ListByStore(context.Background(), st.ID)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
