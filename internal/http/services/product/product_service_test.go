package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/product"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (Service, *testutil.Fixture, int64, int64) {
	t.Helper()
	f := testutil.New(t)
	owner := f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	st := f.Store(t, owner, "Kiosco")
	cat := f.Category(t, st, "Bebidas")
	svc := NewService(Deps{
		Stores:     f.DB.Stores(),
		Categories: f.DB.Categories(),
		Products:   f.DB.Products(),
		Now:        f.Clock,
	})
	return svc, f, st.ID, cat.ID
}

func TestCreateAndSearch(t *testing.T) {
	svc, _, storeID, catID := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, dto.ProductRequest{
		Name: "Agua 500ml", SKU: "AG-500", Brand: "Glaciar",
		MRP: ptr(1.5), SellingPrice: ptr(1.2), CategoryID: &catID, StoreID: storeID,
	})
	require.NoError(t, err)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Bebidas", p.Category.Name)

	_, err = svc.Create(ctx, dto.ProductRequest{Name: "Cola", SKU: "CO-1", CategoryID: &catID, StoreID: storeID})
	require.NoError(t, err)

	hits, err := svc.Search(ctx, storeID, "glaciar")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "AG-500", hits[0].SKU)

	all, err := svc.ListByStore(ctx, storeID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateDuplicateSKU(t *testing.T) {
	svc, _, storeID, catID := setup(t)
	ctx := context.Background()
	in := dto.ProductRequest{Name: "Agua", SKU: "AG-500", CategoryID: &catID, StoreID: storeID}

	_, err := svc.Create(ctx, in)
	require.NoError(t, err)
	in.SKU = "ag-500"
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestCreateMissingRefs(t *testing.T) {
	svc, _, storeID, catID := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.ProductRequest{Name: "X", SKU: "X", CategoryID: &catID, StoreID: 999})
	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Store", nf.Resource)

	_, err = svc.Create(ctx, dto.ProductRequest{Name: "X", SKU: "X", CategoryID: ptr(int64(999)), StoreID: storeID})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Category", nf.Resource)

	_, err = svc.Create(ctx, dto.ProductRequest{Name: "X", SKU: "X", StoreID: storeID})
	_, ok := common.AsValidation(err)
	assert.True(t, ok)
}

func TestCreateRejectsForeignCategory(t *testing.T) {
	svc, f, storeID, _ := setup(t)
	other := f.User(t, "other@pos.test", types.RoleStoreAdmin)
	otherCat := f.Category(t, f.Store(t, other, "Almacén"), "Lácteos")

	_, err := svc.Create(context.Background(), dto.ProductRequest{
		Name: "X", SKU: "X", CategoryID: &otherCat.ID, StoreID: storeID,
	})
	_, ok := common.AsValidation(err)
	assert.True(t, ok)
}

func TestUpdatePartialAndDelete(t *testing.T) {
	svc, _, storeID, catID := setup(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, dto.ProductRequest{
		Name: "Agua", SKU: "AG-500", SellingPrice: ptr(1.0), CategoryID: &catID, StoreID: storeID,
	})
	require.NoError(t, err)

	out, err := svc.Update(ctx, p.ID, dto.ProductRequest{SellingPrice: ptr(0.9), Brand: "Glaciar"})
	require.NoError(t, err)
	assert.Equal(t, "Agua", out.Name)
	assert.Equal(t, "AG-500", out.SKU)
	assert.InDelta(t, 0.9, out.SellingPrice, 1e-9)
	assert.Equal(t, "Glaciar", out.Brand)

	require.NoError(t, svc.Delete(ctx, p.ID))
	err = svc.Delete(ctx, p.ID)
	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Product", nf.Resource)
}
