package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	authctl "github.com/dropDatabas3/hellopos/internal/http/controllers/auth"
	categoryctl "github.com/dropDatabas3/hellopos/internal/http/controllers/category"
	healthctl "github.com/dropDatabas3/hellopos/internal/http/controllers/health"
	productctl "github.com/dropDatabas3/hellopos/internal/http/controllers/product"
	storectl "github.com/dropDatabas3/hellopos/internal/http/controllers/store"
	userctl "github.com/dropDatabas3/hellopos/internal/http/controllers/user"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	authsvc "github.com/dropDatabas3/hellopos/internal/http/services/auth"
	categorysvc "github.com/dropDatabas3/hellopos/internal/http/services/category"
	productsvc "github.com/dropDatabas3/hellopos/internal/http/services/product"
	storesvc "github.com/dropDatabas3/hellopos/internal/http/services/store"
	usersvc "github.com/dropDatabas3/hellopos/internal/http/services/user"
	"github.com/dropDatabas3/hellopos/internal/testutil"
)

type harness struct {
	f       *testutil.Fixture
	handler http.Handler
	ready   error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	f := testutil.New(t)
	h := &harness{f: f}
	db := f.DB

	c := Controllers{
		Auth: authctl.NewController(authsvc.NewService(authsvc.Deps{
			Users: db.Users(), Hasher: f.Hasher, Codec: f.Codec, Now: f.Clock,
		})),
		User: userctl.NewController(usersvc.NewService(usersvc.Deps{Users: db.Users()})),
		Store: storectl.NewController(storesvc.NewService(storesvc.Deps{
			Users: db.Users(), Stores: db.Stores(), Now: f.Clock,
		})),
		Category: categoryctl.NewController(categorysvc.NewService(categorysvc.Deps{
			Users: db.Users(), Stores: db.Stores(), Categories: db.Categories(),
		})),
		Product: productctl.NewController(productsvc.NewService(productsvc.Deps{
			Stores: db.Stores(), Categories: db.Categories(), Products: db.Products(), Now: f.Clock,
		})),
		Health: healthctl.NewController("test", healthctl.Check{
			Name: "store",
			Ping: func(context.Context) error { return h.ready },
		}),
	}
	h.handler = New(Deps{Controllers: c, Decoder: f.Codec})
	return h
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) httperrors.Body {
	t.Helper()
	var b httperrors.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestSignupAndLogin(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/auth/signup", "", map[string]any{
		"fullName": "Ana", "email": "ana@pos.test", "password": "secret-123", "role": "ROLE_STORE_ADMIN",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out["jwt"])
	assert.Equal(t, "Register Successfully!", out["message"])
	assert.NotContains(t, rec.Body.String(), "password")

	rec = h.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "ana@pos.test", "password": "secret-123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = h.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "ana@pos.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/auth/login", errorBody(t, rec).Path)
}

func TestSignupAdminRejected(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/auth/signup", "", map[string]any{
		"fullName": "Eve", "email": "eve@pos.test", "password": "secret-123", "role": "ROLE_ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Role admin is not allowed!", errorBody(t, rec).Message)

	_, err := h.f.DB.Users().GetByEmail(context.Background(), "eve@pos.test")
	assert.Error(t, err)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/users/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	b := errorBody(t, rec)
	assert.Equal(t, http.StatusUnauthorized, b.Status)
	assert.Equal(t, "/api/users/profile", b.Path)
	assert.NotEmpty(t, b.Timestamp)
	assert.NotEmpty(t, b.Error)
	assert.NotEmpty(t, b.Message)
}

func TestExpiredToken(t *testing.T) {
	h := newHarness(t)
	u := h.f.User(t, "late@pos.test", types.RoleUser)
	tok := h.f.Token(t, u)
	h.f.Now = h.f.Now.Add(2 * time.Hour)

	rec := h.do(t, http.MethodGet, "/api/users/profile", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httperrors.ErrTokenExpired.Message, errorBody(t, rec).Message)
}

func TestProfile(t *testing.T) {
	h := newHarness(t)
	u := h.f.User(t, "bob@pos.test", types.RoleCashier)
	rec := h.do(t, http.MethodGet, "/api/users/profile", h.f.Token(t, u), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"email":"bob@pos.test"`)
}

func TestAdminRoutes(t *testing.T) {
	h := newHarness(t)
	user := h.f.User(t, "user@pos.test", types.RoleUser)
	admin := h.f.User(t, "root@pos.test", types.RoleAdmin)

	rec := h.do(t, http.MethodGet, "/api/admin/users", h.f.Token(t, user), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/admin/users", h.f.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestCategoryOwnership(t *testing.T) {
	h := newHarness(t)
	owner := h.f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	other := h.f.User(t, "other@pos.test", types.RoleStoreAdmin)
	st := h.f.Store(t, owner, "Acme")

	rec := h.do(t, http.MethodPost, "/api/categories", h.f.Token(t, other), map[string]any{"name": "Snacks", "storeId": st.ID})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "You don't have permission to manage this category", errorBody(t, rec).Message)

	rec = h.do(t, http.MethodPost, "/api/categories", h.f.Token(t, owner), map[string]any{"name": "Snacks", "storeId": st.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var cat map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	id := int64(cat["id"].(float64))

	rec = h.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), h.f.Token(t, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category deleted successfully")
}

func TestStoreLifecycle(t *testing.T) {
	h := newHarness(t)
	owner := h.f.User(t, "owner@pos.test", types.RoleStoreAdmin)
	tok := h.f.Token(t, owner)

	rec := h.do(t, http.MethodPost, "/api/stores", tok, map[string]any{"brand": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var st map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	path := fmt.Sprintf("/api/stores/%d", int64(st["id"].(float64)))

	rec = h.do(t, http.MethodPost, "/api/stores", tok, map[string]any{"brand": "Second"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	intruder := h.f.User(t, "intruder@pos.test", types.RoleStoreAdmin)
	rec = h.do(t, http.MethodDelete, path, h.f.Token(t, intruder), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodDelete, path, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Store deleted successfully")

	rec = h.do(t, http.MethodGet, path, tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFallbackHandlers(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/nope", errorBody(t, rec).Path)

	rec = h.do(t, http.MethodGet, "/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/readyz", "", nil).Code)

	h.ready = errors.New("down")
	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/readyz", "", nil).Code)
}
