package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedResponder(authz int) *Responder {
	return &Responder{
		AuthzStatus: authz,
		Now:         func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) },
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Body {
	t.Helper()
	var b Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestWriteTokenExpired(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stores/3", nil)

	fixedResponder(http.StatusUnauthorized).Write(rec, req, ErrTokenExpired)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, Body{
		Timestamp: "2024-05-06 07:08:09",
		Status:    401,
		Error:     "Unauthorized",
		Message:   "JWT token expired",
		Path:      "/api/stores/3",
	}, decode(t, rec))
}

func TestWriteAuthzStatusConfigurable(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/categories/1", nil)

	rec := httptest.NewRecorder()
	fixedResponder(http.StatusUnauthorized).Write(rec, req, ErrInsufficientAuthority)
	assert.Equal(t, 401, rec.Code)
	assert.Equal(t, "Unauthorized", decode(t, rec).Error)

	rec = httptest.NewRecorder()
	fixedResponder(http.StatusForbidden).Write(rec, req, ErrInsufficientAuthority.WithCause(stderrors.New("x")))
	assert.Equal(t, 403, rec.Code)
	b := decode(t, rec)
	assert.Equal(t, 403, b.Status)
	assert.Equal(t, "Forbidden", b.Error)
}

func TestWriteUnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	fixedResponder(0).Write(rec, req, stderrors.New("db exploded"))

	assert.Equal(t, 500, rec.Code)
	b := decode(t, rec)
	assert.Equal(t, "Internal Server Error", b.Error)
	assert.NotContains(t, b.Message, "db exploded")
}

func TestDetailAndWrapping(t *testing.T) {
	e := ErrNotFound.WithDetail("Store not found")
	assert.Equal(t, "Resource not found", ErrNotFound.PublicMessage(), "catalog sin mutar")
	assert.Equal(t, "Store not found", e.PublicMessage())

	wrapped := fmt.Errorf("controller: %w", e)
	assert.Same(t, e, FromError(wrapped))
	assert.True(t, stderrors.Is(wrapped, ErrNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrConflict))
}
